package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const axisEps = 1e-5

func rotatedUp(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(ReferenceUp)
}

func TestDeriveOrientationRotatesUpOntoAxis(t *testing.T) {
	cases := []mgl32.Vec3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 1},
		{-0.3, 0.2, 0.9},
		{0, 0, -5}, // non-unit input must be normalized first
	}

	for _, axis := range cases {
		m, err := NewOrientationModel(axis, mgl32.Vec3{0, 1, 0})
		require.NoError(t, err)

		want := axis.Normalize()
		got := rotatedUp(m.Start().Quat)
		assert.InDelta(t, want.X(), got.X(), axisEps)
		assert.InDelta(t, want.Y(), got.Y(), axisEps)
		assert.InDelta(t, want.Z(), got.Z(), axisEps)
	}
}

func TestDeriveOrientationAntiparallel(t *testing.T) {
	// Straight down is the degenerate case for the cross product; the
	// quaternion must still be finite and map up onto down.
	m, err := NewOrientationModel(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, -1, 0})
	require.NoError(t, err)

	q := m.End().Quat
	for _, v := range []float32{q.W, q.V.X(), q.V.Y(), q.V.Z()} {
		assert.False(t, math.IsNaN(float64(v)), "quaternion component is NaN")
	}

	got := rotatedUp(q)
	assert.InDelta(t, 0, got.X(), axisEps)
	assert.InDelta(t, -1, got.Y(), axisEps)
	assert.InDelta(t, 0, got.Z(), axisEps)

	// Midway between the antiparallel endpoints the sample is still a unit
	// quaternion, rotating up into the horizontal plane.
	mid := m.Sample(0.5)
	assert.InDelta(t, 1, mid.Len(), axisEps)
	assert.InDelta(t, 0, rotatedUp(mid).Y(), 1e-4)
}

func TestSetAxisRejectsZeroVector(t *testing.T) {
	m, err := NewOrientationModel(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0})
	require.NoError(t, err)
	before := m.Start()

	err = m.SetStartAxis(mgl32.Vec3{})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "start axis", verr.Field)

	// Rejected input must not disturb the current orientation.
	assert.Equal(t, before, m.Start())

	err = m.SetEndAxis(mgl32.Vec3{})
	require.Error(t, err)
}

func TestSampleEndpoints(t *testing.T) {
	m, err := NewOrientationModel(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0})
	require.NoError(t, err)

	q0 := m.Sample(0)
	q1 := m.Sample(1)

	assert.InDelta(t, 1, absQuatDot(q0, m.Start().Quat), axisEps)
	assert.InDelta(t, 1, absQuatDot(q1, m.End().Quat), axisEps)
}

// absQuatDot compares orientations up to sign; q and -q rotate identically.
func absQuatDot(a, b mgl32.Quat) float64 {
	return math.Abs(float64(a.Dot(b)))
}

func TestSampleAngleIsMonotonic(t *testing.T) {
	m, err := NewOrientationModel(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}) // 90 degrees apart
	require.NoError(t, err)

	start := m.Start().Quat
	prev := -1.0
	for i := 0; i <= 10; i++ {
		q := m.Sample(float32(i) / 10)
		angle := math.Acos(clampDot(absQuatDot(q, start)))
		assert.GreaterOrEqual(t, angle, prev-axisEps, "angle regressed at step %d", i)
		prev = angle
	}
}

func clampDot(d float64) float64 {
	if d > 1 {
		return 1
	}
	return d
}

func TestFramesTableShape(t *testing.T) {
	m, err := NewOrientationModel(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0})
	require.NoError(t, err)

	frames := m.Frames()
	require.Len(t, frames, FrameCount+1)

	assert.InDelta(t, 1, absQuatDot(frames[0], m.Start().Quat), axisEps)
	assert.InDelta(t, 1, absQuatDot(frames[FrameCount], m.End().Quat), axisEps)

	for i, q := range frames {
		assert.InDelta(t, 1, q.Len(), axisEps, "frame %d not unit length", i)
	}
}

func TestFramesRegenerateAfterAxisChange(t *testing.T) {
	m, err := NewOrientationModel(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0})
	require.NoError(t, err)

	before := m.Frames()[FrameCount]
	require.NoError(t, m.SetEndAxis(mgl32.Vec3{0, 0, 1}))
	after := m.Frames()[FrameCount]

	assert.NotEqual(t, before, after)
	assert.InDelta(t, 1, absQuatDot(after, m.End().Quat), axisEps)
}

func TestSlerpTakesShortestPath(t *testing.T) {
	a := mgl32.QuatRotate(0, mgl32.Vec3{0, 0, 1})
	// Same rotation family but with negated representation: a plain slerp
	// would swing nearly all the way around.
	b := mgl32.QuatRotate(0.5, mgl32.Vec3{0, 0, 1}).Scale(-1)

	mid := Slerp(a, b, 0.5)
	want := mgl32.QuatRotate(0.25, mgl32.Vec3{0, 0, 1})
	assert.InDelta(t, 1, absQuatDot(mid, want), 1e-4)
}

func TestSlerpNearlyParallelInputs(t *testing.T) {
	a := mgl32.QuatRotate(0.0001, mgl32.Vec3{1, 0, 0})
	b := mgl32.QuatRotate(0.0002, mgl32.Vec3{1, 0, 0})

	q := Slerp(a, b, 0.5)
	assert.InDelta(t, 1, q.Len(), axisEps)
	for _, v := range []float32{q.W, q.V.X(), q.V.Y(), q.V.Z()} {
		assert.False(t, math.IsNaN(float64(v)))
	}
}

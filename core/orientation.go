package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ReferenceUp is the fixed basis vector both bounding orientations are
// derived from.
var ReferenceUp = mgl32.Vec3{0, 1, 0}

// FrameCount is the number of SLERP steps in the ghost-frame table. The
// table holds FrameCount+1 quaternions at t = 0, 1/FrameCount, ..., 1.
const FrameCount = 20

// Orientation couples a unit axis with the quaternion rotating ReferenceUp
// onto it. The quaternion is derived from the axis on every assignment and
// is never settable on its own.
type Orientation struct {
	Axis mgl32.Vec3
	Quat mgl32.Quat
}

// OrientationModel holds the start and end orientations and a lazily
// regenerated table of intermediate SLERP frames.
type OrientationModel struct {
	start Orientation
	end   Orientation

	frames      []mgl32.Quat
	framesDirty bool
}

func NewOrientationModel(startAxis, endAxis mgl32.Vec3) (*OrientationModel, error) {
	m := &OrientationModel{framesDirty: true}
	if err := m.SetStartAxis(startAxis); err != nil {
		return nil, err
	}
	if err := m.SetEndAxis(endAxis); err != nil {
		return nil, err
	}
	return m, nil
}

func deriveOrientation(field string, v mgl32.Vec3) (Orientation, error) {
	if v.Len() < 1e-8 {
		return Orientation{}, &ValidationError{Field: field, Reason: "zero-length vector has no direction"}
	}
	axis := v.Normalize()
	// QuatBetweenVectors picks an arbitrary perpendicular rotation axis when
	// the target is antiparallel to the reference, so no NaN can leak out of
	// the degenerate cross product.
	return Orientation{Axis: axis, Quat: mgl32.QuatBetweenVectors(ReferenceUp, axis)}, nil
}

func (m *OrientationModel) SetStartAxis(v mgl32.Vec3) error {
	o, err := deriveOrientation("start axis", v)
	if err != nil {
		return err
	}
	m.start = o
	m.framesDirty = true
	return nil
}

func (m *OrientationModel) SetEndAxis(v mgl32.Vec3) error {
	o, err := deriveOrientation("end axis", v)
	if err != nil {
		return err
	}
	m.end = o
	m.framesDirty = true
	return nil
}

func (m *OrientationModel) Start() Orientation { return m.start }
func (m *OrientationModel) End() Orientation   { return m.end }

// Sample interpolates between the two bounding quaternions at t in [0,1].
// Computed directly rather than via the frame table, so playback smoothness
// is independent of the table resolution.
func (m *OrientationModel) Sample(t float32) mgl32.Quat {
	return Slerp(m.start.Quat, m.end.Quat, t)
}

// Frames returns the ghost-frame table, regenerating it if an axis changed
// since the last call.
func (m *OrientationModel) Frames() []mgl32.Quat {
	if m.framesDirty {
		if m.frames == nil {
			m.frames = make([]mgl32.Quat, FrameCount+1)
		}
		for i := 0; i <= FrameCount; i++ {
			m.frames[i] = m.Sample(float32(i) / FrameCount)
		}
		m.framesDirty = false
	}
	return m.frames
}

// Slerp is shortest-path spherical interpolation: one input is negated when
// the pair dots negative, otherwise interpolation takes the long way around
// and visibly unwinds across the t range.
func Slerp(a, b mgl32.Quat, t float32) mgl32.Quat {
	dot := a.Dot(b)
	if dot < 0 {
		b = b.Scale(-1)
		dot = -dot
	}
	if dot > 0.9995 {
		// Nearly parallel, nlerp avoids the vanishing sin denominator.
		return a.Add(b.Sub(a).Scale(t)).Normalize()
	}

	theta0 := math.Acos(float64(dot))
	theta := theta0 * float64(t)
	sinTheta0 := math.Sin(theta0)

	s0 := float32(math.Cos(theta) - float64(dot)*math.Sin(theta)/sinTheta0)
	s1 := float32(math.Sin(theta) / sinTheta0)

	return a.Scale(s0).Add(b.Scale(s1))
}

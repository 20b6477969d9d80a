package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestViewMatrixLooksAtOrigin(t *testing.T) {
	c := NewCamera()
	view := c.ViewMatrix()

	// The origin lands on the camera's -Z axis at eye distance.
	p := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, 0, p.Y(), 1e-5)
	assert.InDelta(t, -c.Eye.Len(), p.Z(), 1e-4)
}

func TestProjectionMatrixAspect(t *testing.T) {
	c := NewCamera()

	wide := c.ProjectionMatrix(1600, 800)
	square := c.ProjectionMatrix(512, 512)

	// Horizontal scale shrinks with a wider viewport; vertical stays fixed.
	assert.Less(t, wide.At(0, 0), square.At(0, 0))
	assert.InDelta(t, square.At(1, 1), wide.At(1, 1), 1e-5)

	f := float32(1 / math.Tan(float64(mgl32.DegToRad(45))/2))
	assert.InDelta(t, f, square.At(1, 1), 1e-4)
}

func TestProjectionMatrixZeroViewport(t *testing.T) {
	c := NewCamera()

	// Degenerate sizes fall back to a square aspect instead of dividing by
	// zero during a minimized window.
	m := c.ProjectionMatrix(0, 0)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.False(t, math.IsNaN(float64(m.At(i, j))))
			assert.False(t, math.IsInf(float64(m.At(i, j)), 0))
		}
	}
	assert.InDelta(t, m.At(1, 1), m.At(0, 0), 1e-5)
}

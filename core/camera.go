package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is the fixed viewpoint of the visualization: eye on the (5,5,5)
// diagonal looking at the origin, Y up.
type Camera struct {
	Eye  mgl32.Vec3
	Fov  float32 // vertical field of view, degrees
	Near float32
	Far  float32
}

func NewCamera() *Camera {
	return &Camera{
		Eye:  mgl32.Vec3{5, 5, 5},
		Fov:  45,
		Near: 0.1,
		Far:  100,
	}
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix is recomputed every frame since the viewport aspect can
// change with a resize.
func (c *Camera) ProjectionMatrix(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

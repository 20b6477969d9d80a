// Package snapshot renders the current scene on the CPU and saves it as a
// WebP still. It reproduces the GPU pipeline's shading per face instead of
// per pixel, which is close enough for an export image and keeps the hot
// loop allocation free.
package snapshot

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/slerpview/geometry"
)

// Draw is one cone instance: its model matrix and blend alpha.
type Draw struct {
	Model mgl32.Mat4
	Alpha float32
}

// Input is a frozen copy of the scene. LightPos is already in view space.
type Input struct {
	Mesh  *geometry.Mesh
	Draws []Draw
	Lines []geometry.LineVertex

	View       mgl32.Mat4
	Projection mgl32.Mat4

	LightPos  mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32

	Background [4]float64
}

package geometry

import "github.com/go-gl/mathgl/mgl32"

// LineVertex is the vertex layout of the unlit line pipeline: world-space
// position plus flat RGBA color.
type LineVertex struct {
	Pos   [3]float32
	Color [4]float32
}

// Line colors. The gizmo follows the usual XYZ=RGB convention; the two
// direction vectors are yellow (start) and orange (end).
var (
	ColorX     = [4]float32{1, 0, 0, 1}
	ColorY     = [4]float32{0, 1, 0, 1}
	ColorZ     = [4]float32{0, 0, 1, 1}
	ColorStart = [4]float32{1, 1, 0, 1}
	ColorEnd   = [4]float32{1, 0.6, 0, 1}
)

// DirectionScale is the multiple of the cone height at which the direction
// vector endpoints sit.
const DirectionScale = 1.5

// BuildAxisGizmo returns three fixed-length segments from the origin along
// +X, +Y and +Z. Built once, never regenerated.
func BuildAxisGizmo(length float32) []LineVertex {
	return []LineVertex{
		{Pos: [3]float32{0, 0, 0}, Color: ColorX},
		{Pos: [3]float32{length, 0, 0}, Color: ColorX},
		{Pos: [3]float32{0, 0, 0}, Color: ColorY},
		{Pos: [3]float32{0, length, 0}, Color: ColorY},
		{Pos: [3]float32{0, 0, 0}, Color: ColorZ},
		{Pos: [3]float32{0, 0, length}, Color: ColorZ},
	}
}

// BuildDirectionVectors returns the two segments from the origin to the
// start and end axes, scaled by the cone height. Regenerated whenever
// either axis or the cone height changes.
func BuildDirectionVectors(start, end mgl32.Vec3, coneHeight float32) []LineVertex {
	s := start.Mul(coneHeight * DirectionScale)
	e := end.Mul(coneHeight * DirectionScale)
	return []LineVertex{
		{Pos: [3]float32{0, 0, 0}, Color: ColorStart},
		{Pos: [3]float32{s.X(), s.Y(), s.Z()}, Color: ColorStart},
		{Pos: [3]float32{0, 0, 0}, Color: ColorEnd},
		{Pos: [3]float32{e.X(), e.Y(), e.Z()}, Color: ColorEnd},
	}
}

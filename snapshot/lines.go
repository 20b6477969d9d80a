package snapshot

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/slerpview/geometry"
)

// drawLine projects a segment and walks it with a DDA, depth-testing and
// writing each covered pixel.
func drawLine(fb *frameBuffer, viewProj mgl32.Mat4, a, b geometry.LineVertex) {
	p0, ok0 := projectPoint(fb, viewProj, a.Pos)
	p1, ok1 := projectPoint(fb, viewProj, b.Pos)
	if !ok0 || !ok1 {
		return
	}

	dx := float64(p1[0] - p0[0])
	dy := float64(p1[1] - p0[1])
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		steps = 1
	}

	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		x := int(p0[0] + (p1[0]-p0[0])*t)
		y := int(p0[1] + (p1[1]-p0[1])*t)
		if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
			continue
		}
		z := p0[2] + (p1[2]-p0[2])*t
		zIdx := y*fb.width + x
		if z >= fb.zbuf[zIdx] {
			continue
		}
		fb.zbuf[zIdx] = z

		r := float64(a.Color[0]+(b.Color[0]-a.Color[0])*t) * 255
		g := float64(a.Color[1]+(b.Color[1]-a.Color[1])*t) * 255
		bl := float64(a.Color[2]+(b.Color[2]-a.Color[2])*t) * 255
		al := float64(a.Color[3] + (b.Color[3]-a.Color[3])*t)
		blendPixel(fb, zIdx*4, r, g, bl, al)
	}
}

func projectPoint(fb *frameBuffer, viewProj mgl32.Mat4, p [3]float32) ([3]float32, bool) {
	clip := viewProj.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
	w := clip.W()
	if w <= 0 {
		return [3]float32{}, false
	}
	inv := 1 / w
	return [3]float32{
		(clip.X()*inv + 1) * 0.5 * float32(fb.width),
		(1 - clip.Y()*inv) * 0.5 * float32(fb.height),
		clip.Z() * inv,
	}, true
}

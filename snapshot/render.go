package snapshot

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// frameBuffer holds the render target as flat slices for cache locality.
// Depth follows the GPU convention: NDC z, smaller is closer, cleared to +inf.
type frameBuffer struct {
	width  int
	height int
	color  []uint8   // RGBA interleaved, len = W*H*4
	zbuf   []float32 // len = W*H
}

func newFrameBuffer(w, h int, background [4]float64) *frameBuffer {
	n := w * h
	fb := &frameBuffer{
		width:  w,
		height: h,
		color:  make([]uint8, n*4),
		zbuf:   make([]float32, n),
	}
	br := clamp255(background[0] * 255)
	bg := clamp255(background[1] * 255)
	bb := clamp255(background[2] * 255)
	ba := clamp255(background[3] * 255)
	for i := 0; i < n; i++ {
		fb.zbuf[i] = float32(math.Inf(1))
		fb.color[i*4] = br
		fb.color[i*4+1] = bg
		fb.color[i*4+2] = bb
		fb.color[i*4+3] = ba
	}
	return fb
}

// screenVert is a projected vertex: window coordinates plus the view-space
// position kept for lighting.
type screenVert struct {
	x, y, z float32 // window x/y, NDC z
	view    mgl32.Vec3
}

// Render rasterizes the scene at size*supersample and downsamples to size.
// Draw order matches the GPU pass: lines first with depth writes, then the
// cones. Translucent draws depth-test but leave the z-buffer alone.
func Render(in *Input, size, supersample int) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	renderSize := size * supersample
	fb := newFrameBuffer(renderSize, renderSize, in.Background)

	viewProj := in.Projection.Mul4(in.View)
	for i := 0; i+1 < len(in.Lines); i += 2 {
		drawLine(fb, viewProj, in.Lines[i], in.Lines[i+1])
	}

	for _, d := range in.Draws {
		drawCone(fb, in, d)
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.color)
	if supersample > 1 {
		img = Downsample(img, size)
	}
	return img
}

func drawCone(fb *frameBuffer, in *Input, d Draw) {
	mv := in.View.Mul4(d.Model)
	mvp := in.Projection.Mul4(mv)

	verts := make([]screenVert, len(in.Mesh.Positions))
	for i, p := range in.Mesh.Positions {
		verts[i] = project(fb, mvp, mv, p)
	}

	opaque := d.Alpha >= 1
	idx := in.Mesh.Indices
	for i := 0; i+2 < len(idx); i += 3 {
		shadeTriangle(fb, in, verts[idx[i]], verts[idx[i+1]], verts[idx[i+2]], d.Alpha, opaque)
	}
}

func project(fb *frameBuffer, mvp, mv mgl32.Mat4, p mgl32.Vec3) screenVert {
	clip := mvp.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w == 0 {
		w = 1e-6
	}
	inv := 1 / w
	return screenVert{
		x:    (clip.X()*inv + 1) * 0.5 * float32(fb.width),
		y:    (1 - clip.Y()*inv) * 0.5 * float32(fb.height),
		z:    clip.Z() * inv,
		view: mv.Mul4x1(p.Vec4(1)).Vec3(),
	}
}

// shadeTriangle fills one triangle with flat Blinn-less Phong shading: the
// face normal and centroid stand in for per-fragment values.
func shadeTriangle(fb *frameBuffer, in *Input, v0, v1, v2 screenVert, alpha float32, depthWrite bool) {
	// Face normal in view space. Faces pointing away from the camera are
	// culled, matching the GPU's back-face cull.
	n := v1.view.Sub(v0.view).Cross(v2.view.Sub(v0.view))
	if n.Len() < 1e-8 {
		return
	}
	n = n.Normalize()
	centroid := v0.view.Add(v1.view).Add(v2.view).Mul(1.0 / 3.0)
	viewDir := centroid.Mul(-1).Normalize()
	if n.Dot(viewDir) <= 0 {
		return
	}

	lightDir := in.LightPos.Sub(centroid).Normalize()
	diff := n.Dot(lightDir)
	if diff < 0 {
		diff = 0
	}
	var spec float32
	if diff > 0 {
		reflected := reflect(lightDir.Mul(-1), n)
		s := viewDir.Dot(reflected)
		if s > 0 {
			spec = float32(math.Pow(float64(s), float64(in.Shininess)))
		}
	}

	r := in.Ambient.X() + diff*in.Diffuse.X() + spec*in.Specular.X()
	g := in.Ambient.Y() + diff*in.Diffuse.Y() + spec*in.Specular.Y()
	b := in.Ambient.Z() + diff*in.Diffuse.Z() + spec*in.Specular.Z()

	fillTriangle(fb, v0, v1, v2, r, g, b, alpha, depthWrite)
}

// fillTriangle rasterizes with barycentric coverage and a z-buffer test.
// The inner loop is allocation free.
func fillTriangle(fb *frameBuffer, v0, v1, v2 screenVert, r, g, b, alpha float32, depthWrite bool) {
	x0, y0, z0 := float64(v0.x), float64(v0.y), v0.z
	x1, y1, z1 := float64(v1.x), float64(v1.y), v1.z
	x2, y2, z2 := float64(v2.x), float64(v2.y), v2.z

	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.width {
		maxX = fb.width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.height {
		maxY = fb.height - 1
	}
	if minX >= maxX || minY >= maxY {
		return
	}

	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	sr := float64(r) * 255
	sg := float64(g) * 255
	sb := float64(b) * 255
	a := float64(alpha)

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * fb.width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := float32(w0)*z0 + float32(w1)*z1 + float32(w2)*z2
			zIdx := rowOff + sx
			if z >= fb.zbuf[zIdx] {
				continue
			}
			if depthWrite {
				fb.zbuf[zIdx] = z
			}

			pxIdx := zIdx * 4
			blendPixel(fb, pxIdx, sr, sg, sb, a)
		}
	}
}

// blendPixel does standard source-over blending against the framebuffer.
func blendPixel(fb *frameBuffer, pxIdx int, r, g, b, a float64) {
	inv := 1 - a
	fb.color[pxIdx] = clamp255(r*a + float64(fb.color[pxIdx])*inv)
	fb.color[pxIdx+1] = clamp255(g*a + float64(fb.color[pxIdx+1])*inv)
	fb.color[pxIdx+2] = clamp255(b*a + float64(fb.color[pxIdx+2])*inv)
	da := float64(fb.color[pxIdx+3]) / 255
	fb.color[pxIdx+3] = clamp255((a + da*inv) * 255)
}

func reflect(incident, n mgl32.Vec3) mgl32.Vec3 {
	return incident.Sub(n.Mul(2 * incident.Dot(n)))
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

package gpu

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/gekko3d/slerpview/core"
	"github.com/gekko3d/slerpview/geometry"
	"github.com/gekko3d/slerpview/shaders"
)

var errNoDepthView = errors.New("depth texture missing after resize")

// Frame is everything the engine hands over for one rendered frame.
type Frame struct {
	ViewProjection mgl32.Mat4
	Cones          []ConeUniforms
	Blended        bool
	ClearColor     [4]float64
}

// Renderer is the GPU pipeline collaborator: it owns the device and the two
// render passes, and draws one Frame at a time.
type Renderer struct {
	mgr   *Manager
	cones *ConePass
	lines *LinePass
	log   *zap.Logger
}

// NewRenderer compiles both pipelines against the window's surface. Shader
// compile or context failures are InitializationErrors and fatal; no frame
// is ever scheduled on a renderer that failed here.
func NewRenderer(window *glfw.Window, src shaders.Sources, vsync bool, maxDraws int, log *zap.Logger) (*Renderer, error) {
	mgr, err := NewManager(window, vsync, log)
	if err != nil {
		return nil, err
	}

	cones, err := NewConePass(mgr, src.Cone, maxDraws)
	if err != nil {
		mgr.ReleaseAll()
		return nil, err
	}
	lines, err := NewLinePass(mgr, src.Line)
	if err != nil {
		cones.Release()
		mgr.ReleaseAll()
		return nil, err
	}

	return &Renderer{mgr: mgr, cones: cones, lines: lines, log: log}, nil
}

func (r *Renderer) SetMesh(mesh *geometry.Mesh) error {
	return r.cones.SetMesh(mesh)
}

func (r *Renderer) SetGizmo(verts []geometry.LineVertex) error {
	return r.lines.SetGizmo(verts)
}

func (r *Renderer) SetDirectionVectors(verts []geometry.LineVertex) error {
	return r.lines.SetDirectionVectors(verts)
}

func (r *Renderer) Resize(width, height int) {
	r.mgr.Resize(width, height)
}

// Size returns the current swapchain dimensions.
func (r *Renderer) Size() (int, int) {
	return int(r.mgr.Config.Width), int(r.mgr.Config.Height)
}

// RenderFrame encodes and submits one frame: lines first with depth writes,
// then the cone pass (opaque, or the ghost trail blending over a
// depth-tested, non-depth-cleared target).
func (r *Renderer) RenderFrame(f Frame) error {
	// The depth view goes away when recreation fails during a resize; the
	// render pass cannot run without its depth attachment, so surface the
	// failure instead of handing wgpu a nil view. The next resize retries
	// the recreation.
	if r.mgr.DepthView == nil {
		return &core.ResourceError{Resource: "depth view", Err: errNoDepthView}
	}

	surfaceTex, err := r.mgr.Surface.GetCurrentTexture()
	if err != nil {
		// Swapchain out of date, usually mid-resize. Reconfigure and skip
		// this frame.
		r.log.Warn("surface texture unavailable", zap.Error(err))
		r.mgr.Resize(int(r.mgr.Config.Width), int(r.mgr.Config.Height))
		return nil
	}
	view, err := surfaceTex.CreateView(nil)
	if err != nil {
		return &core.ResourceError{Resource: "surface view", Err: err}
	}
	defer view.Release()

	encoder, err := r.mgr.Device.CreateCommandEncoder(nil)
	if err != nil {
		return &core.ResourceError{Resource: "command encoder", Err: err}
	}
	defer encoder.Release()

	r.cones.Update(f.Cones, f.Blended)
	r.lines.Update(f.ViewProjection)

	rp := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    view,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: f.ClearColor[0],
					G: f.ClearColor[1],
					B: f.ClearColor[2],
					A: f.ClearColor[3],
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.mgr.DepthView,
			DepthClearValue: 1.0,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
		},
	})

	r.lines.Draw(rp)
	r.cones.Draw(rp)

	if err := rp.End(); err != nil {
		rp.Release()
		return &core.ResourceError{Resource: "render pass", Err: err}
	}
	rp.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return &core.ResourceError{Resource: "command buffer", Err: err}
	}
	defer cmd.Release()

	r.mgr.Queue.Submit(cmd)
	r.mgr.Surface.Present()
	return nil
}

// Close releases the passes, all uploaded buffers and the device.
func (r *Renderer) Close() {
	r.cones.Release()
	r.lines.Release()
	r.mgr.ReleaseAll()
}

// Package app owns the viewer state: the cone, the two orientation axes,
// the playback clock and the camera. It turns that state into render frames
// and forwards them to whatever Renderer it was given.
package app

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/gekko3d/slerpview/config"
	"github.com/gekko3d/slerpview/core"
	"github.com/gekko3d/slerpview/geometry"
	"github.com/gekko3d/slerpview/gpu"
	"github.com/gekko3d/slerpview/snapshot"
)

// Renderer is the drawing backend the engine talks to. The GPU pipeline
// implements it; tests substitute a recorder.
type Renderer interface {
	SetMesh(mesh *geometry.Mesh) error
	SetGizmo(verts []geometry.LineVertex) error
	SetDirectionVectors(verts []geometry.LineVertex) error
	RenderFrame(f gpu.Frame) error
	Resize(width, height int)
	Close()
}

// Scene lighting shared by the GPU path and the snapshot rasterizer.
var (
	lightPosition = mgl32.Vec3{5, 5, 5}
	ambientColor  = mgl32.Vec3{0.12, 0.12, 0.14}
	specularColor = mgl32.Vec3{1, 1, 1}
	clearColor    = [4]float64{0.08, 0.08, 0.1, 1}
)

// Engine drives the viewer. Not safe for concurrent use; everything runs on
// the thread that pumps the window loop.
type Engine struct {
	params geometry.ConeParams
	model  *core.OrientationModel
	clock  *core.AnimationClock
	camera *core.Camera

	diffuse     mgl32.Vec3
	shininess   float32
	showTrail   bool
	gizmoLength float32

	width  int
	height int

	renderer Renderer
	log      *zap.Logger
}

// New validates the scene config, uploads the initial geometry and returns a
// ready engine.
func New(cfg *config.Config, r Renderer, log *zap.Logger) (*Engine, error) {
	params := geometry.ConeParams{
		Radius:   cfg.Scene.Cone.Radius,
		Height:   cfg.Scene.Cone.Height,
		Segments: cfg.Scene.Cone.Segments,
	}
	mesh, err := geometry.BuildCone(params)
	if err != nil {
		return nil, err
	}

	model, err := core.NewOrientationModel(
		mgl32.Vec3(cfg.Scene.StartAxis),
		mgl32.Vec3(cfg.Scene.EndAxis),
	)
	if err != nil {
		return nil, err
	}

	clock, err := core.NewAnimationClock(cfg.Animation.Speed, cfg.Animation.Loop)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		params:      params,
		model:       model,
		clock:       clock,
		camera:      core.NewCamera(),
		diffuse:     mgl32.Vec3(cfg.Scene.Diffuse),
		shininess:   cfg.Scene.Shininess,
		showTrail:   cfg.Animation.ShowTrail,
		gizmoLength: cfg.Scene.GizmoLength,
		width:       cfg.Graphics.Width,
		height:      cfg.Graphics.Height,
		renderer:    r,
		log:         log,
	}

	if err := r.SetMesh(mesh); err != nil {
		return nil, err
	}
	if err := r.SetGizmo(geometry.BuildAxisGizmo(cfg.Scene.GizmoLength)); err != nil {
		return nil, err
	}
	if err := e.uploadDirectionVectors(); err != nil {
		return nil, err
	}

	log.Info("engine ready",
		zap.Int("segments", params.Segments),
		zap.Float32("speed", clock.Speed()),
		zap.Bool("loop", clock.Loop()))

	return e, nil
}

func (e *Engine) uploadDirectionVectors() error {
	return e.renderer.SetDirectionVectors(geometry.BuildDirectionVectors(
		e.model.Start().Axis,
		e.model.End().Axis,
		e.params.Height,
	))
}

// SetConeParameters rebuilds the mesh. On validation failure the previous
// mesh stays on the GPU.
func (e *Engine) SetConeParameters(p geometry.ConeParams) error {
	mesh, err := geometry.BuildCone(p)
	if err != nil {
		return err
	}
	if err := e.renderer.SetMesh(mesh); err != nil {
		return err
	}
	e.params = p
	return e.uploadDirectionVectors()
}

// SetStartAxis replaces the animation's start orientation.
func (e *Engine) SetStartAxis(v mgl32.Vec3) error {
	if err := e.model.SetStartAxis(v); err != nil {
		return err
	}
	return e.uploadDirectionVectors()
}

// SetEndAxis replaces the animation's end orientation.
func (e *Engine) SetEndAxis(v mgl32.Vec3) error {
	if err := e.model.SetEndAxis(v); err != nil {
		return err
	}
	return e.uploadDirectionVectors()
}

func (e *Engine) SetAnimationSpeed(v float32) error { return e.clock.SetSpeed(v) }
func (e *Engine) SetLoop(loop bool)                 { e.clock.SetLoop(loop) }
func (e *Engine) SetShowTrail(show bool)            { e.showTrail = show }

func (e *Engine) Play()  { e.clock.Start() }
func (e *Engine) Pause() { e.clock.Stop() }
func (e *Engine) Reset() { e.clock.Reset() }

func (e *Engine) CurrentProgress() float32 { return e.clock.Progress() }
func (e *Engine) IsPlaying() bool          { return e.clock.IsPlaying() }
func (e *Engine) ShowTrail() bool          { return e.showTrail }
func (e *Engine) Loop() bool               { return e.clock.Loop() }
func (e *Engine) Speed() float32           { return e.clock.Speed() }

// ConeParameters returns the current mesh parameters.
func (e *Engine) ConeParameters() geometry.ConeParams { return e.params }

// Resize updates the projection aspect and the swapchain.
func (e *Engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.width, e.height = width, height
	e.renderer.Resize(width, height)
}

// Tick advances the clock and renders one frame. Paused with the trail
// enabled it draws the whole ghost stack; otherwise a single opaque cone at
// the current progress.
func (e *Engine) Tick() error {
	e.clock.Advance()

	view := e.camera.ViewMatrix()
	proj := e.camera.ProjectionMatrix(e.width, e.height)

	f := gpu.Frame{
		ViewProjection: proj.Mul4(view),
		ClearColor:     clearColor,
	}

	if !e.clock.IsPlaying() && e.showTrail {
		frames := e.model.Frames()
		f.Blended = true
		f.Cones = make([]gpu.ConeUniforms, len(frames))
		for i, q := range frames {
			alpha := trailAlpha(i, len(frames))
			f.Cones[i] = e.coneUniforms(q, view, proj, alpha)
		}
	} else {
		q := e.model.Sample(e.clock.Progress())
		f.Cones = []gpu.ConeUniforms{e.coneUniforms(q, view, proj, 1)}
	}

	return e.renderer.RenderFrame(f)
}

// trailAlpha ramps ghost opacity from faint at the start orientation to
// stronger at the end.
func trailAlpha(i, n int) float32 {
	return 0.15 + float32(i)/float32(n-1)*0.3
}

func (e *Engine) coneUniforms(q mgl32.Quat, view, proj mgl32.Mat4, alpha float32) gpu.ConeUniforms {
	model := q.Mat4()
	mv := view.Mul4(model)
	lightView := view.Mul4x1(lightPosition.Vec4(1)).Vec3()

	return gpu.ConeUniforms{
		ModelView:  mv,
		Projection: proj,
		NormalMat:  mv.Inv().Transpose(),
		LightPos:   lightView,
		Shininess:  e.shininess,
		Ambient:    ambientColor,
		Alpha:      alpha,
		Diffuse:    e.diffuse,
		Specular:   specularColor,
	}
}

// SnapshotInput packages the current scene for the CPU rasterizer.
func (e *Engine) SnapshotInput() (*snapshot.Input, error) {
	mesh, err := geometry.BuildCone(e.params)
	if err != nil {
		return nil, err
	}

	view := e.camera.ViewMatrix()
	proj := e.camera.ProjectionMatrix(e.width, e.height)

	in := &snapshot.Input{
		Mesh:       mesh,
		View:       view,
		Projection: proj,
		LightPos:   view.Mul4x1(lightPosition.Vec4(1)).Vec3(),
		Ambient:    ambientColor,
		Diffuse:    e.diffuse,
		Specular:   specularColor,
		Shininess:  e.shininess,
		Background: clearColor,
		Lines:      geometry.BuildAxisGizmo(e.gizmoLength),
	}
	in.Lines = append(in.Lines, geometry.BuildDirectionVectors(
		e.model.Start().Axis,
		e.model.End().Axis,
		e.params.Height,
	)...)

	if !e.clock.IsPlaying() && e.showTrail {
		frames := e.model.Frames()
		for i, q := range frames {
			in.Draws = append(in.Draws, snapshot.Draw{
				Model: q.Mat4(),
				Alpha: trailAlpha(i, len(frames)),
			})
		}
	} else {
		in.Draws = []snapshot.Draw{{
			Model: e.model.Sample(e.clock.Progress()).Mat4(),
			Alpha: 1,
		}}
	}

	return in, nil
}

// Close releases the renderer.
func (e *Engine) Close() {
	e.renderer.Close()
}

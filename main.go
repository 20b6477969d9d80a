package main

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/gekko3d/slerpview/app"
	"github.com/gekko3d/slerpview/config"
	"github.com/gekko3d/slerpview/core"
	"github.com/gekko3d/slerpview/gpu"
	"github.com/gekko3d/slerpview/logger"
	"github.com/gekko3d/slerpview/shaders"
	"github.com/gekko3d/slerpview/snapshot"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := glfw.Init(); err != nil {
		logger.Fatal("glfw init failed", zap.Error(err))
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(cfg.Graphics.Width, cfg.Graphics.Height, cfg.Graphics.Title, nil, nil)
	if err != nil {
		logger.Fatal("window creation failed", zap.Error(err))
	}
	defer window.Destroy()

	sources := shaders.Embedded()
	if cfg.Graphics.ShaderDir != "" {
		sources, err = shaders.FromDir(cfg.Graphics.ShaderDir)
		if err != nil {
			logger.Fatal("shader override load failed", zap.Error(err))
		}
	}

	renderer, err := gpu.NewRenderer(window, sources, cfg.Graphics.VSync, core.FrameCount+1, logger.Log)
	if err != nil {
		logger.Fatal("renderer init failed", zap.Error(err))
	}

	engine, err := app.New(cfg, renderer, logger.Log)
	if err != nil {
		renderer.Close()
		logger.Fatal("engine init failed", zap.Error(err))
	}
	defer engine.Close()

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		engine.Resize(width, height)
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		handleKey(w, engine, cfg, key)
	})

	for !window.ShouldClose() {
		glfw.PollEvents()
		if err := engine.Tick(); err != nil {
			logger.Error("frame failed", zap.Error(err))
		}
	}
}

// Axis presets reachable from the keyboard. 1-3 set the start axis, 4-6 the
// end axis.
var axisPresets = map[glfw.Key]mgl32.Vec3{
	glfw.Key1: {1, 0, 0},
	glfw.Key2: {0, 1, 0},
	glfw.Key3: {0, 0, 1},
	glfw.Key4: {1, 0, 0},
	glfw.Key5: {0, 1, 0},
	glfw.Key6: {0, 0, 1},
}

func handleKey(w *glfw.Window, engine *app.Engine, cfg *config.Config, key glfw.Key) {
	switch key {
	case glfw.KeyEscape:
		w.SetShouldClose(true)

	case glfw.KeySpace:
		if engine.IsPlaying() {
			engine.Pause()
		} else {
			engine.Play()
		}

	case glfw.KeyR:
		engine.Reset()

	case glfw.KeyT:
		engine.SetShowTrail(!engine.ShowTrail())

	case glfw.KeyL:
		engine.SetLoop(!engine.Loop())

	case glfw.KeyEqual, glfw.KeyKPAdd:
		if err := engine.SetAnimationSpeed(engine.Speed() * 1.25); err != nil {
			logger.Warn("speed change rejected", zap.Error(err))
		}

	case glfw.KeyMinus, glfw.KeyKPSubtract:
		if err := engine.SetAnimationSpeed(engine.Speed() * 0.8); err != nil {
			logger.Warn("speed change rejected", zap.Error(err))
		}

	case glfw.Key1, glfw.Key2, glfw.Key3:
		if err := engine.SetStartAxis(axisPresets[key]); err != nil {
			logger.Warn("start axis rejected", zap.Error(err))
		}

	case glfw.Key4, glfw.Key5, glfw.Key6:
		if err := engine.SetEndAxis(axisPresets[key]); err != nil {
			logger.Warn("end axis rejected", zap.Error(err))
		}

	case glfw.KeyS:
		in, err := engine.SnapshotInput()
		if err != nil {
			logger.Error("snapshot failed", zap.Error(err))
			return
		}
		path, err := snapshot.Capture(in, cfg.Snapshot.Size, cfg.Snapshot.Supersample, cfg.Snapshot.Dir)
		if err != nil {
			logger.Error("snapshot failed", zap.Error(err))
			return
		}
		logger.Info("snapshot saved", zap.String("path", path))
	}
}

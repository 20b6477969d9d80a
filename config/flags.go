package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWidth   = flag.Int("width", 0, "Window width")
	flagHeight  = flag.Int("height", 0, "Window height")
	flagNoVSync = flag.Bool("no-vsync", false, "Disable vsync")
	flagSpeed   = flag.Float64("speed", 0, "Animation speed per frame")
	flagNoLoop  = flag.Bool("no-loop", false, "Stop at the end axis instead of looping")
	flagShaders = flag.String("shaders", "", "Directory with WGSL shader overrides")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagNoVSync {
		cfg.Graphics.VSync = false
	}
	if *flagSpeed > 0 {
		cfg.Animation.Speed = float32(*flagSpeed)
	}
	if *flagNoLoop {
		cfg.Animation.Loop = false
	}
	if *flagShaders != "" {
		cfg.Graphics.ShaderDir = *flagShaders
	}
}

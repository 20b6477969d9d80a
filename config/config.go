// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Scene     SceneConfig     `yaml:"scene"`
	Animation AnimationConfig `yaml:"animation"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	VSync     bool   `yaml:"vsync"`
	ShaderDir string `yaml:"shader_dir"` // Optional on-disk WGSL override
}

// ConeConfig holds the procedural cone parameters.
type ConeConfig struct {
	Radius   float32 `yaml:"radius"`
	Height   float32 `yaml:"height"`
	Segments int     `yaml:"segments"`
}

// SceneConfig holds scene content settings.
type SceneConfig struct {
	Cone        ConeConfig `yaml:"cone"`
	StartAxis   [3]float32 `yaml:"start_axis"`
	EndAxis     [3]float32 `yaml:"end_axis"`
	Diffuse     [3]float32 `yaml:"diffuse"`
	Shininess   float32    `yaml:"shininess"`
	GizmoLength float32    `yaml:"gizmo_length"`
}

// AnimationConfig holds playback settings.
type AnimationConfig struct {
	Speed     float32 `yaml:"speed"`
	Loop      bool    `yaml:"loop"`
	ShowTrail bool    `yaml:"show_trail"`
}

// SnapshotConfig holds still-image export settings.
type SnapshotConfig struct {
	Size        int    `yaml:"size"`
	Supersample int    `yaml:"supersample"`
	Dir         string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1024,
			Height: 768,
			Title:  "slerpview",
			VSync:  true,
		},
		Scene: SceneConfig{
			Cone: ConeConfig{
				Radius:   1,
				Height:   2,
				Segments: 32,
			},
			StartAxis:   [3]float32{0, 1, 0},
			EndAxis:     [3]float32{1, 0, 0},
			Diffuse:     [3]float32{0.3, 0.65, 0.85},
			Shininess:   64,
			GizmoLength: 2,
		},
		Animation: AnimationConfig{
			Speed:     0.005,
			Loop:      true,
			ShowTrail: true,
		},
		Snapshot: SnapshotConfig{
			Size:        512,
			Supersample: 2,
			Dir:         ".",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

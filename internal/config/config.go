// Package config handles viewer configuration loading and management.
package config

// Config holds all meshview settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ViewerConfig holds mesh viewer settings.
type ViewerConfig struct {
	// Scene selects the built-in demo scene: "cube", "plane", or "merged".
	Scene string `yaml:"scene"`
	// DoubleSided forces raycast geometry to accept back-facing hits.
	DoubleSided bool `yaml:"double_sided"`
	// Background is the clear color as RGB in 0..1.
	Background [3]float32 `yaml:"background"`
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
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Viewer: ViewerConfig{
			Scene:      "cube",
			Background: [3]float32{0.12, 0.12, 0.15},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Package config handles simulation configuration loading and management.
package config

// Config holds all simulation settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Water      WaterConfig      `yaml:"water"`
	Simulation SimulationConfig `yaml:"simulation"`
	Capture    CaptureConfig    `yaml:"capture"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// WaterConfig holds the slab grid dimensions and the wave components.
// An empty Waves list selects the built-in reference pair.
type WaterConfig struct {
	GridWidth int     `yaml:"grid_width"` // Vertex count along X
	GridDepth int     `yaml:"grid_depth"` // Vertex count along Z
	SizeX     float32 `yaml:"size_x"`     // World extent along X
	SizeZ     float32 `yaml:"size_z"`     // World extent along Z
	Thickness float32 `yaml:"thickness"`  // Top-to-bottom surface gap

	Waves []WaveConfig `yaml:"waves"`
}

// WaveConfig describes one traveling wave component.
type WaveConfig struct {
	Amplitude float32    `yaml:"amplitude"`
	Frequency float32    `yaml:"frequency"`
	Speed     float32    `yaml:"speed"`
	Direction [2]float32 `yaml:"direction"` // XZ travel direction, normalized on load
}

// SimulationConfig holds clock settings.
type SimulationConfig struct {
	TimeStep float32 `yaml:"time_step"` // Simulation seconds added per frame
}

// CaptureConfig holds frame recording settings.
type CaptureConfig struct {
	OutputDir       string  `yaml:"output_dir"`
	DurationSeconds float32 `yaml:"duration_seconds"` // Simulation time per recording
	VideoName       string  `yaml:"video_name"`
	Encode          bool    `yaml:"encode"` // Run ffmpeg after capture
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the reference simulation values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
		},
		Water: WaterConfig{
			GridWidth: 200,
			GridDepth: 200,
			SizeX:     300,
			SizeZ:     200,
			Thickness: 2,
		},
		Simulation: SimulationConfig{
			TimeStep: 0.05,
		},
		Capture: CaptureConfig{
			OutputDir:       "captures",
			DurationSeconds: 16,
			VideoName:       "simulation.mp4",
			Encode:          true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

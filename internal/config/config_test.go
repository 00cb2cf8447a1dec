package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Water.GridWidth != 200 || cfg.Water.GridDepth != 200 {
		t.Errorf("expected 200x200 grid, got %dx%d", cfg.Water.GridWidth, cfg.Water.GridDepth)
	}
	if cfg.Water.SizeX != 300 || cfg.Water.SizeZ != 200 {
		t.Errorf("expected 300x200 extents, got %gx%g", cfg.Water.SizeX, cfg.Water.SizeZ)
	}
	if cfg.Water.Thickness != 2 {
		t.Errorf("expected thickness 2, got %g", cfg.Water.Thickness)
	}
	if len(cfg.Water.Waves) != 0 {
		t.Errorf("expected no wave overrides by default, got %d", len(cfg.Water.Waves))
	}

	if cfg.Simulation.TimeStep != 0.05 {
		t.Errorf("expected time step 0.05, got %g", cfg.Simulation.TimeStep)
	}

	if cfg.Capture.DurationSeconds != 16 {
		t.Errorf("expected capture duration 16, got %g", cfg.Capture.DurationSeconds)
	}
	if !cfg.Capture.Encode {
		t.Error("expected capture encoding to be enabled by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

water:
  grid_width: 64
  grid_depth: 48
  size_x: 120
  size_z: 90
  thickness: 1.5
  waves:
    - amplitude: 1.2
      frequency: 0.5
      speed: 0.4
      direction: [1, 0]

simulation:
  time_step: 0.02

capture:
  output_dir: out
  duration_seconds: 8
  video_name: waves.mp4
  encode: false

logging:
  level: "debug"
  log_file: "sim.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Water.GridWidth != 64 || cfg.Water.GridDepth != 48 {
		t.Errorf("expected 64x48 grid, got %dx%d", cfg.Water.GridWidth, cfg.Water.GridDepth)
	}
	if cfg.Water.Thickness != 1.5 {
		t.Errorf("expected thickness 1.5, got %g", cfg.Water.Thickness)
	}
	if len(cfg.Water.Waves) != 1 {
		t.Fatalf("expected 1 wave override, got %d", len(cfg.Water.Waves))
	}
	w := cfg.Water.Waves[0]
	if w.Amplitude != 1.2 || w.Frequency != 0.5 || w.Speed != 0.4 {
		t.Errorf("unexpected wave override: %+v", w)
	}
	if w.Direction != [2]float32{1, 0} {
		t.Errorf("expected direction [1 0], got %v", w.Direction)
	}

	if cfg.Simulation.TimeStep != 0.02 {
		t.Errorf("expected time step 0.02, got %g", cfg.Simulation.TimeStep)
	}

	if cfg.Capture.OutputDir != "out" {
		t.Errorf("expected output dir 'out', got %s", cfg.Capture.OutputDir)
	}
	if cfg.Capture.DurationSeconds != 8 {
		t.Errorf("expected duration 8, got %g", cfg.Capture.DurationSeconds)
	}
	if cfg.Capture.Encode {
		t.Error("expected encode to be false")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "sim.log" {
		t.Errorf("expected log file 'sim.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
water:
  grid_width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "grid flag sets both axes",
			setup: func() {
				*flagGrid = 128
			},
			verify: func(cfg *Config) {
				if cfg.Water.GridWidth != 128 || cfg.Water.GridDepth != 128 {
					t.Errorf("expected 128x128 grid, got %dx%d", cfg.Water.GridWidth, cfg.Water.GridDepth)
				}
			},
			teardown: func() {
				*flagGrid = 0
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "record dir flag",
			setup: func() {
				*flagRecordDir = "frames"
			},
			verify: func(cfg *Config) {
				if cfg.Capture.OutputDir != "frames" {
					t.Errorf("expected output dir 'frames', got %s", cfg.Capture.OutputDir)
				}
			},
			teardown: func() {
				*flagRecordDir = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width comes from the flag, height from the file.
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Water.GridWidth = 77
	cfg.Capture.VideoName = "out.mp4"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Water.GridWidth != 77 {
		t.Errorf("expected grid width 77 after round trip, got %d", loaded.Water.GridWidth)
	}
	if loaded.Capture.VideoName != "out.mp4" {
		t.Errorf("expected video name 'out.mp4', got %s", loaded.Capture.VideoName)
	}
}

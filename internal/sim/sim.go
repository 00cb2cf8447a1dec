// Package sim wires the water volume, renderer, and window into the main
// simulation loop.
package sim

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/waveforge/fluidsim/internal/config"
	"github.com/waveforge/fluidsim/internal/engine/camera"
	"github.com/waveforge/fluidsim/internal/engine/capture"
	"github.com/waveforge/fluidsim/internal/engine/input"
	"github.com/waveforge/fluidsim/internal/engine/renderer"
	"github.com/waveforge/fluidsim/internal/engine/water"
	"github.com/waveforge/fluidsim/internal/engine/window"
	"github.com/waveforge/fluidsim/internal/logger"
	"github.com/waveforge/fluidsim/pkg/math"
)

// Sim is the running simulation: one water volume, one window, one
// renderer, ticked on a fixed-step clock.
type Sim struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	volume   *water.Volume
	clock    *Clock
	recorder *capture.Recorder

	dragging   bool
	lastMouseX int
	lastMouseY int
}

// New builds the simulation from config. All configuration errors surface
// here; once New returns, the tick loop has nothing left to fail on.
func New(cfg *config.Config) (*Sim, error) {
	volume, err := water.NewVolume(water.Grid{
		Width:     cfg.Water.GridWidth,
		Depth:     cfg.Water.GridDepth,
		SizeX:     cfg.Water.SizeX,
		SizeZ:     cfg.Water.SizeZ,
		Thickness: cfg.Water.Thickness,
	}, waveComponents(cfg.Water.Waves))
	if err != nil {
		return nil, err
	}

	clock, err := NewClock(cfg.Simulation.TimeStep)
	if err != nil {
		return nil, err
	}

	s := &Sim{
		cfg:    cfg,
		volume: volume,
		clock:  clock,
	}

	logger.Info("water volume built",
		zap.Int("grid_width", cfg.Water.GridWidth),
		zap.Int("grid_depth", cfg.Water.GridDepth),
		zap.Int("vertices", volume.VertexCount()),
		zap.Int("indices", len(volume.Indices())),
	)

	// Window first: the renderer needs a live OpenGL context.
	s.window, err = window.New(window.Config{
		Title:      "fluid sim",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	s.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	}, volume)
	if err != nil {
		s.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	s.input = input.New()
	s.camera = camera.NewOrbitCamera()
	s.recorder = capture.NewRecorder(capture.Config{
		OutputDir: cfg.Capture.OutputDir,
		Duration:  cfg.Capture.DurationSeconds,
		VideoName: cfg.Capture.VideoName,
		Encode:    cfg.Capture.Encode,
	})

	return s, nil
}

// waveComponents converts config wave overrides. An empty list selects the
// built-in reference components.
func waveComponents(waves []config.WaveConfig) []water.Component {
	if len(waves) == 0 {
		return nil
	}
	components := make([]water.Component, len(waves))
	for i, w := range waves {
		components[i] = water.Component{
			Amplitude: w.Amplitude,
			Frequency: w.Frequency,
			Speed:     w.Speed,
			Direction: math.Vec2{X: w.Direction[0], Y: w.Direction[1]},
		}
	}
	return components
}

// Run starts the main loop. Each tick runs to completion before the frame
// is presented; the vertex buffer has exactly one mutator.
func (s *Sim) Run() error {
	s.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting simulation loop")

	for s.running {
		if s.input.Update() {
			s.running = false
			break
		}
		s.handleEvents()

		s.tick()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= 5*time.Second {
			logger.Debug("frame rate",
				zap.Float64("fps", float64(frameCount)/elapsed.Seconds()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handleEvents processes the input gathered this frame.
func (s *Sim) handleEvents() {
	for _, event := range s.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			s.renderer.Resize(event.Width, event.Height)

		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				s.running = false
			case sdl.SCANCODE_S:
				if err := s.recorder.Start(s.clock.Now()); err != nil {
					logger.Warn("failed to start recording", zap.Error(err))
				}
			}

		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_LEFT {
				s.dragging = true
				s.lastMouseX, s.lastMouseY = event.MouseX, event.MouseY
			}

		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_LEFT {
				s.dragging = false
			}

		case input.EventMouseMove:
			if s.dragging {
				dx := float32(event.MouseX - s.lastMouseX)
				dy := float32(event.MouseY - s.lastMouseY)
				s.camera.HandleDrag(dx, dy)
				s.lastMouseX, s.lastMouseY = event.MouseX, event.MouseY
			}

		case input.EventMouseWheel:
			s.camera.HandleZoom(float32(event.WheelY))
		}
	}
}

// tick advances the clock, reevaluates the wave field, and draws. The
// upload happens strictly after the update completes, on the same thread.
func (s *Sim) tick() {
	t := s.clock.Advance()
	s.volume.Update(t)
	s.renderer.UploadVertices(s.volume.Vertices())

	s.renderer.Begin()
	view := s.camera.ViewMatrix()
	proj := math.Perspective(
		float32(gomath.Pi/4),
		s.renderer.Aspect(),
		0.1,
		500,
	)
	s.renderer.DrawWater(view, proj, s.camera.Position())

	if s.recorder.Active() {
		pixels, w, h := s.renderer.ReadPixels()
		if _, err := s.recorder.WriteFrame(pixels, w, h); err != nil {
			logger.Warn("frame capture failed", zap.Error(err))
		}
		if s.recorder.Done(t) {
			s.recorder.Finish()
		}
	}

	s.window.SwapBuffers()
}

// Close shuts everything down in reverse creation order.
func (s *Sim) Close() {
	logger.Info("shutting down simulation")

	if s.recorder != nil && s.recorder.Active() {
		s.recorder.Finish()
	}
	if s.renderer != nil {
		s.renderer.Close()
	}
	if s.window != nil {
		s.window.Close()
	}
}

// Package capture records rendered frames to disk and assembles them into
// a video.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/waveforge/fluidsim/internal/logger"
)

// Config holds recording settings.
type Config struct {
	OutputDir string  // Parent directory for capture sessions
	Duration  float32 // Simulation seconds per recording
	VideoName string  // Output video filename
	Encode    bool    // Run ffmpeg after capture
}

// Recorder captures frames for a fixed span of simulation time. Frames are
// PNG files named frame_0000.png onward inside a timestamped session
// directory; Finish optionally encodes them with ffmpeg.
type Recorder struct {
	config Config

	active     bool
	startTime  float32
	frames     int
	sessionDir string

	// Row-flip scratch buffer, reused between frames.
	flipped []byte
}

// NewRecorder creates a recorder. Nothing touches the filesystem until
// Start.
func NewRecorder(cfg Config) *Recorder {
	return &Recorder{config: cfg}
}

// Active reports whether a recording session is in progress.
func (r *Recorder) Active() bool {
	return r.active
}

// Start begins a recording session at the given simulation time.
// Starting while active is a no-op, matching the key-toggle semantics.
func (r *Recorder) Start(simTime float32) error {
	if r.active {
		return nil
	}

	stamp := time.Now().Format("2006-01-02_15-04-05")
	dir := filepath.Join(r.config.OutputDir, "capture_"+stamp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating capture dir: %w", err)
	}

	r.active = true
	r.startTime = simTime
	r.frames = 0
	r.sessionDir = dir

	logger.Info("recording started",
		zap.String("dir", dir),
		zap.Float32("duration", r.config.Duration),
	)
	return nil
}

// WriteFrame saves one RGBA frame. Rows are flipped during the copy since
// OpenGL reads pixels bottom-up. Returns the written path.
func (r *Recorder) WriteFrame(pixels []byte, width, height int) (string, error) {
	if !r.active {
		return "", fmt.Errorf("recorder not active")
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	rowSize := width * 4
	if cap(r.flipped) < len(pixels) {
		r.flipped = make([]byte, len(pixels))
	}
	r.flipped = r.flipped[:len(pixels)]
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * rowSize
		copy(r.flipped[dst:dst+rowSize], pixels[src:src+rowSize])
	}

	img := &image.RGBA{
		Pix:    r.flipped,
		Stride: rowSize,
		Rect:   image.Rect(0, 0, width, height),
	}

	path := filepath.Join(r.sessionDir, FrameName(r.frames))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating frame file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	r.frames++
	return path, nil
}

// Done reports whether the session has covered its configured duration of
// simulation time.
func (r *Recorder) Done(simTime float32) bool {
	return r.active && simTime-r.startTime >= r.config.Duration
}

// Finish ends the session and, if configured, encodes the frames into a
// video with ffmpeg. A missing ffmpeg binary is logged, not fatal.
func (r *Recorder) Finish() {
	if !r.active {
		return
	}
	r.active = false

	fps := float32(r.frames) / r.config.Duration
	logger.Info("recording finished",
		zap.Int("frames", r.frames),
		zap.Float32("fps", fps),
	)

	if !r.config.Encode || r.frames == 0 {
		return
	}

	args := FFmpegArgs(fps, r.config.VideoName)
	cmd := exec.Command("ffmpeg", args...)
	cmd.Dir = r.sessionDir
	if out, err := cmd.CombinedOutput(); err != nil {
		logger.Warn("ffmpeg encode failed",
			zap.Error(err),
			zap.ByteString("output", out),
		)
		return
	}

	logger.Info("video encoded",
		zap.String("path", filepath.Join(r.sessionDir, r.config.VideoName)),
	)
}

// FrameName returns the filename for the n-th captured frame.
func FrameName(n int) string {
	return fmt.Sprintf("frame_%04d.png", n)
}

// FFmpegArgs builds the encode invocation for a frame sequence at the
// given rate.
func FFmpegArgs(fps float32, videoName string) []string {
	return []string{
		"-y",
		"-framerate", fmt.Sprintf("%.2f", fps),
		"-i", "frame_%04d.png",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		videoName,
	}
}

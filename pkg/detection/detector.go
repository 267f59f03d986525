// Package detection provides face detection on video frames.
package detection

import (
	"image"
	"log/slog"
)

// Region is a detected face in pixel coordinates, clamped to the frame.
type Region struct {
	Xmin, Ymin int
	Xmax, Ymax int
	Area       int
	Confidence float32
}

// Rect returns the region as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.Xmin, r.Ymin, r.Xmax, r.Ymax)
}

// Empty reports whether the region covers no pixels.
func (r Region) Empty() bool {
	return r.Xmax <= r.Xmin || r.Ymax <= r.Ymin
}

// Config holds detector configuration
type Config struct {
	ModelPath        string  // Path to the model (IR prefix or file)
	ConfidenceThresh float32 // Minimum confidence, exclusive (default 0.5)
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
	Logger           *slog.Logger
}

// DefaultConfig returns production defaults for face-detection-retail-0005
func DefaultConfig() Config {
	return Config{
		ModelPath:        "intel/face-detection-retail-0005/FP32/face-detection-retail-0005",
		ConfidenceThresh: 0.5,
		InputWidth:       300,
		InputHeight:      300,
	}
}

// Validate checks the config values.
func (c Config) Validate() error {
	if c.ConfidenceThresh < 0 || c.ConfidenceThresh > 1 {
		return ErrInvalidThreshold
	}
	if c.InputWidth <= 0 || c.InputHeight <= 0 {
		return ErrInvalidInputSize
	}
	return nil
}

package detection

import "errors"

var (
	// ErrEmptyFrame is returned when a frame has no pixels.
	ErrEmptyFrame = errors.New("detection: empty frame")

	// ErrInvalidThreshold is returned for a confidence threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("detection: confidence threshold must be within [0, 1]")

	// ErrInvalidInputSize is returned for a non-positive model input size.
	ErrInvalidInputSize = errors.New("detection: model input size must be positive")
)

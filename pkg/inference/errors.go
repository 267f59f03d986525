package inference

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrModelNotFound is returned when the model file does not exist.
	ErrModelNotFound = errors.New("inference: model not found")

	// ErrModelLoad is returned when the runtime cannot parse the model.
	ErrModelLoad = errors.New("inference: failed to load model")

	// ErrShapeMismatch is returned when tensor data and shape disagree.
	ErrShapeMismatch = errors.New("inference: tensor shape mismatch")

	// ErrEmptyOutput is returned when the model produced no output.
	ErrEmptyOutput = errors.New("inference: empty output")

	// ErrClosed is returned when inferring on a closed session.
	ErrClosed = errors.New("inference: session closed")
)

// ModelError wraps an error with the model it concerns.
type ModelError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	return fmt.Sprintf("inference [%s]: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ModelError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with model context.
// Returns nil if err is nil.
func WrapError(path string, err error) error {
	if err == nil {
		return nil
	}
	return &ModelError{Path: path, Err: err}
}

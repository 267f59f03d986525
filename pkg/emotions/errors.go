package emotions

import "errors"

var (
	// ErrEmptyFace is returned when classifying a crop with no pixels.
	ErrEmptyFace = errors.New("emotions: empty face crop")

	// ErrNoScores is returned when the model output has no elements.
	ErrNoScores = errors.New("emotions: model returned no scores")

	// ErrTooFewScores is returned when the output has no smile entry,
	// which means the model is not an emotion classifier.
	ErrTooFewScores = errors.New("emotions: model output too short for a smile score")

	// ErrInvalidInputSize is returned for a non-positive model input size.
	ErrInvalidInputSize = errors.New("emotions: model input size must be positive")
)

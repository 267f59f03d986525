package smile

import "errors"

// ErrNoFace is returned when no face was detected in any frame.
var ErrNoFace = errors.New("smile: no face detected")

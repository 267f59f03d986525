// Package smile picks the frame with the strongest smile from a sequence of
// frames.
package smile

import (
	"image"

	"github.com/teslashibe/go-smile/pkg/detection"
	"github.com/teslashibe/go-smile/pkg/emotions"
	"github.com/teslashibe/go-smile/pkg/video"
)

// Face is one detected face with its emotion scores.
type Face struct {
	Region detection.Region
	Scores emotions.Scores
}

// Smile returns the face's smile score.
func (f Face) Smile() float32 {
	return f.Scores.Smile()
}

// State is the running best frame of one traversal. The zero value is the
// initial state: score 0 and no frame.
type State struct {
	// Score is the highest smile score seen so far. It never decreases.
	Score float32

	// Frame is a full, uncropped copy of the frame that produced Score.
	Frame image.Image

	// Index is the 0-based position of Frame in the sequence.
	Index int

	// Faces are the faces found in Frame.
	Faces []Face
}

// Found reports whether any frame has been selected.
func (s State) Found() bool {
	return s.Frame != nil
}

// Consider folds one frame into s. Faces are visited in order and a face
// replaces the incumbent only when its smile score is strictly greater.
// The returned bool reports whether the frame became the new best.
func Consider(s State, frame image.Image, index int, faces []Face) (State, bool) {
	best := s.Score
	for _, f := range faces {
		if sc := f.Smile(); sc > best {
			best = sc
		}
	}
	if best <= s.Score {
		return s, false
	}

	return State{
		Score: best,
		Frame: video.Clone(frame),
		Index: index,
		Faces: append([]Face(nil), faces...),
	}, true
}

// Package emotions scores facial expressions on cropped face images.
//
// The classifier returns the model's raw score vector. Scores are compared
// only against other scores from the same model; they are not assumed to be
// probabilities.
package emotions

import "image/color"

// Category indices of the emotion recognition model output.
const (
	Neutral = iota
	Happy
	Sad
	Surprise
	Anger
)

// SmileIndex is the output index read as the smile score.
const SmileIndex = Happy

// Labels names each output index.
var Labels = []string{"neutral", "happy", "sad", "surprise", "anger"}

// Scores is the raw output vector of the classifier.
type Scores []float32

// Smile returns the smile score, or 0 if the vector is too short.
func (s Scores) Smile() float32 {
	return s.At(SmileIndex)
}

// At returns the score at index i, or 0 when out of range.
func (s Scores) At(i int) float32 {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

// Dominant returns the index of the highest score, or -1 for an empty vector.
// Ties resolve to the lowest index.
func (s Scores) Dominant() int {
	best := -1
	for i, v := range s {
		if best < 0 || v > s[best] {
			best = i
		}
	}
	return best
}

// Label returns the name of category i.
func Label(i int) string {
	if i < 0 || i >= len(Labels) {
		return "unknown"
	}
	return Labels[i]
}

// Palette colours a face box by its dominant emotion.
var Palette = []color.RGBA{
	Neutral:  {0, 0, 255, 255},
	Happy:    {255, 255, 0, 255},
	Sad:      {0, 255, 0, 255},
	Surprise: {255, 0, 255, 255},
	Anger:    {255, 0, 0, 255},
}

// Color picks the box colour for s. In smile mode every non-smiling face
// gets the neutral colour.
func Color(s Scores, smileMode bool) color.RGBA {
	d := s.Dominant()
	switch {
	case d == SmileIndex:
		return Palette[SmileIndex]
	case smileMode || d < 0 || d >= len(Palette):
		return Palette[Neutral]
	default:
		return Palette[d]
	}
}

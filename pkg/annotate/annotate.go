// Package annotate draws face boxes on frames for display and export.
package annotate

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/teslashibe/go-smile/pkg/emotions"
	"github.com/teslashibe/go-smile/pkg/smile"
)

// Box is a rectangle to outline.
type Box struct {
	Rect  image.Rectangle
	Color color.Color
	Label string
}

// Options controls how boxes are drawn.
type Options struct {
	LineWidth float64 // Stroke width in pixels
	Labels    bool    // Draw a text label above each box
	SmileMode bool    // Colour only smiling faces, everything else as neutral
	FontPath  string  // TrueType font for labels; empty uses the built-in face
	FontSize  float64 // Font size in points when FontPath is set
}

// DefaultOptions returns 3px boxes coloured by every emotion, without labels.
func DefaultOptions() Options {
	return Options{
		LineWidth: 3,
		FontSize:  14,
	}
}

// Draw returns a copy of frame with boxes outlined. frame is not modified.
func Draw(frame image.Image, boxes []Box, opts Options) (image.Image, error) {
	dc := gg.NewContextForImage(frame)
	origin := frame.Bounds().Min

	if opts.Labels && opts.FontPath != "" {
		if err := dc.LoadFontFace(opts.FontPath, opts.FontSize); err != nil {
			return nil, fmt.Errorf("load font %s: %w", opts.FontPath, err)
		}
	}

	dc.SetLineWidth(opts.LineWidth)
	for _, b := range boxes {
		if b.Rect.Empty() {
			continue
		}
		r := b.Rect.Sub(origin)
		dc.SetColor(b.Color)
		dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
		dc.Stroke()

		if opts.Labels && b.Label != "" {
			y := float64(r.Min.Y) - opts.LineWidth - 2
			if y < dc.FontHeight() {
				y = float64(r.Max.Y) + opts.LineWidth + dc.FontHeight()
			}
			dc.DrawString(b.Label, float64(r.Min.X), y)
		}
	}
	return dc.Image(), nil
}

// FaceBoxes builds one box per face, coloured by its dominant emotion.
func FaceBoxes(faces []smile.Face, smileMode bool) []Box {
	boxes := make([]Box, 0, len(faces))
	for _, f := range faces {
		boxes = append(boxes, Box{
			Rect:  f.Region.Rect(),
			Color: emotions.Color(f.Scores, smileMode),
			Label: fmt.Sprintf("%s %.2f", emotions.Label(emotions.SmileIndex), f.Smile()),
		})
	}
	return boxes
}

// Faces outlines faces on a copy of frame.
func Faces(frame image.Image, faces []smile.Face, opts Options) (image.Image, error) {
	return Draw(frame, FaceBoxes(faces, opts.SmileMode), opts)
}

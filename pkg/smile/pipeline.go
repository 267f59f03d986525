package smile

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/teslashibe/go-smile/internal/log"
	"github.com/teslashibe/go-smile/pkg/detection"
	"github.com/teslashibe/go-smile/pkg/emotions"
	"github.com/teslashibe/go-smile/pkg/video"
)

// Detector finds faces in a frame, largest first.
type Detector interface {
	Detect(frame image.Image) ([]detection.Region, error)
}

// Classifier scores emotions on a face crop.
type Classifier interface {
	Classify(face image.Image) (emotions.Scores, error)
}

// Pipeline runs detection and classification over frames.
// It holds no per-video state and is safe to share between requests when
// its detector and classifier are.
type Pipeline struct {
	detector   Detector
	classifier Classifier
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a pipeline.
func New(d Detector, c Classifier, opts ...Option) *Pipeline {
	p := &Pipeline{detector: d, classifier: c}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = log.Or(p.logger)
	return p
}

// Analyze detects the faces in frame and scores each one.
// Faces with an empty region are skipped.
func (p *Pipeline) Analyze(frame image.Image) ([]Face, error) {
	regions, err := p.detector.Detect(frame)
	if err != nil {
		return nil, err
	}

	faces := make([]Face, 0, len(regions))
	for i, r := range regions {
		if r.Empty() {
			p.logger.Debug("skipping empty face region", "index", i, "region", r.Rect())
			continue
		}
		scores, err := p.classifier.Classify(detection.Crop(frame, r))
		if errors.Is(err, emotions.ErrEmptyFace) {
			continue
		}
		if err != nil {
			return nil, err
		}
		faces = append(faces, Face{Region: r, Scores: scores})
	}
	return faces, nil
}

// Result is the outcome of a full traversal.
type Result struct {
	State

	// Frames is the number of frames processed.
	Frames int
}

// Progress is called after every processed frame with its index.
type Progress func(index int)

// FindBest processes every frame of src and returns the frame with the
// highest smile score. It returns ErrNoFace if no frame was selected.
// src is closed before FindBest returns.
func (p *Pipeline) FindBest(ctx context.Context, src video.Source, progress Progress) (Result, error) {
	var (
		state State
		index int
	)

	err := video.Run(ctx, src, func(frame image.Image) error {
		faces, err := p.Analyze(frame)
		if err != nil {
			return fmt.Errorf("frame %d: %w", index, err)
		}

		var improved bool
		state, improved = Consider(state, frame, index, faces)
		if improved {
			p.logger.Info("new best frame", "frame", index, "smile_score", state.Score)
		}

		if progress != nil {
			progress(index)
		}
		index++
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	res := Result{State: state, Frames: index}
	if !state.Found() {
		p.logger.Info("no face detected", "frames", index)
		return res, ErrNoFace
	}
	return res, nil
}

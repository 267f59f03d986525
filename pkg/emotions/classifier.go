package emotions

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/teslashibe/go-smile/internal/log"
	"github.com/teslashibe/go-smile/pkg/inference"
)

// Config holds classifier configuration.
type Config struct {
	ModelPath   string // Path to the model (IR prefix or file)
	InputWidth  int    // Model input width
	InputHeight int    // Model input height
	Logger      *slog.Logger
}

// DefaultConfig returns defaults for emotions-recognition-retail-0003.
func DefaultConfig() Config {
	return Config{
		ModelPath:   "intel/emotions-recognition-retail-0003/FP32/emotions-recognition-retail-0003",
		InputWidth:  64,
		InputHeight: 64,
	}
}

// Validate checks the config values.
func (c Config) Validate() error {
	if c.InputWidth <= 0 || c.InputHeight <= 0 {
		return ErrInvalidInputSize
	}
	return nil
}

// Classifier scores emotions on face crops.
type Classifier struct {
	session inference.Session
	config  Config
	logger  *slog.Logger
}

// New creates a classifier running on an already loaded session.
func New(session inference.Session, cfg Config) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{
		session: session,
		config:  cfg,
		logger:  log.Or(cfg.Logger).With("component", "emotions"),
	}, nil
}

// Load loads cfg.ModelPath with rt and creates a classifier on it.
func Load(rt inference.Runtime, cfg Config) (*Classifier, error) {
	session, err := rt.Load(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load emotion classifier: %w", err)
	}
	c, err := New(session, cfg)
	if err != nil {
		session.Close()
		return nil, err
	}
	return c, nil
}

// Classify returns the raw emotion scores for a face crop.
func (c *Classifier) Classify(face image.Image) (Scores, error) {
	if face.Bounds().Empty() {
		return nil, ErrEmptyFace
	}

	input := inference.FromImage(face, c.config.InputWidth, c.config.InputHeight, inference.BGR)
	out, err := c.session.Infer(input)
	if err != nil {
		return nil, fmt.Errorf("emotion recognition: %w", err)
	}

	sq := out.Squeeze()
	if len(sq.Data) == 0 {
		return nil, ErrNoScores
	}
	if len(sq.Data) <= SmileIndex {
		return nil, fmt.Errorf("%w: got %d, need at least %d", ErrTooFewScores, len(sq.Data), SmileIndex+1)
	}

	scores := make(Scores, len(sq.Data))
	copy(scores, sq.Data)

	c.logger.Debug("face classified", "size", face.Bounds().Size(), "smile", scores.Smile(), "dominant", Label(scores.Dominant()))
	return scores, nil
}

// Close releases the model session.
func (c *Classifier) Close() error {
	return c.session.Close()
}

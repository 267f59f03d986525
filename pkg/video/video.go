// Package video provides frame sources (video files and live cameras) and
// the loop that drives a per-frame handler over them.
package video

import (
	"context"
	"errors"
	"image"
	"io"
	"time"

	"github.com/teslashibe/go-smile/internal/log"
)

// Source yields frames in order.
//
// Read returns io.EOF when a bounded source is exhausted and ErrFrameDropped
// when a live source failed to deliver one frame but may deliver the next.
type Source interface {
	Read() (image.Image, error)
	Close() error
}

// Handler processes one frame. Returning ErrStop ends the loop cleanly.
type Handler func(frame image.Image) error

// DefaultDropBackoff is how long Run waits after a dropped frame.
const DefaultDropBackoff = 20 * time.Millisecond

type runConfig struct {
	backoff   time.Duration
	onDropped func(err error) error
}

// RunOption configures Run.
type RunOption func(*runConfig)

// WithDropBackoff sets the wait after a dropped frame. Zero retries at once.
func WithDropBackoff(d time.Duration) RunOption {
	return func(c *runConfig) { c.backoff = d }
}

// OnDropped registers fn to run after every dropped frame, so a live loop
// can keep polling for input while the device delivers nothing. Errors from
// fn are treated like handler errors.
func OnDropped(fn func(err error) error) RunOption {
	return func(c *runConfig) { c.onDropped = fn }
}

// Run feeds every frame of src to handle until the source is exhausted,
// ctx is cancelled, or handle returns ErrStop. Those three cases return nil;
// any other error from the source or the handler is returned.
//
// Dropped frames are skipped after a short backoff.
// Run owns src and closes it on every exit path.
func Run(ctx context.Context, src Source, handle Handler, opts ...RunOption) (err error) {
	cfg := runConfig{backoff: DefaultDropBackoff}
	for _, opt := range opts {
		opt(&cfg)
	}

	defer func() {
		if cerr := src.Close(); err == nil {
			err = cerr
		}
	}()

	var dropped int
	for {
		select {
		case <-ctx.Done():
			log.Debug("frame loop cancelled", "reason", ctx.Err())
			return nil
		default:
		}

		frame, rerr := src.Read()
		switch {
		case errors.Is(rerr, io.EOF):
			return nil
		case errors.Is(rerr, ErrFrameDropped):
			dropped++
			if dropped == 1 {
				log.Warn("frame dropped", "error", rerr)
			} else {
				log.Debug("frame dropped", "error", rerr, "consecutive", dropped)
			}
			if cfg.onDropped != nil {
				if derr := cfg.onDropped(rerr); derr != nil {
					return stopOrErr(derr)
				}
			}
			if cfg.backoff > 0 {
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(cfg.backoff):
				}
			}
			continue
		case rerr != nil:
			return rerr
		}
		dropped = 0

		if herr := handle(frame); herr != nil {
			return stopOrErr(herr)
		}
	}
}

func stopOrErr(err error) error {
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

package inference

import (
	"log/slog"

	"gocv.io/x/gocv"
)

// Config holds runtime configuration.
type Config struct {
	// Backend selects the OpenCV DNN backend (default, OpenVINO, CUDA...).
	Backend gocv.NetBackendType

	// Target selects the compute device.
	Target gocv.NetTargetType

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring the runtime.
type Option func(*Config)

// WithBackend sets the DNN backend.
func WithBackend(b gocv.NetBackendType) Option {
	return func(c *Config) { c.Backend = b }
}

// WithTarget sets the DNN compute target.
func WithTarget(t gocv.NetTargetType) Option {
	return func(c *Config) { c.Target = t }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig returns CPU defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend: gocv.NetBackendDefault,
		Target:  gocv.NetTargetCPU,
		Logger:  slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

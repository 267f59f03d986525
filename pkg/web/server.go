// Package web serves the smile picker over HTTP.
package web

import (
	"context"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/teslashibe/go-smile/internal/config"
	"github.com/teslashibe/go-smile/internal/log"
	"github.com/teslashibe/go-smile/pkg/smile"
	"github.com/teslashibe/go-smile/pkg/video"
)

// Finder picks the best frame of a video.
type Finder interface {
	FindBest(ctx context.Context, src video.Source, progress smile.Progress) (smile.Result, error)
}

// Opener opens a saved upload as a frame source.
type Opener func(path string) (video.Source, error)

// Config holds server configuration.
type Config struct {
	Port          string // Listen port
	TempDir       string // Where uploads and results are written
	FieldName     string // Multipart field carrying the video
	NoFaceMessage string // Error body when no face was found
	JPEGQuality   int    // Quality of the returned JPEG (1-100)
	BodyLimit     int    // Maximum request body size in bytes
	Logger        *slog.Logger
}

// DefaultConfig returns the defaults for the upload endpoint.
func DefaultConfig() Config {
	return Config{
		Port:          config.DefaultPort,
		TempDir:       os.TempDir(),
		FieldName:     config.DefaultUploadFieldName,
		NoFaceMessage: config.DefaultNoFaceMessage,
		JPEGQuality:   config.DefaultJPEGQuality,
		BodyLimit:     200 << 20,
	}
}

// Server is the upload HTTP server.
type Server struct {
	app    *fiber.App
	config Config
	finder Finder
	open   Opener
	logger *slog.Logger
}

// NewServer creates the server and registers its routes.
func NewServer(finder Finder, open Opener, cfg Config) *Server {
	s := &Server{
		config: cfg,
		finder: finder,
		open:   open,
		logger: log.Or(cfg.Logger).With("component", "web"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "go-smile",
		DisableStartupMessage: true,
		BodyLimit:             cfg.BodyLimit,
	})

	// The front-end is served from another origin.
	app.Use(cors.New())

	app.Post("/upload", s.handleUpload)

	s.app = app
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens on the configured port and blocks until shutdown.
func (s *Server) Start() error {
	s.logger.Info("listening", "addr", "http://localhost:"+s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

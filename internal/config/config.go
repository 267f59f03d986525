// Package config provides configuration helpers for go-smile commands.
// Every value can be set through the environment; command flags override it.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Defaults used when the environment does not say otherwise.
const (
	DefaultPort            = "8000"
	DefaultModelDir        = "intel"
	DefaultPrecision       = "FP32"
	DefaultDetectorModel   = "face-detection-retail-0005"
	DefaultEmotionsModel   = "emotions-recognition-retail-0003"
	DefaultConfidence      = 0.5
	DefaultDevice          = 0
	DefaultLogLevel        = "info"
	DefaultJPEGQuality     = 95
	DefaultWindowTitle     = "frame"
	DefaultNoFaceMessage   = "顔が検出されませんでした。"
	DefaultUploadFieldName = "file"
)

// Config is the process-wide configuration shared by all subcommands.
type Config struct {
	Port          string
	ModelDir      string
	DetectorModel string
	EmotionsModel string
	Confidence    float64
	Device        int
	LogLevel      string
	JPEGQuality   int
}

// FromEnv reads the configuration from SMILE_* environment variables.
func FromEnv() Config {
	return Config{
		Port:          String("SMILE_PORT", DefaultPort),
		ModelDir:      String("SMILE_MODEL_DIR", DefaultModelDir),
		DetectorModel: String("SMILE_DETECTOR_MODEL", DefaultDetectorModel),
		EmotionsModel: String("SMILE_EMOTIONS_MODEL", DefaultEmotionsModel),
		Confidence:    Float("SMILE_CONFIDENCE", DefaultConfidence),
		Device:        Int("SMILE_DEVICE", DefaultDevice),
		LogLevel:      String("SMILE_LOG_LEVEL", DefaultLogLevel),
		JPEGQuality:   Int("SMILE_JPEG_QUALITY", DefaultJPEGQuality),
	}
}

// DetectorPath returns the resolved path of the face detection model.
func (c Config) DetectorPath() string {
	return ModelPath(c.ModelDir, c.DetectorModel)
}

// EmotionsPath returns the resolved path of the emotion recognition model.
func (c Config) EmotionsPath() string {
	return ModelPath(c.ModelDir, c.EmotionsModel)
}

// ModelPath resolves a model name to a path.
// Names that already look like a file (.onnx, .xml, .bin or containing a
// separator) are returned unchanged. Plain names follow the Open Model Zoo
// layout <dir>/<name>/FP32/<name> and are used as an IR prefix.
func ModelPath(dir, name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".onnx", ".xml", ".bin":
		return name
	}
	if strings.ContainsRune(name, os.PathSeparator) {
		return name
	}
	return filepath.Join(dir, name, DefaultPrecision, name)
}

// String returns the env var value or def when unset.
func String(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Int returns the env var parsed as int, or def when unset or invalid.
func Int(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Float returns the env var parsed as float64, or def when unset or invalid.
func Float(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

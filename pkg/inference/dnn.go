package inference

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gocv.io/x/gocv"
)

// DNN is a Runtime backed by the OpenCV dnn module.
// It reads OpenVINO IR (.xml + .bin), ONNX and Caffe models.
type DNN struct {
	config *Config
}

// NewDNN creates an OpenCV DNN runtime.
func NewDNN(opts ...Option) *DNN {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	return &DNN{config: cfg}
}

// Load reads the model at path.
// path may be a model file or an IR prefix without extension, in which case
// path.bin and path.xml are used.
func (r *DNN) Load(path string) (Session, error) {
	model, config, err := resolveModel(path)
	if err != nil {
		return nil, WrapError(path, err)
	}

	net := gocv.ReadNet(model, config)
	if net.Empty() {
		return nil, WrapError(path, ErrModelLoad)
	}

	net.SetPreferableBackend(r.config.Backend)
	net.SetPreferableTarget(r.config.Target)

	r.config.Logger.Debug("model loaded", "model", model, "config", config)

	return &dnnSession{net: net, path: path}, nil
}

// resolveModel maps a user path to the (model, config) pair ReadNet wants.
func resolveModel(path string) (model, config string, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		model = strings.TrimSuffix(path, filepath.Ext(path)) + ".bin"
		config = path
	case ".onnx", ".bin", ".pb", ".caffemodel":
		model = path
		if strings.EqualFold(filepath.Ext(path), ".bin") {
			if xml := strings.TrimSuffix(path, filepath.Ext(path)) + ".xml"; exists(xml) {
				config = xml
			}
		}
	default:
		model = path + ".bin"
		config = path + ".xml"
	}

	if !exists(model) {
		return "", "", fmt.Errorf("%w: %s", ErrModelNotFound, model)
	}
	if config != "" && !exists(config) {
		return "", "", fmt.Errorf("%w: %s", ErrModelNotFound, config)
	}
	return model, config, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// dnnSession wraps a gocv.Net. Net is not safe for concurrent use, so
// inference is serialized.
type dnnSession struct {
	net    gocv.Net
	path   string
	mu     sync.Mutex
	closed bool
}

// Infer implements Session.
func (s *dnnSession) Infer(input Tensor) (Tensor, error) {
	if err := input.Validate(); err != nil {
		return Tensor{}, WrapError(s.path, err)
	}

	data := input.Bytes()
	blob, err := gocv.NewMatWithSizesFromBytes(input.Shape, gocv.MatTypeCV32F, data)
	if err != nil {
		return Tensor{}, WrapError(s.path, fmt.Errorf("create blob: %w", err))
	}
	defer blob.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Tensor{}, WrapError(s.path, ErrClosed)
	}

	s.net.SetInput(blob, "")
	out := s.net.Forward("")
	defer out.Close()

	if out.Empty() {
		return Tensor{}, WrapError(s.path, ErrEmptyOutput)
	}

	values, err := out.DataPtrFloat32()
	if err != nil {
		return Tensor{}, WrapError(s.path, fmt.Errorf("read output: %w", err))
	}

	// values aliases Mat memory that is freed by out.Close.
	result := Tensor{
		Shape: out.Size(),
		Data:  append([]float32(nil), values...),
	}
	if result.Len() != len(result.Data) {
		result.Shape = []int{len(result.Data)}
	}
	return result, nil
}

// Close implements Session.
func (s *dnnSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.net.Close()
}

// Package inference abstracts the neural network runtime behind a small
// capability interface.
//
// A Runtime loads a model file and returns a Session. A Session runs the
// model on a fixed-size input Tensor and returns the raw output Tensor.
// Pipeline code only ever talks to these two interfaces, so the runtime can
// be swapped (OpenCV DNN, a test mock) without touching detection or
// classification logic.
//
// Example usage:
//
//	rt := inference.NewDNN(inference.WithTarget(gocv.NetTargetCPU))
//	sess, _ := rt.Load("intel/face-detection-retail-0005/FP32/face-detection-retail-0005")
//	defer sess.Close()
//
//	in := inference.FromImage(frame, 300, 300, inference.BGR)
//	out, _ := sess.Infer(in)
package inference

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Session is a loaded model ready for inference.
// Implementations must be safe for concurrent use.
type Session interface {
	// Infer runs the model on input and returns the raw output tensor.
	Infer(input Tensor) (Tensor, error)

	// Close releases the model resources.
	Close() error
}

// Runtime loads models into sessions.
type Runtime interface {
	// Load reads the model at path and prepares it for inference.
	Load(path string) (Session, error)
}

// Tensor is a dense row-major float32 tensor.
type Tensor struct {
	Shape []int
	Data  []float32
}

// NewTensor allocates a zero-filled tensor with the given shape.
func NewTensor(shape ...int) Tensor {
	s := append([]int(nil), shape...)
	return Tensor{
		Shape: s,
		Data:  make([]float32, elements(s)),
	}
}

// Len returns the number of elements described by Shape.
func (t Tensor) Len() int {
	return elements(t.Shape)
}

// Validate checks that Data matches Shape.
func (t Tensor) Validate() error {
	if len(t.Shape) == 0 {
		return fmt.Errorf("%w: no dimensions", ErrShapeMismatch)
	}
	for _, d := range t.Shape {
		if d <= 0 {
			return fmt.Errorf("%w: non-positive dimension in %v", ErrShapeMismatch, t.Shape)
		}
	}
	if n := t.Len(); n != len(t.Data) {
		return fmt.Errorf("%w: shape %v wants %d elements, have %d", ErrShapeMismatch, t.Shape, n, len(t.Data))
	}
	return nil
}

// Squeeze returns the tensor with every dimension of size 1 removed.
// The data is shared. A tensor with a single element keeps shape [1].
func (t Tensor) Squeeze() Tensor {
	var shape []int
	for _, d := range t.Shape {
		if d != 1 {
			shape = append(shape, d)
		}
	}
	if len(shape) == 0 {
		shape = []int{1}
	}
	return Tensor{Shape: shape, Data: t.Data}
}

// Rows splits the data into consecutive rows of the given width.
// Detection outputs shaped [1,1,N,7] are read with Rows(7).
func (t Tensor) Rows(width int) ([][]float32, error) {
	if width <= 0 || len(t.Data)%width != 0 {
		return nil, fmt.Errorf("%w: %d elements not divisible into rows of %d", ErrShapeMismatch, len(t.Data), width)
	}
	rows := make([][]float32, 0, len(t.Data)/width)
	for i := 0; i < len(t.Data); i += width {
		rows = append(rows, t.Data[i:i+width:i+width])
	}
	return rows, nil
}

// Bytes returns the data as little-endian IEEE-754 bytes.
func (t Tensor) Bytes() []byte {
	buf := make([]byte, 0, len(t.Data)*4)
	for _, v := range t.Data {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}

func elements(shape []int) int {
	if len(shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

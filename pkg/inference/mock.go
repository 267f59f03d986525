package inference

import (
	"sync"
	"time"
)

// Mock implements Session for testing.
type Mock struct {
	// InferFunc is called when Infer is invoked.
	InferFunc func(input Tensor) (Tensor, error)

	// CloseFunc is called when Close is invoked.
	CloseFunc func() error

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a method invocation.
type MockCall struct {
	Method string
	Shape  []int
	Time   time.Time
}

// NewMock creates a mock session that always returns output.
func NewMock(output Tensor) *Mock {
	return &Mock{
		InferFunc: func(Tensor) (Tensor, error) {
			return output, nil
		},
	}
}

// WithError returns a mock that always fails with err.
func WithError(err error) *Mock {
	return &Mock{
		InferFunc: func(Tensor) (Tensor, error) {
			return Tensor{}, err
		},
	}
}

// Infer calls InferFunc and records the call.
func (m *Mock) Infer(input Tensor) (Tensor, error) {
	m.record("Infer", input.Shape)
	if m.InferFunc != nil {
		return m.InferFunc(input)
	}
	return Tensor{}, ErrEmptyOutput
}

// Close calls CloseFunc and records the call.
func (m *Mock) Close() error {
	m.record("Close", nil)
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func (m *Mock) record(method string, shape []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{
		Method: method,
		Shape:  append([]int(nil), shape...),
		Time:   time.Now(),
	})
}

// Calls returns all recorded method calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]MockCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns the number of times a method was called.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if c.Method == method {
			count++
		}
	}
	return count
}

// LastCall returns the most recent call, or nil if none.
func (m *Mock) LastCall() *MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	call := m.calls[len(m.calls)-1]
	return &call
}

// Reset clears all recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// MockRuntime implements Runtime for testing.
type MockRuntime struct {
	// Sessions maps model paths to the session Load returns.
	Sessions map[string]Session

	mu     sync.Mutex
	loaded []string
}

// Load returns the session registered for path.
func (r *MockRuntime) Load(path string) (Session, error) {
	r.mu.Lock()
	r.loaded = append(r.loaded, path)
	r.mu.Unlock()

	if s, ok := r.Sessions[path]; ok {
		return s, nil
	}
	return nil, WrapError(path, ErrModelNotFound)
}

// Loaded returns the paths passed to Load, in order.
func (r *MockRuntime) Loaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.loaded...)
}

// Verify implementations at compile time.
var (
	_ Session = (*Mock)(nil)
	_ Session = (*dnnSession)(nil)
	_ Runtime = (*MockRuntime)(nil)
	_ Runtime = (*DNN)(nil)
)

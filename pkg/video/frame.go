package video

import (
	"image"
	"image/draw"
	"image/jpeg"
	"io"
	"sync"
)

// Clone returns a deep copy of img with its origin moved to (0,0).
func Clone(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// EncodeJPEG writes img as a JPEG at the given quality (1-100).
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// SliceSource replays a fixed list of frames. It is used for tests and for
// single still images.
type SliceSource struct {
	frames []image.Image
	next   int

	mu     sync.Mutex
	closed bool
}

// NewSliceSource creates a source over frames.
func NewSliceSource(frames ...image.Image) *SliceSource {
	return &SliceSource{frames: frames}
}

// Read implements Source.
func (s *SliceSource) Read() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.next >= len(s.frames) {
		return nil, io.EOF
	}
	f := s.frames[s.next]
	s.next++
	return f, nil
}

// FrameCount returns the number of frames.
func (s *SliceSource) FrameCount() int {
	return len(s.frames)
}

// Close implements Source.
func (s *SliceSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *SliceSource) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

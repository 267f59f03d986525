package video

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/teslashibe/go-smile/internal/log"
	"gocv.io/x/gocv"
)

// capture is the subset of *gocv.VideoCapture used by the sources.
type capture interface {
	Read(m *gocv.Mat) bool
	Set(prop gocv.VideoCaptureProperties, param float64)
	Get(prop gocv.VideoCaptureProperties) float64
	IsOpened() bool
	Close() error
}

// File is a bounded Source decoding a video file.
type File struct {
	vc     capture
	path   string
	buf    gocv.Mat
	index  int
	frames int
	logger *slog.Logger
}

// OpenFile opens a video file for sequential decoding.
func OpenFile(path string) (*File, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOpen, path, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w %s", ErrOpen, path)
	}

	f := &File{
		vc:     vc,
		path:   path,
		buf:    gocv.NewMat(),
		frames: int(vc.Get(gocv.VideoCaptureFrameCount)),
		logger: log.With("source", path),
	}
	f.logger.Debug("video opened", "frames", f.frames, "fps", vc.Get(gocv.VideoCaptureFPS))
	return f, nil
}

// Read implements Source. A failed read before the known end of the file is
// logged and treated as the end of the stream.
func (f *File) Read() (image.Image, error) {
	if ok := f.vc.Read(&f.buf); !ok || f.buf.Empty() {
		switch {
		case f.frames > 0 && f.index < f.frames:
			f.logger.Warn("frame read failed, ending stream early", "frame", f.index, "frames", f.frames)
		case f.frames <= 0:
			// Without a container frame count a failed read and the real end
			// look the same.
			f.logger.Debug("stream ended, frame count unknown", "frame", f.index)
		}
		return nil, io.EOF
	}

	img, err := f.buf.ToImage()
	if err != nil {
		f.logger.Warn("frame conversion failed, ending stream early", "frame", f.index, "error", err)
		return nil, io.EOF
	}
	f.index++
	return img, nil
}

// FrameCount returns the container's frame count, or 0 when unknown.
func (f *File) FrameCount() int {
	return max(f.frames, 0)
}

// Close releases the decoder.
func (f *File) Close() error {
	f.buf.Close()
	return f.vc.Close()
}

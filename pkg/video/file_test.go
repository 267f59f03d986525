package video

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-smile/pkg/camera"
)

func newTestFile(t *testing.T, frames, index int, logs *bytes.Buffer) (*File, *fakeCapture) {
	t.Helper()
	fc := &fakeCapture{opened: true}
	f := &File{
		vc:     fc,
		path:   "clip.mp4",
		buf:    gocv.NewMat(),
		frames: frames,
		index:  index,
		logger: slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	return f, fc
}

func TestFileRead_FailureEndsStream(t *testing.T) {
	tests := []struct {
		name    string
		frames  int
		index   int
		wantLog string
	}{
		{"mid-stream failure", 10, 3, "level=WARN msg=\"frame read failed, ending stream early\""},
		{"unknown frame count", 0, 3, "level=DEBUG msg=\"stream ended, frame count unknown\""},
		{"past the last frame", 10, 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			f, fc := newTestFile(t, tt.frames, tt.index, &logs)

			img, err := f.Read()
			if !errors.Is(err, io.EOF) {
				t.Errorf("expected io.EOF, got %v", err)
			}
			if img != nil {
				t.Error("expected no frame")
			}

			if tt.wantLog == "" {
				if logs.Len() != 0 {
					t.Errorf("normal end of stream should not log, got %q", logs.String())
				}
			} else if !strings.Contains(logs.String(), tt.wantLog) {
				t.Errorf("log %q does not contain %q", logs.String(), tt.wantLog)
			}

			if err := f.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
			if fc.closed != 1 {
				t.Errorf("capture should be closed once, got %d", fc.closed)
			}
		})
	}
}

func TestCameraRead_DroppedFrame(t *testing.T) {
	d := newTestDevices(func(int) (capture, error) {
		return &fakeCapture{opened: true}, nil
	})
	cam, err := d.Open(2, camera.DefaultConfig())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer cam.Close()

	for i := 0; i < 2; i++ {
		img, err := cam.Read()
		if !errors.Is(err, ErrFrameDropped) {
			t.Fatalf("read %d: expected ErrFrameDropped, got %v", i, err)
		}
		if errors.Is(err, io.EOF) {
			t.Fatal("a live source must never report io.EOF")
		}
		if img != nil {
			t.Errorf("read %d: expected no frame", i)
		}
	}
}

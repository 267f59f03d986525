package detection

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/teslashibe/go-smile/internal/log"
	"github.com/teslashibe/go-smile/pkg/inference"
)

func detections(rows ...[7]float32) inference.Tensor {
	t := inference.Tensor{Shape: []int{1, 1, len(rows), 7}}
	for _, r := range rows {
		t.Data = append(t.Data, r[:]...)
	}
	return t
}

func TestParse_Threshold(t *testing.T) {
	out := detections(
		[7]float32{0, 1, 0.9, 0.1, 0.1, 0.2, 0.2},
		[7]float32{0, 1, 0.5, 0.3, 0.3, 0.4, 0.4}, // equal to threshold: dropped
		[7]float32{0, 1, 0.51, 0.5, 0.5, 0.6, 0.6},
	)

	regions, err := Parse(out, 100, 100, 0.5)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions above threshold, got %d", len(regions))
	}
}

func TestParse_Denormalize(t *testing.T) {
	out := detections([7]float32{0, 1, 0.8, 0.25, 0.5, 0.75, 1.0})

	regions, err := Parse(out, 200, 100, 0.5)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := Region{Xmin: 50, Ymin: 50, Xmax: 150, Ymax: 100, Area: 5000, Confidence: 0.8}
	if regions[0] != want {
		t.Errorf("got %+v, want %+v", regions[0], want)
	}
}

func TestParse_ClampsInsteadOfDropping(t *testing.T) {
	out := detections([7]float32{0, 1, 0.9, -0.1, -0.2, 1.3, 1.5})

	regions, err := Parse(out, 640, 480, 0.5)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("out-of-frame box must be clamped, not dropped; got %d regions", len(regions))
	}

	r := regions[0]
	if r.Xmin != 0 || r.Ymin != 0 {
		t.Errorf("min corner: got (%d,%d), want (0,0)", r.Xmin, r.Ymin)
	}
	if r.Xmax != 640 {
		t.Errorf("Xmax: got %d, want exactly frame width 640", r.Xmax)
	}
	if r.Ymax != 480 {
		t.Errorf("Ymax: got %d, want exactly frame height 480", r.Ymax)
	}
	if r.Area != 640*480 {
		t.Errorf("Area: got %d, want %d", r.Area, 640*480)
	}
}

func TestParse_SortedByAreaStable(t *testing.T) {
	out := detections(
		[7]float32{0, 1, 0.6, 0.0, 0.0, 0.1, 0.1},   // area 100
		[7]float32{0, 1, 0.7, 0.0, 0.0, 0.5, 0.5},   // area 2500
		[7]float32{0, 1, 0.8, 0.5, 0.5, 0.6, 0.6},   // area 100, later
		[7]float32{0, 1, 0.9, 0.2, 0.2, 0.45, 0.45}, // area 625
	)

	regions, err := Parse(out, 100, 100, 0.5)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantConf := []float32{0.7, 0.9, 0.6, 0.8}
	for i, r := range regions {
		if r.Confidence != wantConf[i] {
			t.Errorf("position %d: got confidence %v, want %v (regions %+v)", i, r.Confidence, wantConf[i], regions)
		}
	}
}

func TestParse_StopsAtTerminator(t *testing.T) {
	out := detections(
		[7]float32{0, 1, 0.9, 0.1, 0.1, 0.2, 0.2},
		[7]float32{-1, 0, 0, 0, 0, 0, 0},
		[7]float32{0, 1, 0.9, 0.3, 0.3, 0.4, 0.4},
	)

	regions, err := Parse(out, 100, 100, 0.5)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(regions) != 1 {
		t.Errorf("expected parsing to stop at image_id -1, got %d regions", len(regions))
	}
}

func TestParse_BadShape(t *testing.T) {
	_, err := Parse(inference.Tensor{Shape: []int{5}, Data: make([]float32, 5)}, 10, 10, 0.5)
	if err == nil {
		t.Error("expected error for output not divisible into rows of 7")
	}
}

func TestParse_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sizes := []image.Point{{640, 480}, {1, 1}, {1920, 1080}, {33, 77}}

	for _, size := range sizes {
		var rows [][7]float32
		for i := 0; i < 200; i++ {
			rows = append(rows, [7]float32{
				0, 1, rng.Float32(),
				rng.Float32()*1.6 - 0.3, rng.Float32()*1.6 - 0.3,
				rng.Float32()*1.6 - 0.3, rng.Float32()*1.6 - 0.3,
			})
		}

		regions, err := Parse(detections(rows...), size.X, size.Y, 0.5)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		for i, r := range regions {
			if r.Xmin < 0 || r.Xmin > r.Xmax || r.Xmax > size.X {
				t.Errorf("%v region %d x out of bounds: %+v", size, i, r)
			}
			if r.Ymin < 0 || r.Ymin > r.Ymax || r.Ymax > size.Y {
				t.Errorf("%v region %d y out of bounds: %+v", size, i, r)
			}
			if r.Area != (r.Xmax-r.Xmin)*(r.Ymax-r.Ymin) {
				t.Errorf("%v region %d area mismatch: %+v", size, i, r)
			}
			if i > 0 && regions[i-1].Area < r.Area {
				t.Errorf("%v regions not sorted by non-increasing area at %d", size, i)
			}
		}
	}
}

func TestDetector_Detect(t *testing.T) {
	mock := inference.NewMock(detections(
		[7]float32{0, 1, 0.3, 0.0, 0.0, 0.9, 0.9},
		[7]float32{0, 1, 0.95, 0.25, 0.25, 0.75, 0.75},
	))

	cfg := DefaultConfig()
	cfg.Logger = log.Discard()
	det, err := New(mock, cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	frame := image.NewRGBA(image.Rect(0, 0, 80, 40))
	regions, err := det.Detect(frame)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("expected 1 region, got %d", len(regions))
	}
	if want := (Region{Xmin: 20, Ymin: 10, Xmax: 60, Ymax: 30, Area: 800, Confidence: 0.95}); regions[0] != want {
		t.Errorf("got %+v, want %+v", regions[0], want)
	}

	call := mock.LastCall()
	if call == nil || call.Shape[2] != cfg.InputHeight || call.Shape[3] != cfg.InputWidth {
		t.Errorf("expected input shaped [1 3 %d %d], got %+v", cfg.InputHeight, cfg.InputWidth, call)
	}
}

func TestDetector_DetectSubImageOffset(t *testing.T) {
	mock := inference.NewMock(detections([7]float32{0, 1, 0.9, 0, 0, 0.5, 0.5}))
	cfg := DefaultConfig()
	cfg.Logger = log.Discard()
	det, _ := New(mock, cfg)

	full := image.NewRGBA(image.Rect(0, 0, 100, 100))
	sub := full.SubImage(image.Rect(50, 50, 100, 100))

	regions, err := det.Detect(sub)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if regions[0].Rect() != image.Rect(50, 50, 75, 75) {
		t.Errorf("expected region in frame coordinates, got %v", regions[0].Rect())
	}
}

func TestDetector_Errors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logger = log.Discard()

	det, _ := New(inference.NewMock(inference.NewTensor(7)), cfg)
	if _, err := det.Detect(image.NewRGBA(image.Rect(0, 0, 0, 0))); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("expected ErrEmptyFrame, got %v", err)
	}

	testErr := errors.New("boom")
	det, _ = New(inference.WithError(testErr), cfg)
	if _, err := det.Detect(image.NewRGBA(image.Rect(0, 0, 10, 10))); !errors.Is(err, testErr) {
		t.Errorf("expected inference error to propagate, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logger = log.Discard()
	rt := &inference.MockRuntime{Sessions: map[string]inference.Session{
		cfg.ModelPath: inference.NewMock(inference.NewTensor(7)),
	}}

	if _, err := Load(rt, cfg); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg.ModelPath = "missing"
	if _, err := Load(rt, cfg); !errors.Is(err, inference.ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}

func TestCrop(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 10, 10))
	frame.SetRGBA(5, 5, color.RGBA{255, 0, 0, 255})

	crop := Crop(frame, Region{Xmin: 4, Ymin: 4, Xmax: 8, Ymax: 9})
	if crop.Bounds() != image.Rect(4, 4, 8, 9) {
		t.Errorf("crop bounds: got %v", crop.Bounds())
	}
	if r, _, _, _ := crop.At(5, 5).RGBA(); r>>8 != 255 {
		t.Error("crop should share pixels with the frame")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ModelPath == "" {
		t.Error("DefaultConfig: ModelPath should not be empty")
	}
	if cfg.ConfidenceThresh != 0.5 {
		t.Errorf("DefaultConfig: ConfidenceThresh should be 0.5, got %f", cfg.ConfidenceThresh)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should validate: %v", err)
	}

	cfg.ConfidenceThresh = 1.5
	if !errors.Is(cfg.Validate(), ErrInvalidThreshold) {
		t.Error("expected ErrInvalidThreshold")
	}

	cfg = DefaultConfig()
	cfg.InputWidth = 0
	if !errors.Is(cfg.Validate(), ErrInvalidInputSize) {
		t.Error("expected ErrInvalidInputSize")
	}
}

package inference

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func near(a, b float32) bool {
	d := a - b
	return d > -1.5 && d < 1.5
}

func TestFromImageShape(t *testing.T) {
	tensor := FromImage(solid(40, 30, color.RGBA{10, 20, 30, 255}), 64, 48, BGR)

	want := []int{1, 3, 48, 64}
	for i, d := range want {
		if tensor.Shape[i] != d {
			t.Fatalf("shape: got %v, want %v", tensor.Shape, want)
		}
	}
	if err := tensor.Validate(); err != nil {
		t.Errorf("tensor should be valid: %v", err)
	}
}

func TestFromImageChannelOrder(t *testing.T) {
	img := solid(16, 16, color.RGBA{10, 20, 30, 255})
	plane := 8 * 8

	tests := []struct {
		name  string
		order ChannelOrder
		want  [3]float32
	}{
		{"bgr", BGR, [3]float32{30, 20, 10}},
		{"rgb", RGB, [3]float32{10, 20, 30}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tensor := FromImage(img, 8, 8, tc.order)
			for c := 0; c < 3; c++ {
				for _, off := range []int{0, plane / 2, plane - 1} {
					if got := tensor.Data[c*plane+off]; !near(got, tc.want[c]) {
						t.Errorf("channel %d offset %d: got %v, want %v", c, off, got, tc.want[c])
					}
				}
			}
		})
	}
}

func TestFromImageSubImage(t *testing.T) {
	img := solid(20, 20, color.RGBA{0, 0, 0, 255})
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			img.SetRGBA(x, y, color.RGBA{200, 100, 50, 255})
		}
	}

	crop := img.SubImage(image.Rect(10, 10, 20, 20))
	tensor := FromImage(crop, 4, 4, BGR)
	if got := tensor.Data[0]; !near(got, 50) {
		t.Errorf("blue plane of crop: got %v, want 50", got)
	}
	if got := tensor.Data[2*16]; !near(got, 200) {
		t.Errorf("red plane of crop: got %v, want 200", got)
	}
}

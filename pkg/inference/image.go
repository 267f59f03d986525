package inference

import (
	"image"

	"github.com/nfnt/resize"
)

// ChannelOrder is the colour plane order a model expects.
type ChannelOrder int

const (
	// BGR puts blue first. OpenVINO and Caffe models trained on OpenCV frames use this.
	BGR ChannelOrder = iota

	// RGB puts red first.
	RGB
)

// FromImage resizes img to width x height with bilinear interpolation and
// lays it out as a [1, 3, height, width] channel-first tensor with raw
// 0-255 values.
func FromImage(img image.Image, width, height int, order ChannelOrder) Tensor {
	resized := resize.Resize(uint(width), uint(height), img, resize.Bilinear)
	b := resized.Bounds()

	t := NewTensor(1, 3, height, width)
	plane := width * height

	rIdx, bIdx := 2, 0
	if order == RGB {
		rIdx, bIdx = 0, 2
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, bl, _ := resized.At(b.Min.X+x, b.Min.Y+y).RGBA()
			off := y*width + x
			t.Data[bIdx*plane+off] = float32(bl >> 8)
			t.Data[1*plane+off] = float32(g >> 8)
			t.Data[rIdx*plane+off] = float32(r >> 8)
		}
	}
	return t
}

package video

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// KeyEsc is the key code that ends the live loop.
const KeyEsc = 27

// Window is an on-screen display for annotated frames.
type Window struct {
	w *gocv.Window
}

// NewWindow opens a display window with the given title.
func NewWindow(title string) *Window {
	return &Window{w: gocv.NewWindow(title)}
}

// Show displays img and waits up to delayMs for a key press.
// It returns the key code, or -1 when no key was pressed.
func (w *Window) Show(img image.Image, delayMs int) (int, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return -1, fmt.Errorf("convert frame for display: %w", err)
	}
	defer mat.Close()

	w.w.IMShow(mat)
	return w.w.WaitKey(delayMs), nil
}

// Poll waits up to delayMs for a key press without drawing a frame.
func (w *Window) Poll(delayMs int) int {
	return w.w.WaitKey(delayMs)
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.w.Close()
}

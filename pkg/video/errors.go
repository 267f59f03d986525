package video

import "errors"

var (
	// ErrStop is returned by a Handler to end the loop without error.
	ErrStop = errors.New("video: stop")

	// ErrFrameDropped is returned by live sources when a single read failed.
	ErrFrameDropped = errors.New("video: frame dropped")

	// ErrOpen is returned when a video file cannot be opened.
	ErrOpen = errors.New("video: cannot open file")

	// ErrDeviceOpen is returned when a capture device cannot be opened.
	ErrDeviceOpen = errors.New("video: cannot open capture device")

	// ErrDeviceBusy is returned when a device already has an open handle.
	ErrDeviceBusy = errors.New("video: capture device already open")

	// ErrInvalidConfig is returned for capture settings that fail validation.
	ErrInvalidConfig = errors.New("video: invalid camera config")
)

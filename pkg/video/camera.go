package video

import (
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/teslashibe/go-smile/internal/log"
	"github.com/teslashibe/go-smile/pkg/camera"
	"gocv.io/x/gocv"
)

// Devices hands out capture handles, at most one per device id.
// The loop driver creates it and passes handles to readers explicitly.
type Devices struct {
	mu     sync.Mutex
	open   map[int]*Camera
	opener func(id int) (capture, error)
	logger *slog.Logger
}

// NewDevices creates an empty device set backed by OpenCV.
func NewDevices(logger *slog.Logger) *Devices {
	return &Devices{
		open: make(map[int]*Camera),
		opener: func(id int) (capture, error) {
			return gocv.OpenVideoCapture(id)
		},
		logger: log.Or(logger),
	}
}

// Open opens device id with cfg applied. It fails with ErrDeviceBusy when
// the device already has an open handle and ErrDeviceOpen when the device
// cannot be opened.
func (d *Devices) Open(id int, cfg camera.Config) (*Camera, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, errs)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, busy := d.open[id]; busy {
		return nil, fmt.Errorf("%w: device %d", ErrDeviceBusy, id)
	}

	vc, err := d.opener(id)
	if err != nil {
		d.logger.Error("camera open failed", "device", id, "error", err)
		return nil, fmt.Errorf("%w: device %d: %v", ErrDeviceOpen, id, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		d.logger.Error("camera open failed", "device", id)
		return nil, fmt.Errorf("%w: device %d", ErrDeviceOpen, id)
	}

	applyConfig(vc, cfg)

	c := &Camera{id: id, vc: vc, devices: d, logger: d.logger.With("device", id)}
	d.open[id] = c
	c.logger.Debug("camera opened", "width", cfg.Width, "height", cfg.Height, "fps", cfg.Framerate)
	return c, nil
}

// IsOpen reports whether device id has an open handle.
func (d *Devices) IsOpen(id int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.open[id]
	return ok
}

func (d *Devices) release(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.open, id)
}

func applyConfig(vc capture, cfg camera.Config) {
	if cfg.Width > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	}
	if cfg.Height > 0 {
		vc.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	}
	if cfg.Framerate > 0 {
		vc.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))
	}
	if cfg.Brightness != 0 {
		vc.Set(gocv.VideoCaptureBrightness, cfg.Brightness)
	}
	if cfg.Exposure != 0 {
		vc.Set(gocv.VideoCaptureExposure, cfg.Exposure)
	}
	if cfg.ZoomLevel != 0 {
		vc.Set(gocv.VideoCaptureZoom, cfg.ZoomLevel)
	}
	if cfg.AutoFocus {
		vc.Set(gocv.VideoCaptureAutoFocus, 1)
	}
}

// Camera is an open capture device. It is an unbounded Source: Read blocks
// until the device delivers a frame and never returns io.EOF.
type Camera struct {
	id      int
	vc      capture
	buf     gocv.Mat
	hasBuf  bool
	devices *Devices
	logger  *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// ID returns the device id.
func (c *Camera) ID() int {
	return c.id
}

// Read implements Source. A failed read returns ErrFrameDropped.
func (c *Camera) Read() (image.Image, error) {
	if !c.hasBuf {
		c.buf = gocv.NewMat()
		c.hasBuf = true
	}
	if ok := c.vc.Read(&c.buf); !ok || c.buf.Empty() {
		return nil, fmt.Errorf("%w: device %d", ErrFrameDropped, c.id)
	}
	img, err := c.buf.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: device %d: %v", ErrFrameDropped, c.id, err)
	}
	return img, nil
}

// Close releases the device and frees its slot. Safe to call twice.
func (c *Camera) Close() error {
	c.closeOnce.Do(func() {
		if c.hasBuf {
			c.buf.Close()
		}
		c.closeErr = c.vc.Close()
		c.devices.release(c.id)
		c.logger.Debug("camera released")
	})
	return c.closeErr
}

// Package camera provides capture settings for live webcam input.
// Values map onto OpenCV VideoCapture properties; zero means "leave the
// driver default".
package camera

// Config holds capture configuration for one device.
type Config struct {
	// === Resolution ===
	Width     int `json:"width"`     // Frame width in pixels
	Height    int `json:"height"`    // Frame height in pixels
	Framerate int `json:"framerate"` // Target FPS

	// === Image controls ===
	// Brightness is passed to the driver as-is; its scale is device specific.
	Brightness float64 `json:"brightness"`

	// Exposure is the driver exposure value. 0 keeps auto exposure.
	Exposure float64 `json:"exposure"`

	// ZoomLevel is the optical/digital zoom factor (1.0 to 4.0).
	ZoomLevel float64 `json:"zoom_level"`

	// AutoFocus enables continuous autofocus when the device supports it.
	AutoFocus bool `json:"auto_focus"`
}

// Limits accepted by Validate.
const (
	MaxWidth     = 4096
	MaxHeight    = 2160
	MaxFramerate = 120
	MaxZoom      = 4.0
)

// DefaultConfig returns the recommended webcam configuration.
// 640x480 keeps per-frame detection cheap on CPU.
func DefaultConfig() Config {
	return Config{
		Width:     640,
		Height:    480,
		Framerate: 30,
		ZoomLevel: 1.0,
		AutoFocus: true,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Width < 0 || c.Width > MaxWidth {
		errors = append(errors, "width must be between 0 and 4096")
	}
	if c.Height < 0 || c.Height > MaxHeight {
		errors = append(errors, "height must be between 0 and 2160")
	}
	if c.Framerate < 0 || c.Framerate > MaxFramerate {
		errors = append(errors, "framerate must be between 0 and 120")
	}
	if c.ZoomLevel != 0 && (c.ZoomLevel < 1.0 || c.ZoomLevel > MaxZoom) {
		errors = append(errors, "zoom_level must be 0 (driver default) or between 1.0 and 4.0")
	}
	if c.Exposure < 0 {
		errors = append(errors, "exposure must not be negative")
	}

	return errors
}

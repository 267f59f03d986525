package camera

import "testing"

func TestPresetsValidate(t *testing.T) {
	for name, cfg := range Presets() {
		t.Run(name, func(t *testing.T) {
			if errs := cfg.Validate(); len(errs) > 0 {
				t.Errorf("preset %q invalid: %v", name, errs)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset(Preset720p)
	if cfg == nil {
		t.Fatal("expected 720p preset")
	}
	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("720p: got %dx%d", cfg.Width, cfg.Height)
	}

	if GetPreset("nope") != nil {
		t.Error("unknown preset should be nil")
	}
}

func TestPresetNames(t *testing.T) {
	names := PresetNames()
	if len(names) != len(Presets()) {
		t.Fatalf("expected %d names, got %d", len(Presets()), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errs   int
	}{
		{"default", func(*Config) {}, 0},
		{"driver defaults", func(c *Config) { *c = Config{} }, 0},
		{"too wide", func(c *Config) { c.Width = 10000 }, 1},
		{"negative fps", func(c *Config) { c.Framerate = -1 }, 1},
		{"zoom too low", func(c *Config) { c.ZoomLevel = 0.5 }, 1},
		{"several", func(c *Config) { c.Height = -1; c.Exposure = -3 }, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if got := cfg.Validate(); len(got) != tc.errs {
				t.Errorf("expected %d errors, got %v", tc.errs, got)
			}
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}

	if len(cfg.Viewports) != 2 {
		t.Fatalf("len(Viewports) = %d, want 2", len(cfg.Viewports))
	}
	if cfg.Viewports[0].Name != ViewportDesktop || cfg.Viewports[1].Name != ViewportMobile {
		t.Errorf("Viewports = %v, want desktop then mobile", cfg.Viewports)
	}

	if cfg.Capture.Quality != 90 {
		t.Errorf("Capture.Quality = %d, want 90", cfg.Capture.Quality)
	}
	if cfg.Capture.MaxSectionHeight != 4000 {
		t.Errorf("Capture.MaxSectionHeight = %d, want 4000", cfg.Capture.MaxSectionHeight)
	}
	if cfg.Timing.NavigationTimeout != 30*time.Second {
		t.Errorf("Timing.NavigationTimeout = %v, want 30s", cfg.Timing.NavigationTimeout)
	}
	if cfg.Timing.ScrollStepDelay != 300*time.Millisecond {
		t.Errorf("Timing.ScrollStepDelay = %v, want 300ms", cfg.Timing.ScrollStepDelay)
	}
	if cfg.Video.StepPixels != 4 || cfg.Video.StepDelay != 16*time.Millisecond {
		t.Errorf("Video step = %dpx/%v, want 4px/16ms", cfg.Video.StepPixels, cfg.Video.StepDelay)
	}
	if cfg.Analysis.MaxColors != 20 || cfg.Analysis.ColorSampleSize != 200 {
		t.Errorf("Analysis colors = %d/%d, want 20/200", cfg.Analysis.MaxColors, cfg.Analysis.ColorSampleSize)
	}
}

func TestFastHasNoDelays(t *testing.T) {
	cfg := Fast()

	delays := map[string]time.Duration{
		"NetworkIdle":       cfg.Timing.NetworkIdle,
		"ScrollStepDelay":   cfg.Timing.ScrollStepDelay,
		"ScrollReturnDelay": cfg.Timing.ScrollReturnDelay,
		"SettleDelay":       cfg.Timing.SettleDelay,
		"InitialDelay":      cfg.Video.InitialDelay,
		"StepDelay":         cfg.Video.StepDelay,
		"HoldDelay":         cfg.Video.HoldDelay,
	}
	for name, d := range delays {
		if d != 0 {
			t.Errorf("%s = %v, want 0", name, d)
		}
	}

	if cfg.Timing.NavigationTimeout != Default().Timing.NavigationTimeout {
		t.Error("Fast() should keep the navigation timeout")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Fast().Validate() = %v", err)
	}
}

func TestViewportLookup(t *testing.T) {
	cfg := Default()

	vp, ok := cfg.Viewport(ViewportMobile)
	if !ok {
		t.Fatal("Viewport(mobile) not found")
	}
	if vp.Width != 390 || !vp.Mobile {
		t.Errorf("mobile = %+v, want width 390 and mobile", vp)
	}

	if _, ok := cfg.Viewport(ViewportTablet); ok {
		t.Error("tablet should not be in the default capture list")
	}

	scaled := vp.WithScale(1)
	if scaled.Scale != 1 || vp.Scale != 3 {
		t.Errorf("WithScale changed the original: got %v / %v", scaled.Scale, vp.Scale)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no viewports", func(c *Config) { c.Viewports = nil }},
		{"duplicate viewport", func(c *Config) { c.Viewports = append(c.Viewports, c.Viewports[0]) }},
		{"bad viewport name", func(c *Config) { c.Viewports[0].Name = "Desk Top" }},
		{"zero width", func(c *Config) { c.Viewports[0].Width = 0 }},
		{"png format", func(c *Config) { c.Capture.Format = "png" }},
		{"quality too high", func(c *Config) { c.Capture.Quality = 101 }},
		{"no crop cap", func(c *Config) { c.Capture.MaxSectionHeight = 0 }},
		{"no color sample", func(c *Config) { c.Analysis.ColorSampleSize = 0 }},
		{"no timeout", func(c *Config) { c.Timing.NavigationTimeout = 0 }},
		{"zero scroll step", func(c *Config) { c.Video.StepPixels = 0 }},
		{"avi container", func(c *Config) { c.Video.Container = "avi" }},
		{"bad canvas color", func(c *Config) { c.Mockup.CanvasColor = "white" }},
		{"empty output", func(c *Config) { c.Output.Root = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.toml")
	data := `
[[viewports]]
name = "desktop"
width = 1280
height = 720
scale = 1

[[viewports]]
name = "tablet"
width = 834
height = 1194
scale = 2
mobile = true

[timing]
scroll_step_delay = "100ms"

[capture]
quality = 75
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Viewports) != 2 || cfg.Viewports[1].Name != "tablet" {
		t.Errorf("Viewports = %+v, want desktop and tablet", cfg.Viewports)
	}
	if cfg.Timing.ScrollStepDelay != 100*time.Millisecond {
		t.Errorf("ScrollStepDelay = %v, want 100ms", cfg.Timing.ScrollStepDelay)
	}
	if cfg.Capture.Quality != 75 {
		t.Errorf("Quality = %d, want 75", cfg.Capture.Quality)
	}
	// Untouched keys keep defaults
	if cfg.Timing.SettleDelay != 1500*time.Millisecond {
		t.Errorf("SettleDelay = %v, want default 1.5s", cfg.Timing.SettleDelay)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.yaml")
	data := `
video:
  step_pixels: 8
  step_delay: 33ms
mockup:
  canvas_color: "#000000"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Video.StepPixels != 8 || cfg.Video.StepDelay != 33*time.Millisecond {
		t.Errorf("Video = %dpx/%v, want 8px/33ms", cfg.Video.StepPixels, cfg.Video.StepDelay)
	}
	if cfg.Mockup.CanvasColor != "#000000" {
		t.Errorf("CanvasColor = %q, want #000000", cfg.Mockup.CanvasColor)
	}
	if len(cfg.Viewports) != 2 {
		t.Errorf("Viewports should keep defaults, got %d", len(cfg.Viewports))
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("missing file: err = %v, want INVALID_CONFIG", err)
	}

	ini := filepath.Join(dir, "capture.ini")
	if err := os.WriteFile(ini, []byte("x=1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(ini); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unknown extension: err = %v, want INVALID_CONFIG", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("nonsense_key: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("unknown yaml key should fail")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvChromeBin, "/usr/bin/chromium")
	t.Setenv(EnvHeadless, "false")
	t.Setenv(EnvFFmpeg, "/opt/ffmpeg")
	t.Setenv(EnvOutputRoot, "out/cases")

	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Browser.Bin != "/usr/bin/chromium" {
		t.Errorf("Browser.Bin = %q", cfg.Browser.Bin)
	}
	if cfg.Browser.Headless {
		t.Error("Browser.Headless = true, want false")
	}
	if cfg.Video.FFmpeg != "/opt/ffmpeg" {
		t.Errorf("Video.FFmpeg = %q", cfg.Video.FFmpeg)
	}
	if cfg.Output.Root != "out/cases" {
		t.Errorf("Output.Root = %q", cfg.Output.Root)
	}
}

func TestApplyEnvBadBool(t *testing.T) {
	t.Setenv(EnvHeadless, "maybe")

	cfg := Default()
	if err := ApplyEnv(&cfg); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("ApplyEnv() = %v, want INVALID_CONFIG", err)
	}
}

// Package config defines the capture configuration shared by every stage.
//
// A [Config] is a plain value: stages receive it explicitly and never read
// package-level settings, so a test can pass [Fast] to run the whole
// pipeline with zero pacing delays while production uses [Default].
//
// Configuration is layered:
//
//  1. [Default] provides the production profile
//  2. [Load] decodes a TOML or YAML file over the defaults
//  3. [ApplyEnv] applies CASE_CAPTURE_* environment overrides (and .env)
//  4. [Config.Validate] checks the result
package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
)

// =============================================================================
// Viewport Names
// =============================================================================

// Names of the built-in viewport profiles.
const (
	ViewportDesktop = "desktop"
	ViewportTablet  = "tablet"
	ViewportMobile  = "mobile"
)

// FormatWebP is the only capture format written to the output tree.
const FormatWebP = "webp"

// Video containers the encoder can produce.
const (
	ContainerWebM = "webm"
	ContainerMP4  = "mp4"
)

// =============================================================================
// Config
// =============================================================================

// Config contains every tunable of a capture run.
type Config struct {
	Viewports []Viewport `toml:"viewports" yaml:"viewports"`
	Analysis  Analysis   `toml:"analysis" yaml:"analysis"`
	Capture   Capture    `toml:"capture" yaml:"capture"`
	Timing    Timing     `toml:"timing" yaml:"timing"`
	Video     Video      `toml:"video" yaml:"video"`
	Mockup    Mockup     `toml:"mockup" yaml:"mockup"`
	Browser   Browser    `toml:"browser" yaml:"browser"`
	Output    Output     `toml:"output" yaml:"output"`
}

// Viewport is a named device simulation.
type Viewport struct {
	Name   string  `toml:"name" yaml:"name"`     // directory and filename key ("desktop")
	Width  int     `toml:"width" yaml:"width"`   // CSS pixels
	Height int     `toml:"height" yaml:"height"` // CSS pixels
	Scale  float64 `toml:"scale" yaml:"scale"`   // device pixel ratio used for captures
	Mobile bool    `toml:"mobile" yaml:"mobile"` // emulate a mobile device (touch, meta viewport)
}

// Analysis controls section detection and palette extraction.
type Analysis struct {
	MinSectionHeight float64 `toml:"min_section_height" yaml:"min_section_height"`
	MinSectionWidth  float64 `toml:"min_section_width" yaml:"min_section_width"`
	ColorSampleSize  int     `toml:"color_sample_size" yaml:"color_sample_size"`
	MaxColors        int     `toml:"max_colors" yaml:"max_colors"`
}

// Capture controls section and viewport screenshots.
type Capture struct {
	Format           string `toml:"format" yaml:"format"`
	Quality          int    `toml:"quality" yaml:"quality"`
	MaxSectionHeight int    `toml:"max_section_height" yaml:"max_section_height"` // crop cap in CSS pixels
}

// Timing holds navigation limits and the pacing of the lazy-load scroll.
type Timing struct {
	NavigationTimeout time.Duration `toml:"navigation_timeout" yaml:"navigation_timeout"`
	NetworkIdle       time.Duration `toml:"network_idle" yaml:"network_idle"`
	ScrollStepDelay   time.Duration `toml:"scroll_step_delay" yaml:"scroll_step_delay"`
	ScrollReturnDelay time.Duration `toml:"scroll_return_delay" yaml:"scroll_return_delay"`
	SettleDelay       time.Duration `toml:"settle_delay" yaml:"settle_delay"`
}

// Video controls the scroll recording.
type Video struct {
	Scale        float64       `toml:"scale" yaml:"scale"` // device pixel ratio of the recording context
	InitialDelay time.Duration `toml:"initial_delay" yaml:"initial_delay"`
	StepPixels   int           `toml:"step_pixels" yaml:"step_pixels"`
	StepDelay    time.Duration `toml:"step_delay" yaml:"step_delay"`
	HoldDelay    time.Duration `toml:"hold_delay" yaml:"hold_delay"`
	FrameQuality int           `toml:"frame_quality" yaml:"frame_quality"`
	Container    string        `toml:"container" yaml:"container"`
	FFmpeg       string        `toml:"ffmpeg" yaml:"ffmpeg"` // ffmpeg binary name or path
}

// Mockup controls device frame geometry and the hero composite.
type Mockup struct {
	Laptop        LaptopFrame `toml:"laptop" yaml:"laptop"`
	Phone         PhoneFrame  `toml:"phone" yaml:"phone"`
	CanvasWidth   int         `toml:"canvas_width" yaml:"canvas_width"`
	CanvasHeight  int         `toml:"canvas_height" yaml:"canvas_height"`
	CanvasColor   string      `toml:"canvas_color" yaml:"canvas_color"`
	LaptopScale   float64     `toml:"laptop_scale" yaml:"laptop_scale"`
	PhoneScale    float64     `toml:"phone_scale" yaml:"phone_scale"`
	ShadowBlur    float64     `toml:"shadow_blur" yaml:"shadow_blur"`
	ShadowOpacity float64     `toml:"shadow_opacity" yaml:"shadow_opacity"`
}

// LaptopFrame is the geometry of the laptop bezel, in output pixels.
type LaptopFrame struct {
	ScreenWidth  int    `toml:"screen_width" yaml:"screen_width"`
	ScreenHeight int    `toml:"screen_height" yaml:"screen_height"`
	Bezel        int    `toml:"bezel" yaml:"bezel"`
	TopBezel     int    `toml:"top_bezel" yaml:"top_bezel"`
	Radius       int    `toml:"radius" yaml:"radius"`
	BaseHeight   int    `toml:"base_height" yaml:"base_height"`
	BaseOverhang int    `toml:"base_overhang" yaml:"base_overhang"`
	ShellColor   string `toml:"shell_color" yaml:"shell_color"`
	BaseColor    string `toml:"base_color" yaml:"base_color"`
}

// PhoneFrame is the geometry of the phone bezel, in output pixels.
type PhoneFrame struct {
	ScreenWidth  int    `toml:"screen_width" yaml:"screen_width"`
	ScreenHeight int    `toml:"screen_height" yaml:"screen_height"`
	Bezel        int    `toml:"bezel" yaml:"bezel"`
	Radius       int    `toml:"radius" yaml:"radius"`
	ScreenRadius int    `toml:"screen_radius" yaml:"screen_radius"`
	IslandWidth  int    `toml:"island_width" yaml:"island_width"`
	IslandHeight int    `toml:"island_height" yaml:"island_height"`
	ShellColor   string `toml:"shell_color" yaml:"shell_color"`
}

// Browser controls how the headless browser is launched.
type Browser struct {
	Bin       string `toml:"bin" yaml:"bin"` // empty: let the launcher find or download one
	Headless  bool   `toml:"headless" yaml:"headless"`
	NoSandbox bool   `toml:"no_sandbox" yaml:"no_sandbox"`
}

// Output controls where artifacts are written.
type Output struct {
	Root string `toml:"root" yaml:"root"`
}

// =============================================================================
// Profiles
// =============================================================================

// Profiles returns the built-in viewport profiles keyed by name.
func Profiles() map[string]Viewport {
	return map[string]Viewport{
		ViewportDesktop: {Name: ViewportDesktop, Width: 1440, Height: 900, Scale: 2},
		ViewportTablet:  {Name: ViewportTablet, Width: 834, Height: 1194, Scale: 2, Mobile: true},
		ViewportMobile:  {Name: ViewportMobile, Width: 390, Height: 844, Scale: 3, Mobile: true},
	}
}

// Default returns the production configuration.
func Default() Config {
	p := Profiles()
	return Config{
		Viewports: []Viewport{p[ViewportDesktop], p[ViewportMobile]},
		Analysis: Analysis{
			MinSectionHeight: 50,
			MinSectionWidth:  100,
			ColorSampleSize:  200,
			MaxColors:        20,
		},
		Capture: Capture{
			Format:           FormatWebP,
			Quality:          90,
			MaxSectionHeight: 4000,
		},
		Timing: Timing{
			NavigationTimeout: 30 * time.Second,
			NetworkIdle:       500 * time.Millisecond,
			ScrollStepDelay:   300 * time.Millisecond,
			ScrollReturnDelay: 500 * time.Millisecond,
			SettleDelay:       1500 * time.Millisecond,
		},
		Video: Video{
			Scale:        1,
			InitialDelay: 2 * time.Second,
			StepPixels:   4,
			StepDelay:    16 * time.Millisecond,
			HoldDelay:    time.Second,
			FrameQuality: 80,
			Container:    ContainerWebM,
			FFmpeg:       "ffmpeg",
		},
		Mockup: Mockup{
			Laptop: LaptopFrame{
				ScreenWidth:  1280,
				ScreenHeight: 800,
				Bezel:        20,
				TopBezel:     32,
				Radius:       22,
				BaseHeight:   28,
				BaseOverhang: 80,
				ShellColor:   "#1c1c1e",
				BaseColor:    "#c7c7cc",
			},
			Phone: PhoneFrame{
				ScreenWidth:  1170,
				ScreenHeight: 2532,
				Bezel:        42,
				Radius:       180,
				ScreenRadius: 138,
				IslandWidth:  360,
				IslandHeight: 102,
				ShellColor:   "#1c1c1e",
			},
			CanvasWidth:   1920,
			CanvasHeight:  1200,
			CanvasColor:   "#f4f4f5",
			LaptopScale:   0.78,
			PhoneScale:    0.33,
			ShadowBlur:    30,
			ShadowOpacity: 0.28,
		},
		Browser: Browser{
			Headless: true,
		},
		Output: Output{
			Root: "public/cases",
		},
	}
}

// Fast returns Default with every pacing delay set to zero.
// Intended for tests and dry runs against local fixtures.
func Fast() Config {
	cfg := Default()
	cfg.Timing.NetworkIdle = 0
	cfg.Timing.ScrollStepDelay = 0
	cfg.Timing.ScrollReturnDelay = 0
	cfg.Timing.SettleDelay = 0
	cfg.Video.InitialDelay = 0
	cfg.Video.StepDelay = 0
	cfg.Video.HoldDelay = 0
	return cfg
}

// =============================================================================
// Accessors
// =============================================================================

// Viewport returns the configured viewport with the given name.
func (c Config) Viewport(name string) (Viewport, bool) {
	for _, vp := range c.Viewports {
		if vp.Name == name {
			return vp, true
		}
	}
	return Viewport{}, false
}

// WithScale returns a copy of vp captured at the given device pixel ratio.
func (vp Viewport) WithScale(scale float64) Viewport {
	vp.Scale = scale
	return vp
}

// =============================================================================
// Validation
// =============================================================================

var viewportNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	if len(c.Viewports) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one viewport is required")
	}
	seen := make(map[string]bool, len(c.Viewports))
	for _, vp := range c.Viewports {
		if !viewportNameRegex.MatchString(vp.Name) {
			return errors.New(errors.ErrCodeInvalidConfig, "invalid viewport name %q", vp.Name)
		}
		if seen[vp.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate viewport %q", vp.Name)
		}
		seen[vp.Name] = true
		if vp.Width <= 0 || vp.Height <= 0 || vp.Scale <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "viewport %q: width, height and scale must be positive", vp.Name)
		}
	}

	if c.Capture.Format != FormatWebP {
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported capture format %q (must be %q)", c.Capture.Format, FormatWebP)
	}
	if c.Capture.Quality < 1 || c.Capture.Quality > 100 {
		return errors.New(errors.ErrCodeInvalidConfig, "capture quality %d out of range 1..100", c.Capture.Quality)
	}
	if c.Capture.MaxSectionHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_section_height must be positive")
	}

	if c.Analysis.ColorSampleSize <= 0 || c.Analysis.MaxColors <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "color_sample_size and max_colors must be positive")
	}
	if c.Timing.NavigationTimeout <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "navigation_timeout must be positive")
	}

	if c.Video.StepPixels <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "video step_pixels must be positive")
	}
	if c.Video.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "video scale must be positive")
	}
	if c.Video.FrameQuality < 1 || c.Video.FrameQuality > 100 {
		return errors.New(errors.ErrCodeInvalidConfig, "video frame_quality %d out of range 1..100", c.Video.FrameQuality)
	}
	if c.Video.Container != ContainerWebM && c.Video.Container != ContainerMP4 {
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported video container %q (webm or mp4)", c.Video.Container)
	}

	for name, color := range map[string]string{
		"mockup.canvas_color":       c.Mockup.CanvasColor,
		"mockup.laptop.shell_color": c.Mockup.Laptop.ShellColor,
		"mockup.laptop.base_color":  c.Mockup.Laptop.BaseColor,
		"mockup.phone.shell_color":  c.Mockup.Phone.ShellColor,
	} {
		if !hexColorRegex.MatchString(color) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: invalid hex color %q", name, color)
		}
	}
	if c.Mockup.LaptopScale <= 0 || c.Mockup.PhoneScale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "mockup scales must be positive")
	}

	if c.Output.Root == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "output root cannot be empty")
	}

	return nil
}

// String summarises the viewport table for debug logging.
func (c Config) String() string {
	s := ""
	for i, vp := range c.Viewports {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s %dx%d@%gx", vp.Name, vp.Width, vp.Height, vp.Scale)
	}
	return s
}

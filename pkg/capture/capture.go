// Package capture takes the section and viewport screenshots of a page.
//
// For each viewport the page is loaded fresh, scrolled top to bottom one
// viewport height at a time so lazy content loads, returned to the top and
// left to settle. Sections are then detected again, since their boundaries
// depend on the viewport width, and each one is cropped out of the page.
// A final above-the-fold screenshot is taken of the viewport itself.
//
// Only navigation failures abort a viewport. A failing section is logged
// and recorded in the report; the remaining sections and the viewport
// screenshot are still captured.
package capture

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/msgwebdev-git/goqode-sub000/pkg/analyze"
	"github.com/msgwebdev-git/goqode-sub000/pkg/browser"
	"github.com/msgwebdev-git/goqode-sub000/pkg/config"
	"github.com/msgwebdev-git/goqode-sub000/pkg/manifest"
	"github.com/msgwebdev-git/goqode-sub000/pkg/store"
)

// ViewportShot is the Failure.Name used when the viewport screenshot fails.
const ViewportShot = "viewport"

// Target identifies the page to capture.
type Target struct {
	URL  string // absolute URL to load
	Page string // page directory name (see store.PageName)

	// Limit caps the number of re-detected sections, normally the number
	// found during analysis. A negative value disables the cap.
	Limit int
}

// Report describes what was captured for one viewport.
type Report struct {
	Viewport string
	Sections []manifest.SectionInfo // re-detected for this viewport
	Files    []string               // section screenshots written, relative to the store
	Shot     string                 // viewport screenshot, relative to the store; "" if it failed
	Failed   []Failure
	Duration time.Duration
}

// Failure is a screenshot that could not be captured.
type Failure struct {
	Name string // section name, or ViewportShot
	Err  error
}

// Capturer takes screenshots into a store.
type Capturer struct {
	Browser browser.Browser
	Store   *store.FileStore
	Config  config.Config
	Logger  *log.Logger
}

// New returns a Capturer. A nil logger discards output.
func New(b browser.Browser, s *store.FileStore, cfg config.Config, logger *log.Logger) *Capturer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Capturer{Browser: b, Store: s, Config: cfg, Logger: logger}
}

// Capture loads t at vp and writes its section and viewport screenshots.
// The returned error is non-nil only when the page could not be opened or
// loaded; screenshot failures are listed in Report.Failed.
func (c *Capturer) Capture(ctx context.Context, t Target, vp config.Viewport) (*Report, error) {
	start := time.Now()
	logger := c.Logger.With("page", t.Page, "viewport", vp.Name)

	timing := c.Config.Timing
	p, err := browser.Load(ctx, c.Browser, browser.PageOptions{Viewport: vp}, t.URL, timing)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	if err := LoadLazyContent(ctx, p, timing); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("lazy-load scroll failed", "err", err)
	}
	if err := browser.Pause(ctx, timing.SettleDelay); err != nil {
		return nil, err
	}

	rep := &Report{Viewport: vp.Name}

	if t.Limit != 0 {
		sections, err := analyze.DetectSections(ctx, p, c.Config.Analysis, t.Limit)
		if err != nil {
			logger.Warn("section detection failed", "err", err)
		}
		rep.Sections = sections
	}

	ext := c.Config.Capture.Format
	for _, s := range rep.Sections {
		req := browser.ScreenshotRequest{
			Clip:    CropFor(s, vp, c.Config.Capture.MaxSectionHeight),
			Format:  ext,
			Quality: c.Config.Capture.Quality,
		}
		rel := store.SectionFile(t.Page, s.Index, s.Name, vp.Name, ext)
		if err := c.shoot(ctx, p, req, rel); err != nil {
			logger.Warn("section capture failed", "section", s.Name, "err", err)
			rep.Failed = append(rep.Failed, Failure{Name: s.Name, Err: err})
			continue
		}
		rep.Files = append(rep.Files, rel)
	}

	rel := store.ViewportFile(t.Page, vp.Name, ext)
	if err := browser.ScrollTo(ctx, p, 0); err != nil {
		logger.Debug("scroll to top failed", "err", err)
	}
	shot := browser.ScreenshotRequest{Format: ext, Quality: c.Config.Capture.Quality}
	if err := c.shoot(ctx, p, shot, rel); err != nil {
		logger.Warn("viewport capture failed", "err", err)
		rep.Failed = append(rep.Failed, Failure{Name: ViewportShot, Err: err})
	} else {
		rep.Shot = rel
	}

	rep.Duration = time.Since(start)
	logger.Debug("viewport captured",
		"sections", len(rep.Files),
		"failed", len(rep.Failed),
		"duration", rep.Duration)
	return rep, nil
}

func (c *Capturer) shoot(ctx context.Context, p browser.Page, req browser.ScreenshotRequest, rel string) error {
	data, err := p.Screenshot(ctx, req)
	if err != nil {
		return err
	}
	_, err = c.Store.WriteFile(rel, data)
	return err
}

// LoadLazyContent scrolls through the document one viewport height at a
// time, pausing after every step, then returns to the top. The document
// height is measured once before scrolling.
func LoadLazyContent(ctx context.Context, p browser.Page, timing config.Timing) error {
	m, err := browser.Metrics(ctx, p)
	if err != nil {
		return err
	}
	step := m.InnerHeight
	if step <= 0 {
		step = m.ScrollHeight
	}

	for y := 0.0; y < m.ScrollHeight && step > 0; y += step {
		if err := browser.ScrollTo(ctx, p, y); err != nil {
			return err
		}
		if err := browser.Pause(ctx, timing.ScrollStepDelay); err != nil {
			return err
		}
	}

	if err := browser.ScrollTo(ctx, p, 0); err != nil {
		return err
	}
	return browser.Pause(ctx, timing.ScrollReturnDelay)
}

// CropFor returns the screenshot region of a section: the full viewport
// width starting at the section top, at most maxHeight tall.
func CropFor(s manifest.SectionInfo, vp config.Viewport, maxHeight int) *browser.Rect {
	return &browser.Rect{
		X:      0,
		Y:      s.Top,
		Width:  float64(vp.Width),
		Height: math.Min(s.Height, float64(maxHeight)),
	}
}

// Package browser abstracts the headless browser used by every capture stage.
//
// Stages depend on the small [Browser] and [Page] interfaces rather than on
// go-rod directly. [Launch] returns the rod-backed implementation; tests use
// the scripted fake in package browsertest.
//
// One Browser is shared by the whole run. Pages are cheap and must be
// closed promptly after use. A page opened with PageOptions.Isolated lives
// in its own browser context (separate cookies, cache and device settings),
// which the scroll recorder needs because recording is configured when the
// context is created.
package browser

import (
	"context"
	"time"

	"github.com/msgwebdev-git/goqode-sub000/pkg/config"
	"github.com/msgwebdev-git/goqode-sub000/pkg/dom"
	"github.com/msgwebdev-git/goqode-sub000/pkg/observability"
)

// Browser opens pages. Implementations must be safe for sequential use by
// one goroutine; the pipeline never opens pages concurrently.
type Browser interface {
	// NewPage opens a blank page emulating opts.Viewport.
	NewPage(ctx context.Context, opts PageOptions) (Page, error)

	// Close shuts the browser down.
	Close() error
}

// PageOptions configures a new page.
type PageOptions struct {
	Viewport config.Viewport
	Isolated bool // open in a fresh browser context, disposed with the page
}

// Page is a single browser tab.
type Page interface {
	// Navigate loads url and waits for the network to go idle for
	// idle. The whole operation is bounded by timeout.
	Navigate(ctx context.Context, url string, timeout, idle time.Duration) error

	// Eval runs a JavaScript function expression with args and decodes its
	// JSON result into out (which may be nil).
	Eval(ctx context.Context, script string, out any, args ...any) error

	// HTML returns the serialized DOM of the loaded document.
	HTML(ctx context.Context) (string, error)

	// Screenshot captures the viewport, or the clip region when set.
	Screenshot(ctx context.Context, req ScreenshotRequest) ([]byte, error)

	// StartScreencast starts streaming JPEG frames of the page.
	StartScreencast(ctx context.Context, quality int) (Screencast, error)

	// Close closes the page (and its context when isolated).
	Close() error
}

// ScreenshotRequest describes one capture.
type ScreenshotRequest struct {
	Clip    *Rect  // region in CSS pixels, page coordinates; nil captures the viewport
	Format  string // image format understood by the browser ("webp")
	Quality int    // 1..100 for lossy formats
}

// Rect is a region in CSS pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Screencast is a running frame stream.
type Screencast interface {
	// Stop ends the stream and returns the frames received so far,
	// in arrival order.
	Stop() ([]Frame, error)
}

// Frame is one encoded screencast frame.
type Frame struct {
	Data []byte    // JPEG bytes
	At   time.Time // arrival time
}

// =============================================================================
// Page helpers
// =============================================================================

// Load opens a page with opts and navigates it to url using the timeouts
// in timing. The page is closed again when navigation fails. Every
// navigation is reported to observability.Browser.
func Load(ctx context.Context, b Browser, opts PageOptions, url string, timing config.Timing) (Page, error) {
	p, err := b.NewPage(ctx, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = p.Navigate(ctx, url, timing.NavigationTimeout, timing.NetworkIdle)
	observability.Browser().OnNavigate(ctx, url, opts.Viewport.Name, time.Since(start), err)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return p, nil
}

// Metrics reads the document scroll metrics.
func Metrics(ctx context.Context, p Page) (dom.Metrics, error) {
	var m dom.Metrics
	err := p.Eval(ctx, dom.MetricsScript, &m)
	return m, err
}

// ScrollTo scrolls the window to the absolute offset y.
func ScrollTo(ctx context.Context, p Page, y float64) error {
	return p.Eval(ctx, dom.ScrollToScript, nil, y)
}

// ScrollBy scrolls the window by dy and returns the new offset.
func ScrollBy(ctx context.Context, p Page, dy float64) (float64, error) {
	var y float64
	err := p.Eval(ctx, dom.ScrollByScript, &y, dy)
	return y, err
}

// Pause blocks for d or until ctx is done. A non-positive d returns
// immediately. Scroll loops call Pause after every step, so step N+1 never
// starts before step N's delay has elapsed.
func Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

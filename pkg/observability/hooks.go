// Package observability provides hooks for progress reporting and metrics.
//
// Capture stages emit events through the registered hooks without knowing
// who listens. The CLI registers hooks that print status lines; tests
// register recorders; by default every hook is a no-op.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCaptureHooks(&statusHooks{})
//	    observability.SetBrowserHooks(&navTimer{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Capture().OnPageStart(ctx, "/about", 1, 3)
//	// ... capture the page ...
//	observability.Capture().OnViewportCaptured(ctx, "/about", "desktop", 4, 0, elapsed, nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Capture Hooks
// =============================================================================

// CaptureHooks receives events from the capture pipeline, in run order.
type CaptureHooks interface {
	// Discovery events
	OnDiscoveryComplete(ctx context.Context, pages []string, duration time.Duration, err error)

	// Page events
	OnPageStart(ctx context.Context, path string, index, total int)
	OnPageAnalyzed(ctx context.Context, path string, sections, colors int, err error)

	// Per-viewport events
	OnViewportCaptured(ctx context.Context, path, viewport string, sections, failed int, duration time.Duration, err error)
	OnVideoRecorded(ctx context.Context, path, viewport string, duration time.Duration, err error)

	// Page-level decoration
	OnMockupsComplete(ctx context.Context, path string, written int, err error)

	// Run end
	OnManifestWritten(ctx context.Context, file string, pages int, err error)
}

// =============================================================================
// Browser Hooks
// =============================================================================

// BrowserHooks receives events from browser navigation.
type BrowserHooks interface {
	// OnNavigate records a finished page load, successful or not.
	OnNavigate(ctx context.Context, url, viewport string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCaptureHooks is a no-op implementation of CaptureHooks.
type NoopCaptureHooks struct{}

func (NoopCaptureHooks) OnDiscoveryComplete(context.Context, []string, time.Duration, error) {}
func (NoopCaptureHooks) OnPageStart(context.Context, string, int, int)                       {}
func (NoopCaptureHooks) OnPageAnalyzed(context.Context, string, int, int, error)             {}
func (NoopCaptureHooks) OnViewportCaptured(context.Context, string, string, int, int, time.Duration, error) {
}
func (NoopCaptureHooks) OnVideoRecorded(context.Context, string, string, time.Duration, error) {}
func (NoopCaptureHooks) OnMockupsComplete(context.Context, string, int, error)                 {}
func (NoopCaptureHooks) OnManifestWritten(context.Context, string, int, error)                 {}

// NoopBrowserHooks is a no-op implementation of BrowserHooks.
type NoopBrowserHooks struct{}

func (NoopBrowserHooks) OnNavigate(context.Context, string, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	captureHooks CaptureHooks = NoopCaptureHooks{}
	browserHooks BrowserHooks = NoopBrowserHooks{}
	hooksMu      sync.RWMutex
)

// SetCaptureHooks registers custom capture hooks.
// This should be called once at application startup before any capture runs.
func SetCaptureHooks(h CaptureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		captureHooks = h
	}
}

// SetBrowserHooks registers custom browser hooks.
func SetBrowserHooks(h BrowserHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		browserHooks = h
	}
}

// Capture returns the registered capture hooks.
func Capture() CaptureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return captureHooks
}

// Browser returns the registered browser hooks.
func Browser() BrowserHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return browserHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	captureHooks = NoopCaptureHooks{}
	browserHooks = NoopBrowserHooks{}
}

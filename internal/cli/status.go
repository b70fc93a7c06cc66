package cli

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
	"github.com/msgwebdev-git/goqode-sub000/pkg/observability"
	"github.com/msgwebdev-git/goqode-sub000/pkg/store"
)

// statusHooks prints one status line per pipeline event.
type statusHooks struct {
	mu sync.Mutex
	w  io.Writer
}

var _ observability.CaptureHooks = (*statusHooks)(nil)

func newStatusHooks(w io.Writer) *statusHooks {
	return &statusHooks{w: w}
}

func (h *statusHooks) OnDiscoveryComplete(_ context.Context, pages []string, d time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		printWarning(h.w, "Page discovery failed, capturing the home page only: %s", errors.UserMessage(err))
		return
	}
	printStatus(h.w, iconDiscover, "Found %s %s", pluralize(len(pages), "page"), StyleDim.Render(round(d)))
}

func (h *statusHooks) OnPageStart(_ context.Context, path string, index, total int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	printStatus(h.w, iconPage, "[%d/%d] %s", index+1, total, StyleHighlight.Render(path))
}

func (h *statusHooks) OnPageAnalyzed(_ context.Context, path string, sections, colors int, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		printWarning(h.w, "Skipping %s: %s", path, errors.UserMessage(err))
		return
	}
	printStatus(h.w, iconAnalyze, "%s, %s", pluralize(sections, "section"), pluralize(colors, "color"))
}

func (h *statusHooks) OnViewportCaptured(_ context.Context, _, viewport string, sections, failed int, d time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		printWarning(h.w, "%s capture failed: %s", viewport, errors.UserMessage(err))
		return
	}
	if failed > 0 {
		printWarning(h.w, "%s: %s captured, %d failed", viewport, pluralize(sections, "section"), failed)
		return
	}
	printStatus(h.w, iconCapture, "%s: %s %s", viewport, pluralize(sections, "section"), StyleDim.Render(round(d)))
}

func (h *statusHooks) OnVideoRecorded(_ context.Context, _, viewport string, d time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		printWarning(h.w, "%s video skipped: %s", viewport, errors.UserMessage(err))
		return
	}
	printStatus(h.w, iconVideo, "%s scroll video %s", viewport, StyleDim.Render(round(d)))
}

func (h *statusHooks) OnMockupsComplete(_ context.Context, _ string, written int, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		printWarning(h.w, "Mockups incomplete: %s", errors.UserMessage(err))
	}
	if written > 0 {
		printStatus(h.w, iconMockup, "%s", pluralize(written, "mockup"))
	}
}

func (h *statusHooks) OnManifestWritten(_ context.Context, file string, pages int, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		printError(h.w, "Writing %s failed: %s", store.ManifestFile, errors.UserMessage(err))
		return
	}
	printStatus(h.w, iconManifest, "%s with %s", filepath.Base(file), pluralize(pages, "page"))
	printFile(h.w, file)
}

func round(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

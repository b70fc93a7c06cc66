package browser_test

import (
	"context"
	"testing"
	"time"

	"github.com/msgwebdev-git/goqode-sub000/pkg/browser"
	"github.com/msgwebdev-git/goqode-sub000/pkg/browser/browsertest"
	"github.com/msgwebdev-git/goqode-sub000/pkg/config"
)

func TestPause(t *testing.T) {
	ctx := context.Background()

	start := time.Now()
	if err := browser.Pause(ctx, 20*time.Millisecond); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if got := time.Since(start); got < 20*time.Millisecond {
		t.Errorf("Pause() returned after %v, want >= 20ms", got)
	}

	if err := browser.Pause(ctx, 0); err != nil {
		t.Errorf("Pause(0) error = %v", err)
	}
}

func TestPauseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if err := browser.Pause(ctx, time.Minute); err != context.Canceled {
		t.Errorf("Pause() = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Pause() did not return promptly on cancellation")
	}
}

func TestScrollHelpers(t *testing.T) {
	ctx := context.Background()
	vp, _ := config.Default().Viewport(config.ViewportDesktop)

	b := browsertest.New()
	b.Add("https://example.com", &browsertest.Document{ScrollHeight: 3000})

	p, err := b.NewPage(ctx, browser.PageOptions{Viewport: vp})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	if err := p.Navigate(ctx, "https://example.com", time.Second, 0); err != nil {
		t.Fatal(err)
	}

	m, err := browser.Metrics(ctx, p)
	if err != nil {
		t.Fatalf("Metrics() error = %v", err)
	}
	if m.ScrollHeight != 3000 || m.InnerHeight != 900 || m.ScrollY != 0 {
		t.Errorf("Metrics() = %+v", m)
	}
	if m.AtBottom() {
		t.Error("AtBottom() = true at top of a 3000px document")
	}

	y, err := browser.ScrollBy(ctx, p, 1500)
	if err != nil || y != 1500 {
		t.Errorf("ScrollBy(1500) = %v, %v, want 1500", y, err)
	}

	// Clamped at scrollHeight - innerHeight
	y, _ = browser.ScrollBy(ctx, p, 5000)
	if y != 2100 {
		t.Errorf("ScrollBy past end = %v, want 2100", y)
	}
	m, _ = browser.Metrics(ctx, p)
	if !m.AtBottom() {
		t.Errorf("AtBottom() = false at %+v", m)
	}

	if err := browser.ScrollTo(ctx, p, 0); err != nil {
		t.Fatal(err)
	}
	m, _ = browser.Metrics(ctx, p)
	if m.ScrollY != 0 {
		t.Errorf("ScrollY after ScrollTo(0) = %v", m.ScrollY)
	}
}

// Package record produces the scroll-through video of a page.
//
// Each recording runs in its own browser context so the reduced pixel
// density of the recording never leaks into the screenshot pages. The page
// is scrolled by a small fixed step with a fixed delay after every step
// until the bottom is in view; the pacing is what triggers lazy-load
// observers on the target site, so the loop is never collapsed into one
// jump to the bottom.
package record

import (
	"context"
	"io"
	"path"
	"time"

	"github.com/charmbracelet/log"

	"github.com/msgwebdev-git/goqode-sub000/pkg/browser"
	"github.com/msgwebdev-git/goqode-sub000/pkg/config"
	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
	"github.com/msgwebdev-git/goqode-sub000/pkg/store"
)

// Encoder turns screencast frames into a video file at dst. end marks
// when the last frame stops being shown.
type Encoder interface {
	Encode(ctx context.Context, frames []browser.Frame, end time.Time, dst string) error
}

// Recorder records scroll videos into a store.
type Recorder struct {
	Browser browser.Browser
	Encoder Encoder
	Store   *store.FileStore
	Config  config.Config
	Logger  *log.Logger
}

// New returns a Recorder. A nil encoder uses ffmpeg as configured in
// cfg.Video; a nil logger discards output.
func New(b browser.Browser, enc Encoder, s *store.FileStore, cfg config.Config, logger *log.Logger) *Recorder {
	if enc == nil {
		enc = FFmpeg{Bin: cfg.Video.FFmpeg, Container: cfg.Video.Container}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{Browser: b, Encoder: enc, Store: s, Config: cfg, Logger: logger}
}

// Record opens pageURL in a fresh context at vp, scrolls it top to bottom
// while streaming frames, and writes scroll-{viewport}.{container} under
// the page's video directory. It returns the relative path written.
func (r *Recorder) Record(ctx context.Context, pageURL, page string, vp config.Viewport) (string, error) {
	v := r.Config.Video
	logger := r.Logger.With("page", page, "viewport", vp.Name)

	opts := browser.PageOptions{Viewport: vp.WithScale(v.Scale), Isolated: true}
	p, err := browser.Load(ctx, r.Browser, opts, pageURL, r.Config.Timing)
	if err != nil {
		return "", err
	}
	defer p.Close()

	sc, err := p.StartScreencast(ctx, v.FrameQuality)
	if err != nil {
		return "", err
	}
	frames, end, err := r.scroll(ctx, p, sc)
	if err != nil {
		return "", err
	}
	logger.Debug("scroll recorded", "frames", len(frames), "duration", end.Sub(frames[0].At))

	final := store.VideoFile(page, vp.Name, v.Container)
	tmp := path.Join(store.VideoDir(page), ".scroll-"+vp.Name+".tmp."+v.Container)
	if _, err := r.Store.EnsureDir(store.VideoDir(page)); err != nil {
		return "", err
	}
	if err := r.Encoder.Encode(ctx, frames, end, r.Store.Path(tmp)); err != nil {
		_ = r.Store.Remove(tmp)
		return "", err
	}
	if _, err := r.Store.Rename(tmp, final); err != nil {
		_ = r.Store.Remove(tmp)
		return "", err
	}
	return final, nil
}

// scroll runs the recording script: settle, step down to the bottom,
// hold, stop. The screencast is always stopped, even on error.
func (r *Recorder) scroll(ctx context.Context, p browser.Page, sc browser.Screencast) ([]browser.Frame, time.Time, error) {
	v := r.Config.Video

	err := Scroll(ctx, p, v)
	frames, stopErr := sc.Stop()
	end := time.Now()
	if err != nil {
		return nil, end, err
	}
	if stopErr != nil {
		return nil, end, stopErr
	}
	if len(frames) == 0 {
		return nil, end, errors.New(errors.ErrCodeRecording, "screencast produced no frames")
	}
	return frames, end, nil
}

// maxStalls is the number of consecutive steps that may leave the scroll
// position unchanged before Scroll gives up on reaching the bottom.
const maxStalls = 3

// Scroll waits for the initial settle, scrolls by v.StepPixels with a
// v.StepDelay pause after every step until the viewport is within one
// viewport height of the document end, then holds for v.HoldDelay.
// Progress is measured from the metrics read after each pause; the loop
// stops early once maxStalls steps in a row do not move the page.
func Scroll(ctx context.Context, p browser.Page, v config.Video) error {
	if err := browser.Pause(ctx, v.InitialDelay); err != nil {
		return err
	}

	m, err := browser.Metrics(ctx, p)
	if err != nil {
		return err
	}
	for stalls := 0; !m.AtBottom() && stalls < maxStalls; {
		if _, err := browser.ScrollBy(ctx, p, float64(v.StepPixels)); err != nil {
			return err
		}
		if err := browser.Pause(ctx, v.StepDelay); err != nil {
			return err
		}
		prev := m.ScrollY
		if m, err = browser.Metrics(ctx, p); err != nil {
			return err
		}
		if m.ScrollY > prev {
			stalls = 0
		} else {
			stalls++
		}
	}

	return browser.Pause(ctx, v.HoldDelay)
}

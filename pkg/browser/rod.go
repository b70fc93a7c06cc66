package browser

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/msgwebdev-git/goqode-sub000/pkg/config"
	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
)

// Rod is the go-rod backed Browser. It owns the launched browser process
// and kills it on Close.
type Rod struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	logger   *log.Logger
}

// Launch starts a browser process according to cfg and connects to it.
// When cfg.Bin is empty the launcher looks for a local Chrome/Chromium and
// downloads one if none is found.
func Launch(ctx context.Context, cfg config.Browser, logger *log.Logger) (*Rod, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox).
		Leakless(true)
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBrowser, err, "launch browser")
	}
	logger.Debug("browser launched", "control", u)

	b := rod.New().ControlURL(u).NoDefaultDevice()
	if err := b.Context(ctx).Connect(); err != nil {
		l.Kill()
		return nil, errors.Wrap(errors.ErrCodeBrowser, err, "connect to browser")
	}

	return &Rod{browser: b, launcher: l, logger: logger}, nil
}

// NewPage implements Browser.
func (r *Rod) NewPage(ctx context.Context, opts PageOptions) (Page, error) {
	owner := r.browser
	var isolated *rod.Browser
	if opts.Isolated {
		inc, err := r.browser.Incognito()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeBrowser, err, "create browser context")
		}
		owner, isolated = inc, inc
	}

	p, err := owner.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		if isolated != nil {
			_ = isolated.Close()
		}
		return nil, errors.Wrap(errors.ErrCodeBrowser, err, "open page")
	}

	vp := opts.Viewport
	err = p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             vp.Width,
		Height:            vp.Height,
		DeviceScaleFactor: vp.Scale,
		Mobile:            vp.Mobile,
	})
	if err != nil {
		_ = p.Close()
		if isolated != nil {
			_ = isolated.Close()
		}
		return nil, errors.Wrap(errors.ErrCodeBrowser, err, "set viewport %s", vp.Name)
	}

	return &rodPage{page: p, isolated: isolated}, nil
}

// Close implements Browser.
func (r *Rod) Close() error {
	err := r.browser.Close()
	r.launcher.Kill()
	r.launcher.Cleanup()
	if err != nil {
		return errors.Wrap(errors.ErrCodeBrowser, err, "close browser")
	}
	return nil
}

// =============================================================================
// Page
// =============================================================================

type rodPage struct {
	page     *rod.Page
	isolated *rod.Browser
}

func (p *rodPage) Navigate(ctx context.Context, url string, timeout, idle time.Duration) error {
	page := p.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	wait := page.WaitNavigation(proto.PageLifecycleEventNameNetworkAlmostIdle)
	if err := page.Navigate(url); err != nil {
		return errors.Wrap(errors.ErrCodeNavigation, err, "navigate %s", url)
	}
	wait()
	if err := page.WaitLoad(); err != nil {
		return errors.Wrap(errors.ErrCodeNavigation, err, "load %s", url)
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNavigation, err, "navigate %s", url)
	}
	return Pause(ctx, idle)
}

func (p *rodPage) Eval(ctx context.Context, script string, out any, args ...any) error {
	res, err := p.page.Context(ctx).Eval(script, args...)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCapture, err, "evaluate script")
	}
	if out == nil {
		return nil
	}
	if err := res.Value.Unmarshal(out); err != nil {
		return errors.Wrap(errors.ErrCodeCapture, err, "decode script result")
	}
	return nil
}

func (p *rodPage) HTML(ctx context.Context) (string, error) {
	html, err := p.page.Context(ctx).HTML()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeCapture, err, "read document")
	}
	return html, nil
}

func (p *rodPage) Screenshot(ctx context.Context, req ScreenshotRequest) ([]byte, error) {
	shot := &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormat(req.Format),
	}
	if req.Quality > 0 {
		shot.Quality = gson.Int(req.Quality)
	}
	if req.Clip != nil {
		shot.Clip = &proto.PageViewport{
			X:      req.Clip.X,
			Y:      req.Clip.Y,
			Width:  req.Clip.Width,
			Height: req.Clip.Height,
			Scale:  1,
		}
		shot.CaptureBeyondViewport = true
	}

	data, err := p.page.Context(ctx).Screenshot(false, shot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCapture, err, "screenshot")
	}
	return data, nil
}

func (p *rodPage) StartScreencast(ctx context.Context, quality int) (Screencast, error) {
	sctx, cancel := context.WithCancel(ctx)
	page := p.page.Context(sctx)

	sc := &rodScreencast{page: p.page, cancel: cancel, done: make(chan struct{})}
	wait := page.EachEvent(func(e *proto.PageScreencastFrame) {
		sc.add(Frame{Data: e.Data, At: time.Now()})
		_ = proto.PageScreencastFrameAck{SessionID: e.SessionID}.Call(page)
	})

	err := proto.PageStartScreencast{
		Format:  proto.PageStartScreencastFormatJpeg,
		Quality: gson.Int(quality),
	}.Call(page)
	if err != nil {
		cancel()
		return nil, errors.Wrap(errors.ErrCodeRecording, err, "start screencast")
	}

	go func() {
		defer close(sc.done)
		wait()
	}()
	return sc, nil
}

func (p *rodPage) Close() error {
	err := p.page.Close()
	if p.isolated != nil {
		if cerr := p.isolated.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeBrowser, err, "close page")
	}
	return nil
}

// =============================================================================
// Screencast
// =============================================================================

type rodScreencast struct {
	page   *rod.Page
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	frames []Frame
}

func (s *rodScreencast) add(f Frame) {
	s.mu.Lock()
	s.frames = append(s.frames, f)
	s.mu.Unlock()
}

func (s *rodScreencast) Stop() ([]Frame, error) {
	err := proto.PageStopScreencast{}.Call(s.page)
	s.cancel()
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return s.frames, errors.Wrap(errors.ErrCodeRecording, err, "stop screencast")
	}
	return s.frames, nil
}

// Package browsertest provides a scripted, in-memory browser.Browser for
// tests. Documents are registered by URL; every call is recorded so tests
// can assert on ordering, pacing and isolation without a real browser.
package browsertest

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"sync"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"github.com/msgwebdev-git/goqode-sub000/pkg/browser"
	"github.com/msgwebdev-git/goqode-sub000/pkg/dom"
	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
)

// Document is a fake loaded page.
type Document struct {
	HTML string

	// Sections holds the candidates reported by the sections script,
	// keyed by viewport name. The "" entry is used for viewports without
	// their own entry.
	Sections map[string][]dom.Candidate

	// Colors is the raw list returned by the colors script.
	Colors []string

	// ScrollHeight is the document height in CSS pixels. Zero means the
	// document fits in any viewport.
	ScrollHeight float64

	// SmoothScroll makes the scroll scripts return the offset from before
	// the scroll, as a page animating its scroll would. The new offset is
	// visible to the next metrics read.
	SmoothScroll bool

	// Stuck makes the scroll scripts leave the offset unchanged.
	Stuck bool
}

// Call is one recorded browser interaction.
type Call struct {
	Op       string // "open", "navigate", "eval", "html", "screenshot", "screencast", "close"
	Viewport string
	Scale    float64
	Isolated bool
	URL      string
	Script   string        // for "eval": the evaluated script
	Arg      float64       // for scroll scripts: the argument
	Args     []any         // for "eval": every script argument
	Clip     *browser.Rect // for "screenshot"
	At       time.Time
}

// Browser is a fake browser.Browser. The zero value has no documents;
// use New and Add.
type Browser struct {
	// FailNavigate makes navigation to the URL fail.
	FailNavigate map[string]bool

	// FailScreenshot, when set, makes a screenshot fail when it returns true.
	FailScreenshot func(viewport string, clip *browser.Rect) bool

	// FailScreencast makes StartScreencast fail.
	FailScreencast bool

	// FailOpenIsolated makes NewPage fail for isolated pages.
	FailOpenIsolated bool

	mu     sync.Mutex
	docs   map[string]*Document
	calls  []Call
	open   int
	closed bool
}

// New returns an empty fake browser.
func New() *Browser {
	return &Browser{
		FailNavigate: make(map[string]bool),
		docs:         make(map[string]*Document),
	}
}

// Add registers doc under url.
func (b *Browser) Add(url string, doc *Document) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[url] = doc
}

// Calls returns a copy of every recorded call.
func (b *Browser) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// CallsOf returns the recorded calls with the given op.
func (b *Browser) CallsOf(op string) []Call {
	var out []Call
	for _, c := range b.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// OpenPages reports how many pages are open.
func (b *Browser) OpenPages() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// Closed reports whether Close was called.
func (b *Browser) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *Browser) record(c Call) {
	c.At = time.Now()
	b.mu.Lock()
	b.calls = append(b.calls, c)
	b.mu.Unlock()
}

// NewPage implements browser.Browser.
func (b *Browser) NewPage(ctx context.Context, opts browser.PageOptions) (browser.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Isolated && b.FailOpenIsolated {
		return nil, errors.New(errors.ErrCodeBrowser, "create browser context: refused")
	}
	b.mu.Lock()
	b.open++
	b.mu.Unlock()
	b.record(Call{Op: "open", Viewport: opts.Viewport.Name, Scale: opts.Viewport.Scale, Isolated: opts.Isolated})
	return &Page{browser: b, opts: opts}, nil
}

// Close implements browser.Browser.
func (b *Browser) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	return nil
}

// =============================================================================
// Page
// =============================================================================

// Page is a fake tab bound to one viewport.
type Page struct {
	browser *Browser
	opts    browser.PageOptions

	mu      sync.Mutex
	url     string
	doc     *Document
	scrollY float64
	cast    *screencast
	closed  bool
}

func (p *Page) call(c Call) {
	c.Viewport = p.opts.Viewport.Name
	c.Scale = p.opts.Viewport.Scale
	c.Isolated = p.opts.Isolated
	if c.URL == "" {
		c.URL = p.url
	}
	p.browser.record(c)
}

// Navigate implements browser.Page.
func (p *Page) Navigate(ctx context.Context, url string, timeout, idle time.Duration) error {
	p.call(Call{Op: "navigate", URL: url})
	if err := ctx.Err(); err != nil {
		return err
	}

	p.browser.mu.Lock()
	doc, ok := p.browser.docs[url]
	fail := p.browser.FailNavigate[url]
	p.browser.mu.Unlock()

	if fail {
		return errors.New(errors.ErrCodeTimeout, "navigate %s: timed out after %s", url, timeout)
	}
	if !ok {
		return errors.New(errors.ErrCodeNavigation, "navigate %s: net::ERR_NAME_NOT_RESOLVED", url)
	}

	p.mu.Lock()
	p.url, p.doc, p.scrollY = url, doc, 0
	p.mu.Unlock()
	return nil
}

// Eval implements browser.Page by dispatching on the script identity.
func (p *Page) Eval(ctx context.Context, script string, out any, args ...any) error {
	c := Call{Op: "eval", Script: script, Args: args}
	if len(args) > 0 {
		c.Arg = toFloat(args[0])
	}
	p.call(c)
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return errors.New(errors.ErrCodeCapture, "evaluate script: no document loaded")
	}

	switch script {
	case dom.SectionsScript:
		return assign(out, p.sections())
	case dom.ColorsScript:
		return assign(out, append([]string(nil), p.doc.Colors...))
	case dom.MetricsScript:
		return assign(out, p.metrics())
	case dom.ScrollToScript:
		return assign(out, p.scroll(c.Arg))
	case dom.ScrollByScript:
		return assign(out, p.scroll(p.scrollY+c.Arg))
	}
	return errors.New(errors.ErrCodeCapture, "evaluate script: unknown script")
}

func (p *Page) sections() []dom.Candidate {
	if s, ok := p.doc.Sections[p.opts.Viewport.Name]; ok {
		return append([]dom.Candidate(nil), s...)
	}
	return append([]dom.Candidate(nil), p.doc.Sections[""]...)
}

func (p *Page) metrics() dom.Metrics {
	inner := float64(p.opts.Viewport.Height)
	return dom.Metrics{
		ScrollHeight: math.Max(p.doc.ScrollHeight, inner),
		ScrollY:      p.scrollY,
		InnerHeight:  inner,
	}
}

// scroll moves to y and returns the offset the page script would report.
func (p *Page) scroll(y float64) float64 {
	before := p.scrollY
	if !p.doc.Stuck {
		p.scrollY = p.clamp(y)
	}
	p.frame()
	if p.doc.SmoothScroll {
		return before
	}
	return p.scrollY
}

func (p *Page) clamp(y float64) float64 {
	m := p.metrics()
	return math.Max(0, math.Min(y, m.ScrollHeight-m.InnerHeight))
}

// HTML implements browser.Page.
func (p *Page) HTML(ctx context.Context) (string, error) {
	p.call(Call{Op: "html"})
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return "", errors.New(errors.ErrCodeCapture, "read document: no document loaded")
	}
	return p.doc.HTML, nil
}

// Screenshot implements browser.Page. The returned bytes are a lossless
// webp sized to a tenth of the captured region.
func (p *Page) Screenshot(ctx context.Context, req browser.ScreenshotRequest) ([]byte, error) {
	p.call(Call{Op: "screenshot", Clip: req.Clip})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f := p.browser.FailScreenshot; f != nil && f(p.opts.Viewport.Name, req.Clip) {
		return nil, errors.New(errors.ErrCodeCapture, "screenshot: target closed")
	}

	w, h := float64(p.opts.Viewport.Width), float64(p.opts.Viewport.Height)
	if req.Clip != nil {
		w, h = req.Clip.Width, req.Clip.Height
	}
	return Image(int(w/10), int(h/10), color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff})
}

// StartScreencast implements browser.Page. One frame is emitted for every
// scroll while the screencast runs.
func (p *Page) StartScreencast(ctx context.Context, quality int) (browser.Screencast, error) {
	p.call(Call{Op: "screencast", Arg: float64(quality)})
	if p.browser.FailScreencast {
		return nil, errors.New(errors.ErrCodeRecording, "start screencast: not supported")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cast = &screencast{page: p}
	p.frame()
	return p.cast, nil
}

// frame appends a screencast frame; callers hold p.mu.
func (p *Page) frame() {
	if p.cast == nil || p.cast.stopped {
		return
	}
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(int(p.scrollY) % 256)
	}
	var buf bytes.Buffer
	_ = jpeg.Encode(&buf, img, nil)
	p.cast.frames = append(p.cast.frames, browser.Frame{Data: buf.Bytes(), At: time.Now()})
}

// Close implements browser.Page.
func (p *Page) Close() error {
	p.mu.Lock()
	already := p.closed
	p.closed = true
	p.mu.Unlock()
	if already {
		return nil
	}
	p.call(Call{Op: "close"})
	p.browser.mu.Lock()
	p.browser.open--
	p.browser.mu.Unlock()
	return nil
}

type screencast struct {
	page    *Page
	frames  []browser.Frame
	stopped bool
}

func (s *screencast) Stop() ([]browser.Frame, error) {
	s.page.mu.Lock()
	defer s.page.mu.Unlock()
	s.stopped = true
	return s.frames, nil
}

// =============================================================================
// Helpers
// =============================================================================

// Image returns a w x h lossless webp of a single color.
func Image(w, h int, c color.Color) ([]byte, error) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Section returns a candidate at the given geometry with no ancestors.
func Section(tag string, top, height float64) dom.Candidate {
	return dom.Candidate{Tag: tag, Top: top, Width: 1440, Height: height}
}

func assign(out any, v any) error {
	if out == nil {
		return nil
	}
	switch o := out.(type) {
	case *[]dom.Candidate:
		*o = v.([]dom.Candidate)
	case *[]string:
		*o = v.([]string)
	case *dom.Metrics:
		*o = v.(dom.Metrics)
	case *float64:
		*o = v.(float64)
	default:
		return fmt.Errorf("browsertest: cannot decode %T into %T", v, out)
	}
	return nil
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/msgwebdev-git/goqode-sub000/pkg/analyze"
	"github.com/msgwebdev-git/goqode-sub000/pkg/browser"
	"github.com/msgwebdev-git/goqode-sub000/pkg/capture"
	"github.com/msgwebdev-git/goqode-sub000/pkg/discover"
	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
	"github.com/msgwebdev-git/goqode-sub000/pkg/manifest"
	"github.com/msgwebdev-git/goqode-sub000/pkg/mockup"
	"github.com/msgwebdev-git/goqode-sub000/pkg/observability"
	"github.com/msgwebdev-git/goqode-sub000/pkg/record"
	"github.com/msgwebdev-git/goqode-sub000/pkg/store"
)

// Runner executes capture runs against one shared browser.
//
// The Runner does not own the browser: the caller launches it and closes
// it after the last run. A Runner must not execute two runs at the same
// time.
type Runner struct {
	Browser browser.Browser
	Encoder record.Encoder
	Logger  *log.Logger
}

// NewRunner creates a runner over b.
// If enc is nil, videos are encoded with ffmpeg as configured per run.
// If logger is nil, log.Default is used.
func NewRunner(b browser.Browser, enc record.Encoder, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Browser: b,
		Encoder: enc,
		Logger:  logger,
	}
}

// run holds the per-run state shared by the stages.
type run struct {
	opts     Options
	browser  browser.Browser
	logger   *log.Logger
	store    *store.FileStore
	names    store.PageNames
	capturer *capture.Capturer
	recorder *record.Recorder
	mockups  *mockup.Compositor
}

// Execute runs discovery, per-page capture and the manifest write.
//
// Only invalid options, an unusable output directory, a dead browser,
// cancellation and a failed manifest write abort the run. Every other
// failure is logged, recorded in the page report and skipped.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID)
	cfg := opts.Config

	fs, err := store.Open(cfg.Output.Root, opts.Slug)
	if err != nil {
		return nil, err
	}
	if err := fs.Reset(); err != nil {
		return nil, err
	}
	logger.Debug("output reset", "dir", fs.Dir(), "viewports", cfg.String())

	rn := &run{
		opts:     opts,
		browser:  r.Browser,
		logger:   logger,
		store:    fs,
		names:    store.PageNames{},
		capturer: capture.New(r.Browser, fs, cfg, logger),
		recorder: record.New(r.Browser, r.Encoder, fs, cfg, logger),
		mockups:  mockup.New(cfg.Mockup, logger),
	}

	// Stage 1: Pages
	discoveryStart := time.Now()
	pages, err := rn.pages(ctx)
	if err != nil {
		return nil, err
	}
	result.Stats.DiscoveryTime = time.Since(discoveryStart)

	// Stage 2: Capture, strictly one page at a time
	captureStart := time.Now()
	var (
		metas  []manifest.PageMeta
		colors = map[string][]string{}
	)
	for i, path := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		observability.Capture().OnPageStart(ctx, path, i, len(pages))

		rep, meta, palette, err := rn.page(ctx, path)
		if err != nil {
			return nil, err
		}
		result.Pages = append(result.Pages, *rep)
		if meta != nil {
			metas = append(metas, *meta)
			colors[path] = palette
		}
	}
	result.Stats.CaptureTime = time.Since(captureStart)

	// Stage 3: Manifest
	var palette []string
	if home := manifest.Home(metas); home != nil {
		palette = colors[home.Path]
	}
	site := manifest.NewSite(opts.URL, opts.Slug, palette, metas, time.Now())
	file := fs.Path(store.ManifestFile)
	err = manifest.Export(file, site)
	observability.Capture().OnManifestWritten(ctx, file, len(site.Pages), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFilesystem, err, "write manifest")
	}
	result.Site = site
	result.Manifest = file

	result.Stats.TotalTime = time.Since(start)
	for _, p := range result.Pages {
		result.Stats.PageCount++
		if p.Skipped {
			result.Stats.SkippedCount++
		}
		result.Stats.ShotCount += len(p.Shots)
		result.Stats.WarningCount += len(p.Warnings)
	}

	logger.Info("capture complete",
		"pages", result.Stats.Captured(),
		"skipped", result.Stats.SkippedCount,
		"shots", result.Stats.ShotCount,
		"duration", result.Stats.TotalTime)

	return result, nil
}

// pages returns the explicit page list verbatim, or discovers pages from
// the home page and passes them through opts.Select.
func (rn *run) pages(ctx context.Context) ([]string, error) {
	opts := rn.opts
	if !opts.Discover() {
		rn.logger.Info("using explicit pages", "pages", opts.Pages)
		return opts.Pages, nil
	}

	start := time.Now()
	pages, err := discover.Discover(ctx, rn.browser, opts.PageURL(discover.Root), opts.Depth, opts.Config)
	observability.Capture().OnDiscoveryComplete(ctx, pages, time.Since(start), err)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rn.logger.Warn("page discovery failed, capturing the home page only", "err", err)
	}
	rn.logger.Info("discovered pages", "count", len(pages), "depth", opts.Depth)

	if opts.Select == nil {
		return pages, nil
	}
	selected, err := opts.Select(pages)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no pages selected")
	}
	return selected, nil
}

// page captures one page. A nil meta means the page was skipped. The
// returned error is non-nil only when the run must stop.
func (rn *run) page(ctx context.Context, path string) (*PageReport, *manifest.PageMeta, []string, error) {
	cfg := rn.opts.Config
	rep := &PageReport{
		Path: path,
		Name: rn.names.Name(path),
		URL:  rn.opts.PageURL(path),
	}
	logger := rn.logger.With("page", rep.Name)
	if rep.Name != store.PageName(path) {
		logger.Warn("page directory name taken, using a suffix", "path", path)
	}
	// warn records a recoverable failure. Cancellation always stops the
	// run; a fatal error stops it when fatal is set.
	warn := func(fatal bool, msg string, err error, kv ...any) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if fatal && errors.Fatal(err) {
			return err
		}
		logger.Warn(msg, append(kv, "err", err)...)
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s: %s", msg, errors.UserMessage(err)))
		return nil
	}

	// Analysis completes before any viewport capture begins.
	res, err := rn.analyze(ctx, rep.URL)
	if res != nil {
		observability.Capture().OnPageAnalyzed(ctx, path, len(res.Sections), len(res.Colors), err)
	} else {
		observability.Capture().OnPageAnalyzed(ctx, path, 0, 0, err)
	}
	if err != nil {
		rep.Skipped = true
		return rep, nil, nil, warn(true, "page analysis failed, skipping page", err)
	}
	for _, w := range res.Warnings {
		logger.Warn("partial analysis", "detail", w)
		rep.Warnings = append(rep.Warnings, w)
	}
	rep.Sections = len(res.Sections)
	logger.Debug("page analyzed", "sections", rep.Sections, "colors", len(res.Colors), "title", res.Title)

	for _, vp := range cfg.Viewports {
		crep, err := rn.capturer.Capture(ctx, capture.Target{
			URL:   rep.URL,
			Page:  rep.Name,
			Limit: rep.Sections,
		}, vp)
		if err != nil {
			observability.Capture().OnViewportCaptured(ctx, path, vp.Name, 0, 0, 0, err)
			if err := warn(true, "viewport capture failed", err, "viewport", vp.Name); err != nil {
				return nil, nil, nil, err
			}
			continue
		}
		observability.Capture().OnViewportCaptured(ctx, path, vp.Name, len(crep.Files), len(crep.Failed), crep.Duration, nil)
		rep.Shots = append(rep.Shots, crep.Files...)
		if crep.Shot != "" {
			rep.Shots = append(rep.Shots, crep.Shot)
		}
		for _, f := range crep.Failed {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s %s: %s", vp.Name, f.Name, errors.UserMessage(f.Err)))
		}
	}

	if !rn.opts.NoVideo {
		for _, vp := range cfg.Viewports {
			start := time.Now()
			file, err := rn.recorder.Record(ctx, rep.URL, rep.Name, vp)
			observability.Capture().OnVideoRecorded(ctx, path, vp.Name, time.Since(start), err)
			if err != nil {
				if err := warn(false, "video recording failed", err, "viewport", vp.Name); err != nil {
					return nil, nil, nil, err
				}
				continue
			}
			rep.Videos = append(rep.Videos, file)
		}
	}

	if !rn.opts.NoMockups {
		files, err := rn.mockups.Generate(rn.store, rep.Name, cfg.Capture.Format)
		observability.Capture().OnMockupsComplete(ctx, path, len(files), err)
		rep.Mockups = append(rep.Mockups, files...)
		if err != nil {
			if err := warn(false, "mockup generation failed", err); err != nil {
				return nil, nil, nil, err
			}
		}
	}

	meta := res.PageMeta(rep.URL, path)
	return rep, &meta, res.Colors, nil
}

// analyze loads pageURL in the first viewport and analyzes it.
func (rn *run) analyze(ctx context.Context, pageURL string) (*analyze.Result, error) {
	cfg := rn.opts.Config
	p, err := browser.Load(ctx, rn.browser, browser.PageOptions{Viewport: cfg.Viewports[0]}, pageURL, cfg.Timing)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return analyze.Analyze(ctx, p, pageURL, cfg)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

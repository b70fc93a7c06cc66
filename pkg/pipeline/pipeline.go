// Package pipeline provides the capture pipeline for case-capture.
//
// This package drives every stage of a run in order and is the only place
// that decides whether a failure aborts the run or is logged and skipped.
// The stages themselves (discover, analyze, capture, record, mockup) only
// report errors.
//
// # Architecture
//
// A run consists of:
//
//  1. Reset: the slug's output tree is removed and recreated
//  2. Discover: the home page is loaded and its shallow links collected,
//     unless an explicit page list is given
//  3. Per page, strictly one at a time:
//     analyze, capture every viewport, record videos, composite mockups
//  4. Manifest: meta.json is written at the root of the output tree
//
// # Usage
//
// Create a Runner around a launched browser and execute:
//
//	b, err := browser.Launch(ctx, cfg.Browser, logger)
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//
//	runner := pipeline.NewRunner(b, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    URL:    "https://acme.com",
//	    Slug:   "acme",
//	    Depth:  1,
//	    Config: cfg,
//	})
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/msgwebdev-git/goqode-sub000/pkg/config"
	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
	"github.com/msgwebdev-git/goqode-sub000/pkg/manifest"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultDepth is the maximum path-segment count of discovered pages.
const DefaultDepth = 1

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options contains all configuration for one capture run.
type Options struct {
	URL   string   // root URL of the site; a trailing slash is removed
	Slug  string   // output directory name under Config.Output.Root
	Pages []string // explicit page paths; disables discovery when non-empty
	Depth int      // discovery depth; 0 keeps only the home page

	NoVideo   bool // skip scroll recordings
	NoMockups bool // skip device mockups

	// Config tunes every stage. A Config without viewports is replaced
	// by config.Default().
	Config config.Config

	// Select, when set, narrows the discovered pages before capture.
	// It is not called for an explicit page list.
	Select func(pages []string) ([]string, error)

	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Site is the manifest written to Manifest.
	Site *manifest.SiteMeta

	// Manifest is the path of meta.json.
	Manifest string

	// Pages has one report per requested page, in capture order,
	// including skipped pages.
	Pages []PageReport

	// Stats contains timing information.
	Stats Stats
}

// PageReport summarises what was produced for one page.
type PageReport struct {
	Path     string
	Name     string // page directory name
	URL      string
	Skipped  bool // analysis failed; nothing was captured
	Sections int  // sections found during analysis
	Shots    []string
	Videos   []string
	Mockups  []string
	Warnings []string
}

// Stats contains run statistics.
type Stats struct {
	PageCount     int
	SkippedCount  int
	ShotCount     int
	WarningCount  int
	DiscoveryTime time.Duration
	CaptureTime   time.Duration
	TotalTime     time.Duration
}

// Captured reports the number of pages that made it into the manifest.
func (s Stats) Captured() int {
	return s.PageCount - s.SkippedCount
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	o.URL = strings.TrimRight(strings.TrimSpace(o.URL), "/")
	if err := errors.ValidateURL(o.URL); err != nil {
		return err
	}
	if err := errors.ValidateSlug(o.Slug); err != nil {
		return err
	}
	for _, p := range o.Pages {
		if err := errors.ValidatePagePath(p); err != nil {
			return err
		}
	}
	if o.Depth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "depth must not be negative, got %d", o.Depth)
	}

	if len(o.Config.Viewports) == 0 {
		o.Config = config.Default()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Discover reports whether the page list comes from discovery.
func (o *Options) Discover() bool {
	return len(o.Pages) == 0
}

// PageURL returns the absolute URL of a page path.
func (o *Options) PageURL(path string) string {
	return o.URL + path
}

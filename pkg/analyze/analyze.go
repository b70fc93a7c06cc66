// Package analyze extracts what a capture run needs to know about a loaded
// page: its metadata, its sections, its color palette and its links.
//
// All DOM access goes through the scripts in package dom. The rules that
// turn raw candidates into sections ([SelectSections]) and raw colors into
// a palette ([FilterColors]) are pure functions so they can be tested
// without a browser.
//
// Section detection is deterministic for a constant DOM: running it twice
// against an unchanged page yields the same names in the same order.
package analyze

import (
	"context"
	"fmt"

	"github.com/msgwebdev-git/goqode-sub000/pkg/browser"
	"github.com/msgwebdev-git/goqode-sub000/pkg/config"
	"github.com/msgwebdev-git/goqode-sub000/pkg/manifest"
)

// Result is the analysis of one page.
type Result struct {
	Meta
	Sections []manifest.SectionInfo
	Colors   []string
	Links    []string

	// Warnings lists the parts of the analysis that failed without
	// invalidating the rest.
	Warnings []string
}

// Analyze inspects the page currently loaded in p. Failing to read the
// document or detect sections is an error; palette and link extraction
// failures are reported in Result.Warnings.
func Analyze(ctx context.Context, p browser.Page, pageURL string, cfg config.Config) (*Result, error) {
	html, err := p.HTML(ctx)
	if err != nil {
		return nil, err
	}

	meta, err := ExtractMeta(html)
	if err != nil {
		return nil, err
	}
	res := &Result{Meta: meta}

	res.Sections, err = DetectSections(ctx, p, cfg.Analysis, -1)
	if err != nil {
		return nil, fmt.Errorf("detect sections: %w", err)
	}

	if res.Colors, err = Colors(ctx, p, cfg.Analysis); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("colors: %v", err))
		res.Colors = []string{}
	}

	if res.Links, err = ExtractLinks(html, pageURL); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("links: %v", err))
	}

	return res, nil
}

// PageMeta converts the analysis into the manifest record of a page.
func (r *Result) PageMeta(pageURL, pagePath string) manifest.PageMeta {
	sections := r.Sections
	if sections == nil {
		sections = []manifest.SectionInfo{}
	}
	return manifest.PageMeta{
		URL:         pageURL,
		Path:        pagePath,
		Title:       r.Title,
		Description: r.Description,
		OGImage:     r.OGImage,
		Sections:    sections,
	}
}

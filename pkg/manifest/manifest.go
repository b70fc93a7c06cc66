// Package manifest defines the records written to meta.json.
//
// meta.json is the only authoritative output of a run: images and videos
// are referenced implicitly through the file naming convention in package
// store, never by explicit path fields. The JSON field names below are a
// contract with the pages that display case studies and must not change.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// TimeFormat is the capturedAt layout: ISO 8601 with milliseconds, UTC.
const TimeFormat = "2006-01-02T15:04:05.000Z"

// SectionInfo is one detected structural block of a page.
type SectionInfo struct {
	Tag    string  `json:"tag"`
	Index  int     `json:"index"`
	Name   string  `json:"name"`
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PageMeta is the manifest record of one captured page.
type PageMeta struct {
	URL         string        `json:"url"`
	Path        string        `json:"path"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	OGImage     *string       `json:"ogImage"`
	Sections    []SectionInfo `json:"sections"`
}

// SiteMeta is the whole-run manifest.
type SiteMeta struct {
	URL         string     `json:"url"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	OGImage     *string    `json:"ogImage"`
	Colors      []string   `json:"colors"`
	Pages       []PageMeta `json:"pages"`
	CapturedAt  string     `json:"capturedAt"`
}

// Timestamp formats t as a capturedAt value.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// NewSite assembles a SiteMeta. Title, description and OG image come from
// the home page: the page whose path is "/", else the first page.
func NewSite(url, slug string, colors []string, pages []PageMeta, at time.Time) *SiteMeta {
	site := &SiteMeta{
		URL:        url,
		Slug:       slug,
		Colors:     colors,
		Pages:      pages,
		CapturedAt: Timestamp(at),
	}
	if site.Colors == nil {
		site.Colors = []string{}
	}
	if site.Pages == nil {
		site.Pages = []PageMeta{}
	}
	if home := Home(pages); home != nil {
		site.Title = home.Title
		site.Description = home.Description
		site.OGImage = home.OGImage
	}
	return site
}

// Home returns the "/" page, else the first page, else nil.
func Home(pages []PageMeta) *PageMeta {
	for i := range pages {
		if pages[i].Path == "/" {
			return &pages[i]
		}
	}
	if len(pages) > 0 {
		return &pages[0]
	}
	return nil
}

// Write encodes site as indented JSON to w.
func Write(w io.Writer, site *SiteMeta) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalize(site)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Export writes site to a JSON file at path.
func Export(path string, site *SiteMeta) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, site); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a manifest from r.
func Read(r io.Reader) (*SiteMeta, error) {
	var site SiteMeta
	if err := json.NewDecoder(r).Decode(&site); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &site, nil
}

// Import reads a manifest from a JSON file at path.
func Import(path string) (*SiteMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// normalize returns a copy with nil slices replaced by empty ones so the
// JSON always carries arrays, never null.
func normalize(site *SiteMeta) *SiteMeta {
	out := *site
	if out.Colors == nil {
		out.Colors = []string{}
	}
	out.Pages = make([]PageMeta, len(site.Pages))
	for i, p := range site.Pages {
		if p.Sections == nil {
			p.Sections = []SectionInfo{}
		}
		out.Pages[i] = p
	}
	return &out
}

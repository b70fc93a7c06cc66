package manifest

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTimestamp(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 89_000_000, time.FixedZone("CET", 3600))
	if got, want := Timestamp(at), "2026-03-04T04:06:07.089Z"; got != want {
		t.Errorf("Timestamp() = %q, want %q", got, want)
	}
}

func TestNewSiteUsesHomePage(t *testing.T) {
	og := "https://acme.test/og.png"
	pages := []PageMeta{
		{Path: "/about", Title: "About"},
		{Path: "/", Title: "Acme", Description: "Widgets", OGImage: &og},
	}

	site := NewSite("https://acme.test", "acme", []string{"rgb(1, 2, 3)"}, pages, time.Unix(0, 0))
	if site.Title != "Acme" || site.Description != "Widgets" {
		t.Errorf("site title/description = %q/%q, want Acme/Widgets", site.Title, site.Description)
	}
	if site.OGImage == nil || *site.OGImage != og {
		t.Errorf("site.OGImage = %v, want %q", site.OGImage, og)
	}
	if site.CapturedAt != "1970-01-01T00:00:00.000Z" {
		t.Errorf("CapturedAt = %q", site.CapturedAt)
	}
}

func TestNewSiteFallsBackToFirstPage(t *testing.T) {
	site := NewSite("https://acme.test", "acme", nil, []PageMeta{{Path: "/pricing", Title: "Pricing"}}, time.Now())
	if site.Title != "Pricing" {
		t.Errorf("Title = %q, want Pricing", site.Title)
	}

	empty := NewSite("https://acme.test", "acme", nil, nil, time.Now())
	if empty.Title != "" || empty.OGImage != nil {
		t.Errorf("empty site = %+v", empty)
	}
	if empty.Colors == nil || empty.Pages == nil {
		t.Error("NewSite should never leave nil slices")
	}
}

func TestWriteFieldNames(t *testing.T) {
	site := &SiteMeta{
		URL:   "https://acme.test",
		Slug:  "acme",
		Title: "Tom & Jerry",
		Pages: []PageMeta{{
			URL:  "https://acme.test/",
			Path: "/",
			Sections: []SectionInfo{
				{Tag: "header", Index: 0, Name: "top", Top: 0, Left: 0, Width: 1440, Height: 80},
			},
		}},
	}

	var buf bytes.Buffer
	if err := Write(&buf, site); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"url", "slug", "title", "description", "ogImage", "colors", "pages", "capturedAt"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing site key %q", key)
		}
	}
	if raw["ogImage"] != nil {
		t.Errorf("ogImage = %v, want null", raw["ogImage"])
	}
	if colors, ok := raw["colors"].([]any); !ok || len(colors) != 0 {
		t.Errorf("colors = %v, want []", raw["colors"])
	}

	page := raw["pages"].([]any)[0].(map[string]any)
	for _, key := range []string{"url", "path", "title", "description", "ogImage", "sections"} {
		if _, ok := page[key]; !ok {
			t.Errorf("missing page key %q", key)
		}
	}
	section := page["sections"].([]any)[0].(map[string]any)
	for _, key := range []string{"tag", "index", "name", "top", "left", "width", "height"} {
		if _, ok := section[key]; !ok {
			t.Errorf("missing section key %q", key)
		}
	}

	if !strings.Contains(buf.String(), `"Tom & Jerry"`) {
		t.Error("Write() escaped HTML characters")
	}
}

func TestExportImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	site := NewSite("https://acme.test", "acme", []string{"rgb(10, 20, 30)"}, []PageMeta{{Path: "/", Title: "A & B"}}, time.Now())

	if err := Export(path, site); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	got, err := Import(path)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if got.Title != "A & B" || len(got.Pages) != 1 || got.Colors[0] != "rgb(10, 20, 30)" {
		t.Errorf("Import() = %+v", got)
	}
	if got.Pages[0].Sections == nil {
		t.Error("sections should decode as an empty list, not null")
	}
}

func TestReadInvalid(t *testing.T) {
	if _, err := Read(strings.NewReader("{")); err == nil {
		t.Error("Read() should fail on truncated JSON")
	}
}

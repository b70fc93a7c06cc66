package analyze

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
)

// binaryExtensions are link targets that are never captured as pages.
var binaryExtensions = map[string]bool{
	".pdf": true,
	".jpg": true,
	".png": true,
	".svg": true,
	".zip": true,
}

// Meta is the document-level metadata of a page.
type Meta struct {
	Title       string
	Description string
	OGImage     *string // nil when the page declares none
}

// ExtractMeta reads the title, meta description and og:image of a
// rendered document.
func ExtractMeta(html string) (Meta, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Meta{}, errors.Wrap(errors.ErrCodeCapture, err, "parse document")
	}

	m := Meta{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if v, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		m.Description = strings.TrimSpace(v)
	}
	if v, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		v = strings.TrimSpace(v)
		m.OGImage = &v
	}
	return m, nil
}

// ExtractLinks returns the same-origin page paths linked from a rendered
// document, deduplicated in first-seen order. Links are resolved against
// the document's <base href> when present, else pageURL. Links containing
// a fragment and links to binary assets are dropped.
func ExtractLinks(html, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidURL, err, "parse %s", pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCapture, err, "parse document")
	}

	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if b, err := base.Parse(strings.TrimSpace(href)); err == nil {
			base = b
		}
	}

	seen := make(map[string]bool)
	var paths []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.Contains(href, "#") {
			return
		}
		u, err := base.Parse(strings.TrimSpace(href))
		if err != nil || !sameOrigin(u, base) {
			return
		}
		if binaryExtensions[strings.ToLower(path.Ext(u.Path))] {
			return
		}

		p := u.EscapedPath()
		if p == "" {
			p = "/"
		}
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	})
	return paths, nil
}

func sameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}

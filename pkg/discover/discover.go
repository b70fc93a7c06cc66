// Package discover builds the list of pages to capture for a site.
//
// Discovery is deliberately shallow: the home page is loaded once and its
// same-origin links are kept when their path has at most depth segments.
// It is not a crawler; linked pages are never visited.
package discover

import (
	"context"
	"strings"

	"github.com/msgwebdev-git/goqode-sub000/pkg/analyze"
	"github.com/msgwebdev-git/goqode-sub000/pkg/browser"
	"github.com/msgwebdev-git/goqode-sub000/pkg/config"
)

// Root is the home page path. It is always the first discovered page.
const Root = "/"

// Discover loads root and returns "/" followed by the linked pages within
// depth. On navigation or extraction failure it returns just "/" together
// with the error, which callers log and otherwise ignore.
func Discover(ctx context.Context, b browser.Browser, root string, depth int, cfg config.Config) ([]string, error) {
	p, err := browser.Load(ctx, b, browser.PageOptions{Viewport: cfg.Viewports[0]}, root, cfg.Timing)
	if err != nil {
		return []string{Root}, err
	}
	defer p.Close()

	html, err := p.HTML(ctx)
	if err != nil {
		return []string{Root}, err
	}
	links, err := analyze.ExtractLinks(html, root)
	if err != nil {
		return []string{Root}, err
	}
	return FilterPaths(links, depth), nil
}

// FilterPaths returns "/" followed by every path in links with at most
// depth non-empty segments, without duplicates, in first-seen order.
func FilterPaths(links []string, depth int) []string {
	seen := map[string]bool{Root: true}
	out := []string{Root}
	for _, l := range links {
		if seen[l] || Segments(l) > depth {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// Segments counts the non-empty segments of a path: "/" has 0,
// "/blog/post/" has 2.
func Segments(path string) int {
	n := 0
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			n++
		}
	}
	return n
}

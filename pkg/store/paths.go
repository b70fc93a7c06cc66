package store

import (
	"fmt"
	"path"
	"strconv"
	"strings"
)

// ManifestFile is the run manifest, relative to the slug directory.
const ManifestFile = "meta.json"

// Mockup artifact names.
const (
	MockupLaptop = "macbook"
	MockupPhone  = "iphone"
	MockupMulti  = "multi-device"
)

// HomePage is the directory name of the "/" page.
const HomePage = "home"

// PageName converts a page path into its directory name: "/" becomes
// "home", "/blog/post" becomes "blog-post". Characters outside
// [a-z0-9_-] are replaced with "-".
func PageName(pagePath string) string {
	trimmed := strings.Trim(pagePath, "/")
	if trimmed == "" {
		return HomePage
	}
	return Sanitize(strings.ReplaceAll(trimmed, "/", "-"))
}

// PageNames assigns page directory names within one run. A path whose
// PageName is already taken gets the first free numeric suffix, so "/a/b"
// and "/a-b" land in "a-b" and "a-b-2".
type PageNames map[string]bool

// Name returns the directory name for pagePath and marks it taken.
func (n PageNames) Name(pagePath string) string {
	base := PageName(pagePath)
	name := base
	for i := 2; n[name]; i++ {
		name = base + "-" + strconv.Itoa(i)
	}
	n[name] = true
	return name
}

// Sanitize lowercases s and replaces every character outside [a-z0-9_-]
// with "-".
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// PageDir is the directory of one page.
func PageDir(page string) string {
	return path.Join("pages", page)
}

// SectionsDir holds section and viewport screenshots of a page.
func SectionsDir(page string) string {
	return path.Join(PageDir(page), "sections")
}

// VideoDir holds the scroll recordings of a page.
func VideoDir(page string) string {
	return path.Join(PageDir(page), "video")
}

// MockupsDir holds the device mockups of a page.
func MockupsDir(page string) string {
	return path.Join(PageDir(page), "mockups")
}

// SectionFile is the screenshot of one section: "{NN}-{name}-{viewport}.{ext}".
func SectionFile(page string, index int, name, viewport, ext string) string {
	return path.Join(SectionsDir(page), fmt.Sprintf("%02d-%s-%s.%s", index, name, viewport, ext))
}

// ViewportFile is the above-the-fold screenshot: "viewport-{viewport}.{ext}".
func ViewportFile(page, viewport, ext string) string {
	return path.Join(SectionsDir(page), fmt.Sprintf("viewport-%s.%s", viewport, ext))
}

// VideoFile is the scroll recording: "scroll-{viewport}.{container}".
func VideoFile(page, viewport, container string) string {
	return path.Join(VideoDir(page), fmt.Sprintf("scroll-%s.%s", viewport, container))
}

// MockupFile is a composited mockup: "{kind}.webp".
func MockupFile(page, kind string) string {
	return path.Join(MockupsDir(page), kind+".webp")
}

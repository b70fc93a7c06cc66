package analyze

import (
	"context"
	"strconv"
	"strings"

	"github.com/msgwebdev-git/goqode-sub000/pkg/browser"
	"github.com/msgwebdev-git/goqode-sub000/pkg/config"
	"github.com/msgwebdev-git/goqode-sub000/pkg/dom"
	"github.com/msgwebdev-git/goqode-sub000/pkg/manifest"
	"github.com/msgwebdev-git/goqode-sub000/pkg/store"
)

// Class tokens outside this length range are not used as section names.
const (
	minClassNameLen = 3
	maxClassNameLen = 29
)

// DetectSections runs section detection against the page as currently
// laid out, keeping at most limit sections. A negative limit keeps all.
func DetectSections(ctx context.Context, p browser.Page, cfg config.Analysis, limit int) ([]manifest.SectionInfo, error) {
	var cands []dom.Candidate
	if err := p.Eval(ctx, dom.SectionsScript, &cands, dom.SectionSelector); err != nil {
		return nil, err
	}
	sections := SelectSections(cands, cfg)
	if limit >= 0 && len(sections) > limit {
		sections = sections[:limit]
	}
	return sections, nil
}

// SelectSections applies the section rules to candidates in DOM order:
// a candidate smaller than the configured minimum is skipped, as is one
// with an already accepted ancestor. Accepted sections get sequential
// indexes starting at 0.
func SelectSections(cands []dom.Candidate, cfg config.Analysis) []manifest.SectionInfo {
	accepted := make(map[int]bool)
	sections := make([]manifest.SectionInfo, 0, len(cands))

	for i, c := range cands {
		if c.Height < cfg.MinSectionHeight || c.Width < cfg.MinSectionWidth {
			continue
		}
		if hasAcceptedAncestor(c, accepted) {
			continue
		}
		accepted[i] = true

		index := len(sections)
		sections = append(sections, manifest.SectionInfo{
			Tag:    c.Tag,
			Index:  index,
			Name:   DeriveName(c.ID, c.ClassName, c.Tag, index),
			Top:    c.Top,
			Left:   c.Left,
			Width:  c.Width,
			Height: c.Height,
		})
	}
	return sections
}

func hasAcceptedAncestor(c dom.Candidate, accepted map[int]bool) bool {
	for _, a := range c.Ancestors {
		if accepted[a] {
			return true
		}
	}
	return false
}

// DeriveName picks a readable name for a section: its id, else its first
// class token when 3 to 29 characters long, else "{tag}-{index}". The
// result is sanitized to [a-z0-9_-].
func DeriveName(id, className, tag string, index int) string {
	name := id
	if name == "" {
		if fields := strings.Fields(className); len(fields) > 0 {
			if n := len(fields[0]); n >= minClassNameLen && n <= maxClassNameLen {
				name = fields[0]
			}
		}
	}
	if name == "" {
		name = tag + "-" + strconv.Itoa(index)
	}
	return store.Sanitize(name)
}

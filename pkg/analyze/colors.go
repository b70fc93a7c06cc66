package analyze

import (
	"context"
	"strings"

	"github.com/msgwebdev-git/goqode-sub000/pkg/browser"
	"github.com/msgwebdev-git/goqode-sub000/pkg/config"
	"github.com/msgwebdev-git/goqode-sub000/pkg/dom"
)

// ignoredColors are computed values that carry no palette information.
var ignoredColors = map[string]bool{
	"":                   true,
	"transparent":        true,
	"rgba(0, 0, 0, 0)":   true,
	"rgb(0, 0, 0)":       true,
	"rgb(255, 255, 255)": true,
}

// Colors samples computed background and foreground colors from the page
// and returns the filtered palette.
func Colors(ctx context.Context, p browser.Page, cfg config.Analysis) ([]string, error) {
	var raw []string
	if err := p.Eval(ctx, dom.ColorsScript, &raw, cfg.ColorSampleSize); err != nil {
		return nil, err
	}
	return FilterColors(raw, cfg.MaxColors), nil
}

// FilterColors drops transparent, pure black and pure white values,
// removes duplicates keeping first-seen order, and truncates to limit.
func FilterColors(raw []string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, limit)
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if ignoredColors[c] || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Package dom holds the JavaScript evaluated inside the captured page and
// the plain records it returns.
//
// Everything that touches the live DOM lives in the embedded scripts; Go
// code only ever sees the serializable records below. This keeps the
// section-selection rules testable without a browser: the sections script
// reports every candidate element with the positions of its candidate
// ancestors, and the nesting/size rules run in Go (see package analyze).
package dom

import (
	_ "embed"
)

// SectionSelector lists the elements considered as section candidates.
const SectionSelector = `section, header, footer, main > *, [role="banner"], [role="main"], [role="contentinfo"]`

// SectionsScript takes SectionSelector and returns []Candidate for the
// current viewport, in DOM order.
//
//go:embed js/sections.js
var SectionsScript string

// ColorsScript takes a sample size and returns the computed background and
// foreground colors of evenly spaced elements, as a flat []string.
//
//go:embed js/colors.js
var ColorsScript string

// MetricsScript returns Metrics for the current scroll state.
//
//go:embed js/metrics.js
var MetricsScript string

// ScrollToScript takes an absolute y offset and returns the resulting scrollY.
//
//go:embed js/scroll.js
var ScrollToScript string

// ScrollByScript takes a delta and returns the resulting scrollY.
//
//go:embed js/scrollby.js
var ScrollByScript string

// Candidate is one element matched by SectionSelector.
type Candidate struct {
	Tag       string  `json:"tag"`
	ID        string  `json:"id"`
	ClassName string  `json:"className"`
	Top       float64 `json:"top"` // page coordinates (includes scroll offset)
	Left      float64 `json:"left"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`

	// Ancestors holds the positions (in the candidate list) of every
	// candidate that contains this element, nearest first.
	Ancestors []int `json:"ancestors"`
}

// Metrics describes the scrollable document.
type Metrics struct {
	ScrollHeight float64 `json:"scrollHeight"`
	ScrollY      float64 `json:"scrollY"`
	InnerHeight  float64 `json:"innerHeight"`
}

// AtBottom reports whether the viewport is within one viewport height of
// the end of the document.
func (m Metrics) AtBottom() bool {
	return m.ScrollY >= m.ScrollHeight-m.InnerHeight
}

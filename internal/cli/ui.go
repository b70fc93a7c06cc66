package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/msgwebdev-git/goqode-sub000/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for failures.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

var styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

// =============================================================================
// Icons
// =============================================================================

// One icon per pipeline stage, printed at the start of each status line.
const (
	iconDiscover = "🔍"
	iconPage     = "📄"
	iconAnalyze  = "🧩"
	iconCapture  = "📸"
	iconVideo    = "🎬"
	iconMockup   = "🖼️"
	iconManifest = "💾"
	iconBrowser  = "🌐"
	iconSuccess  = "✅"
	iconWarning  = "⚠️"
	iconError    = "❌"
	iconArrow    = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// statusLine formats one progress line.
func statusLine(icon, msg string) string {
	return icon + " " + msg
}

// printStatus prints a stage status line.
func printStatus(w io.Writer, icon, format string, args ...any) {
	fmt.Fprintln(w, statusLine(icon, fmt.Sprintf(format, args...)))
}

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, statusLine(iconSuccess, StyleSuccess.Render(fmt.Sprintf(format, args...))))
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, statusLine(iconError, StyleError.Render(fmt.Sprintf(format, args...))))
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, statusLine(iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...))))
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "   "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "   "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(10)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Run Summary
// =============================================================================

// summaryTable renders one row per page with its artifact counts.
func summaryTable(res *pipeline.Result) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(res.Pages))
	for _, p := range res.Pages {
		status := StyleSuccess.Render("ok")
		if p.Skipped {
			status = StyleError.Render("skipped")
		} else if len(p.Warnings) > 0 {
			status = StyleWarning.Render(pluralize(len(p.Warnings), "warning"))
		}
		rows = append(rows, []string{
			p.Path,
			strconv.Itoa(p.Sections),
			strconv.Itoa(len(p.Shots)),
			strconv.Itoa(len(p.Videos)),
			strconv.Itoa(len(p.Mockups)),
			status,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Page", "Sections", "Shots", "Videos", "Mockups", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}

// printSummary prints the run summary and the location of the manifest.
func printSummary(w io.Writer, res *pipeline.Result) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, summaryTable(res))

	var warnings []string
	for _, p := range res.Pages {
		for _, warn := range p.Warnings {
			warnings = append(warnings, p.Path+": "+warn)
		}
	}
	if len(warnings) > 0 {
		printWarning(w, "%d warnings", len(warnings))
		for _, warn := range warnings {
			printDetail(w, "%s", warn)
		}
	}

	fmt.Fprintln(w)
	printKeyValue(w, "Run", res.RunID)
	printKeyValue(w, "Manifest", res.Manifest)
	printKeyValue(w, "Duration", res.Stats.TotalTime.Round(time.Millisecond).String())
	printSuccess(w, "Captured %d of %d pages (%s)",
		res.Stats.Captured(), res.Stats.PageCount,
		pluralize(res.Stats.ShotCount, "screenshot"))
}

// pluralize formats n with a singular or plural noun.
func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

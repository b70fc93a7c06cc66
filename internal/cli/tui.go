package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
	"github.com/msgwebdev-git/goqode-sub000/pkg/store"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PageSelectModel - Interactive page selection
// =============================================================================

// PageSelectModel is the bubbletea model for choosing which discovered
// pages to capture. Every page starts checked.
type PageSelectModel struct {
	Pages     []string
	Checked   []bool
	Cursor    int
	Height    int
	Offset    int
	Confirmed bool
	Aborted   bool
}

// NewPageSelectModel creates a page list with all pages checked.
func NewPageSelectModel(pages []string) PageSelectModel {
	checked := make([]bool, len(pages))
	for i := range checked {
		checked[i] = true
	}
	return PageSelectModel{
		Pages:   pages,
		Checked: checked,
		Height:  15,
	}
}

func (m PageSelectModel) Init() tea.Cmd {
	return nil
}

func (m PageSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Pages)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Pages) > 0 {
				m.Checked[m.Cursor] = !m.Checked[m.Cursor]
			}
		case "a":
			all := m.count() < len(m.Pages)
			for i := range m.Checked {
				m.Checked[i] = all
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PageSelectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Pages"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all/none  ⏎ capture  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Pages) {
		end = len(m.Pages)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.Checked[i] {
			box = "[x]"
		}
		rows = append(rows, []string{cursor, box, m.Pages[i], store.PageName(m.Pages[i])})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Path", "Directory").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Pages) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case !m.Checked[idx]:
				return listDimStyle
			case col == 3:
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d selected", m.count(), len(m.Pages))))

	return b.String()
}

// Selection returns the checked pages in their original order.
func (m PageSelectModel) Selection() []string {
	out := make([]string, 0, m.count())
	for i, p := range m.Pages {
		if m.Checked[i] {
			out = append(out, p)
		}
	}
	return out
}

func (m PageSelectModel) count() int {
	n := 0
	for _, c := range m.Checked {
		if c {
			n++
		}
	}
	return n
}

// selectPages runs the picker on the terminal. Quitting without
// confirming is reported as INVALID_INPUT.
func selectPages(pages []string) ([]string, error) {
	final, err := tea.NewProgram(NewPageSelectModel(pages)).Run()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "page picker")
	}
	m := final.(PageSelectModel)
	if !m.Confirmed {
		return nil, errors.New(errors.ErrCodeInvalidInput, "page selection aborted")
	}
	return m.Selection(), nil
}

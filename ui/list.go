package ui

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/montrey/launchpad/pathutil"
	"github.com/montrey/launchpad/session"
)

var (
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	pathStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// ListModel draws the ranked projects of a session.View, one per row,
// scrolled so the highlighted row stays on screen.
type ListModel struct {
	Width  int
	Height int

	// ScrollOffset is the index of the first visible row.
	ScrollOffset int

	view session.View
}

func NewListModel(view session.View, width, height int) ListModel {
	m := ListModel{Width: width, Height: height}
	m.SetView(view)
	return m
}

// SetView replaces the rendered view. A new query starts again at the top.
func (m *ListModel) SetView(view session.View) {
	if view.Query != m.view.Query {
		m.ScrollOffset = 0
	}
	m.view = view
	m.clampScroll()
}

func (m *ListModel) SetSize(width, height int) {
	m.Width = width
	m.Height = height
	m.clampScroll()
}

func (m *ListModel) clampScroll() {
	if m.Height <= 0 {
		m.ScrollOffset = 0
		return
	}
	h := m.view.Highlight
	if h >= 0 {
		if h < m.ScrollOffset {
			m.ScrollOffset = h
		}
		if h >= m.ScrollOffset+m.Height {
			m.ScrollOffset = h - m.Height + 1
		}
	}
	maxOffset := max(0, len(m.view.Entries)-m.Height)
	m.ScrollOffset = max(0, min(m.ScrollOffset, maxOffset))
}

func (m ListModel) View() string {
	if len(m.view.Entries) == 0 {
		return emptyStyle.Render("no matching projects")
	}
	end := len(m.view.Entries)
	if m.Height > 0 {
		end = min(end, m.ScrollOffset+m.Height)
	}

	lines := make([]string, 0, end-m.ScrollOffset)
	for i := m.ScrollOffset; i < end; i++ {
		lines = append(lines, m.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

func (m ListModel) renderRow(i int) string {
	entry := m.view.Entries[i]

	prefix, label := "  ", entry.Label
	if i == m.view.Highlight {
		prefix, label = selectedStyle.Render("> "), selectedStyle.Render(entry.Label)
	}

	parent := pathutil.ShortenUser(filepath.Dir(entry.Candidate.Location))
	location := pathStyle.Render(parent+string(filepath.Separator)) +
		highlightMatches(entry.Candidate.RawName, entry.Positions)

	row := prefix + label + "  " + location
	if m.Width > 0 {
		row = ansi.Truncate(row, m.Width, "…")
	}
	return row
}

// highlightMatches colours the runes of name at the given rune positions.
func highlightMatches(name string, positions []int) string {
	if len(positions) == 0 {
		return pathStyle.Render(name)
	}
	matched := make(map[int]bool, len(positions))
	for _, p := range positions {
		matched[p] = true
	}

	var b strings.Builder
	for i, r := range []rune(name) {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(pathStyle.Render(string(r)))
		}
	}
	return b.String()
}

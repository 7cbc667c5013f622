package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/montrey/launchpad/search"
	"github.com/montrey/launchpad/session"
	"github.com/montrey/launchpad/ui"
)

type keyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
	Up      key.Binding
	Down    key.Binding
}

var keys = keyMap{
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Cancel:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	Up:      key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
}

// viewSink receives the controller's views. The model is copied on every
// Update, so it holds the sink by pointer.
type viewSink struct {
	view session.View
}

func (s *viewSink) render(v session.View) { s.view = v }

type model struct {
	ctrl  *session.Controller
	sink  *viewSink
	total int

	input  textinput.Model
	list   ui.ListModel
	width  int
	height int
}

// newSession wires a controller to a sink the model can read from.
func newSession(candidates []search.Candidate, ranker search.Ranker) (*session.Controller, *viewSink) {
	sink := &viewSink{}
	return session.New(candidates, ranker, sink.render), sink
}

func initialModel(ctrl *session.Controller, sink *viewSink, total int) model {
	ti := textinput.New()
	ti.Placeholder = "Search projects..."
	ti.Prompt = "❯ "
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	return model{
		ctrl:  ctrl,
		sink:  sink,
		total: total,
		input: ti,
		list:  ui.NewListModel(sink.view, 80, 20),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-lipgloss.Width(m.input.Prompt)-12)
		m.list.SetSize(msg.Width, max(1, msg.Height-3))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			_ = m.ctrl.Cancel()
		case key.Matches(msg, keys.Confirm):
			if m.sink.view.Highlight >= 0 {
				_ = m.ctrl.ActivateHighlighted()
			} else {
				_, _ = m.ctrl.Confirm()
			}
		case key.Matches(msg, keys.Up):
			_ = m.ctrl.MoveHighlight(-1)
		case key.Matches(msg, keys.Down):
			_ = m.ctrl.MoveHighlight(1)
		default:
			var cmd tea.Cmd
			oldValue := m.input.Value()
			m.input, cmd = m.input.Update(msg)
			if newValue := m.input.Value(); newValue != oldValue {
				_ = m.ctrl.QueryChanged(newValue)
			}
			m.list.SetView(m.sink.view)
			return m, cmd
		}
		m.list.SetView(m.sink.view)
		if m.ctrl.State().Terminal() {
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.ctrl.State().Terminal() {
		return ""
	}
	count := pathStyle.Render(fmt.Sprintf("%d/%d", len(m.sink.view.Entries), m.total))
	header := lipgloss.JoinHorizontal(lipgloss.Left, m.input.View(), "  ", count)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.list.View(),
		helpView(),
	)
}

var pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

func helpView() string {
	var parts []string
	for _, b := range []key.Binding{keys.Confirm, keys.Up, keys.Down, keys.Cancel} {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return pathStyle.Render(strings.Join(parts, " • "))
}

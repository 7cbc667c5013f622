// Package session holds the search state of one launcher session: the
// query, the ranked view derived from it and the final selection. The
// terminal front end only feeds it events and renders what it publishes.
package session

import (
	"errors"

	"github.com/montrey/launchpad/search"
)

type State int

const (
	StateIdle State = iota
	StateFiltering
	StateConfirmed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFiltering:
		return "filtering"
	case StateConfirmed:
		return "confirmed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session is over.
func (s State) Terminal() bool {
	return s == StateConfirmed || s == StateCancelled
}

// Outcome says what Confirm did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeHighlighted
	OutcomeSelected
)

var (
	ErrClosed      = errors.New("session already finished")
	ErrNotVisible  = errors.New("candidate is not in the visible list")
	ErrNoHighlight = errors.New("no row highlighted")
)

type Entry struct {
	Candidate search.Candidate
	Label     string
	Score     int
	Positions []int
}

// View is what a renderer draws. Entries are ordered best match first.
type View struct {
	Query     string
	State     State
	Entries   []Entry
	Highlight int // index into Entries, -1 when nothing is highlighted
}

// Renderer receives a fresh View after every change to the visible list or
// the highlight.
type Renderer func(View)

// Controller is not safe for concurrent use; drive it from one goroutine.
type Controller struct {
	candidates []search.Candidate
	ranker     search.Ranker
	render     Renderer

	state     State
	query     string
	visible   []Entry
	highlight int
	selection *search.Candidate
}

// New starts an idle session showing every candidate and publishes the
// initial view. render may be nil.
func New(candidates []search.Candidate, ranker search.Ranker, render Renderer) *Controller {
	c := &Controller{
		candidates: candidates,
		ranker:     ranker,
		render:     render,
		state:      StateIdle,
		highlight:  -1,
	}
	c.recompute()
	return c
}

func (c *Controller) State() State  { return c.state }
func (c *Controller) Query() string { return c.query }

// Selection returns the confirmed candidate, if any.
func (c *Controller) Selection() (search.Candidate, bool) {
	if c.selection == nil {
		return search.Candidate{}, false
	}
	return *c.selection, true
}

func (c *Controller) View() View {
	entries := make([]Entry, len(c.visible))
	copy(entries, c.visible)
	return View{
		Query:     c.query,
		State:     c.state,
		Entries:   entries,
		Highlight: c.highlight,
	}
}

// QueryChanged replaces the query and rebuilds the visible list.
func (c *Controller) QueryChanged(text string) error {
	if c.state.Terminal() {
		return ErrClosed
	}
	c.query = text
	if text == "" {
		c.state = StateIdle
	} else {
		c.state = StateFiltering
	}
	c.highlight = -1
	c.recompute()
	return nil
}

// Confirm selects the only visible row outright. With several rows it
// highlights the first one and waits for an explicit activation; with none
// it does nothing.
func (c *Controller) Confirm() (Outcome, error) {
	if c.state.Terminal() {
		return OutcomeNone, ErrClosed
	}
	switch len(c.visible) {
	case 0:
		return OutcomeNone, nil
	case 1:
		c.selectCandidate(c.visible[0].Candidate)
		return OutcomeSelected, nil
	default:
		c.highlight = 0
		c.publish()
		return OutcomeHighlighted, nil
	}
}

// RowActivated selects a visible candidate.
func (c *Controller) RowActivated(candidate search.Candidate) error {
	if c.state.Terminal() {
		return ErrClosed
	}
	for _, e := range c.visible {
		if e.Candidate.Location == candidate.Location {
			c.selectCandidate(e.Candidate)
			return nil
		}
	}
	return ErrNotVisible
}

// ActivateHighlighted selects the highlighted row.
func (c *Controller) ActivateHighlighted() error {
	if c.state.Terminal() {
		return ErrClosed
	}
	if c.highlight < 0 || c.highlight >= len(c.visible) {
		return ErrNoHighlight
	}
	return c.RowActivated(c.visible[c.highlight].Candidate)
}

// MoveHighlight moves the highlight by delta rows, clamped to the list.
// Without a highlight, moving down starts at the first row and moving up at
// the last.
func (c *Controller) MoveHighlight(delta int) error {
	if c.state.Terminal() {
		return ErrClosed
	}
	n := len(c.visible)
	if n == 0 || delta == 0 {
		return nil
	}

	next := c.highlight + delta
	if c.highlight < 0 {
		if delta > 0 {
			next = delta - 1
		} else {
			next = n + delta
		}
	}
	next = max(0, min(next, n-1))
	if next != c.highlight {
		c.highlight = next
		c.publish()
	}
	return nil
}

// Cancel ends the session without a selection.
func (c *Controller) Cancel() error {
	if c.state.Terminal() {
		return ErrClosed
	}
	c.state = StateCancelled
	c.highlight = -1
	c.publish()
	return nil
}

func (c *Controller) selectCandidate(candidate search.Candidate) {
	c.selection = &candidate
	c.state = StateConfirmed
	c.publish()
}

func (c *Controller) recompute() {
	results := c.ranker.Rank(c.query, c.candidates)
	c.visible = make([]Entry, len(results))
	for i, r := range results {
		c.visible[i] = Entry{
			Candidate: r.Candidate,
			Label:     r.Candidate.Label(),
			Score:     r.Score,
			Positions: r.Positions,
		}
	}
	c.publish()
}

func (c *Controller) publish() {
	if c.render != nil {
		c.render(c.View())
	}
}

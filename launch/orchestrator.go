// Package launch starts the tools for a chosen project: it switches the
// window manager workspace, sets its layout and opens a terminal, an editor
// and a browser.
package launch

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/montrey/launchpad/search"
)

type Step int

const (
	StepWorkspace Step = iota
	StepLayout
	StepTerminal
	StepEditor
	StepBrowser
)

// Steps lists every step in execution order.
var Steps = []Step{StepWorkspace, StepLayout, StepTerminal, StepEditor, StepBrowser}

func (s Step) String() string {
	switch s {
	case StepWorkspace:
		return "workspace"
	case StepLayout:
		return "layout"
	case StepTerminal:
		return "terminal"
	case StepEditor:
		return "editor"
	case StepBrowser:
		return "browser"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// rooted steps start inside the project directory.
func (s Step) rooted() bool {
	return s == StepTerminal || s == StepEditor
}

// Error reports the step that failed to start and why.
type Error struct {
	Step  Step
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("launch %s step failed: %v", e.Step, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Commands holds one command line per step.
type Commands struct {
	Workspace string
	Layout    string
	Terminal  string
	Editor    string
	Browser   string
}

// DefaultCommands targets i3 with terminator, cursor and chromium.
func DefaultCommands() Commands {
	return Commands{
		Workspace: "i3-msg workspace {label}",
		Layout:    "i3-msg layout tabbed",
		Terminal:  "terminator --working-directory {path}",
		Editor:    "cursor {path}",
		Browser:   "chromium",
	}
}

func (c Commands) line(s Step) string {
	switch s {
	case StepWorkspace:
		return c.Workspace
	case StepLayout:
		return c.Layout
	case StepTerminal:
		return c.Terminal
	case StepEditor:
		return c.Editor
	case StepBrowser:
		return c.Browser
	}
	return ""
}

// Plan is the parsed form of Commands.
type Plan struct {
	templates map[Step]Template
}

// ParsePlan parses every command line. The error names the offending step.
func ParsePlan(c Commands) (Plan, error) {
	p := Plan{templates: make(map[Step]Template, len(Steps))}
	for _, s := range Steps {
		t, err := ParseTemplate(c.line(s))
		if err != nil {
			return Plan{}, fmt.Errorf("invalid %s command: %w", s, err)
		}
		p.templates[s] = t
	}
	return p, nil
}

func (p Plan) Template(s Step) Template {
	return p.templates[s]
}

// Orchestrator runs a Plan against a candidate.
type Orchestrator struct {
	spawner Spawner
	plan    Plan
	logger  *log.Logger
}

func New(spawner Spawner, plan Plan, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{spawner: spawner, plan: plan, logger: logger}
}

// Launch starts each enabled step in order and stops at the first one that
// fails to start, returning an *Error. Processes already started keep
// running. Nothing is retried and nothing waits for a process to exit.
func (o *Orchestrator) Launch(c search.Candidate) error {
	label := c.Label()
	for _, step := range Steps {
		t := o.plan.Template(step)
		if !t.Enabled() {
			o.logger.Debug("step disabled", "step", step)
			continue
		}

		program, args := t.Expand(label, c.Location)
		dir := ""
		if step.rooted() {
			dir = c.Location
		}
		o.logger.Info("starting", "step", step, "program", program, "args", args, "dir", dir)
		if err := o.spawner.Spawn(program, args, dir); err != nil {
			o.logger.Error("step failed", "step", step, "program", program, "err", err)
			return &Error{Step: step, Cause: err}
		}
	}
	return nil
}

package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/montrey/launchpad/config"
	"github.com/montrey/launchpad/launch"
	"github.com/montrey/launchpad/logging"
	"github.com/montrey/launchpad/pathutil"
	"github.com/montrey/launchpad/search"
	"github.com/montrey/launchpad/session"
	"github.com/montrey/launchpad/store"
)

const usage = `Usage: launchpad [command] [flags]

Commands:
  projects               pick a project and launch its tools (default)
  search QUERY...        print the projects matching QUERY
  pin add|rm|ls [PATH]   manage directories always listed first
  config path|show|get|set|unset
                         inspect or override configuration

Run "launchpad <command> --help" for flags.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := "projects"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	var err error
	code := 0
	switch cmd {
	case "projects":
		code, err = runProjects(args, stdout)
	case "search":
		code, err = runSearch(args, stdout, stderr)
	case "pin":
		code, err = runPin(args, stdout)
	case "config":
		code, err = runConfig(args, stdout)
	case "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "launchpad: unknown command %q\n\n%s", cmd, usage)
		return 1
	}

	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "launchpad: %v\n", err)
		if code == 0 {
			code = 1
		}
	}
	return code
}

type globalFlags struct {
	configPath string
	dbPath     string
	algorithm  string
}

func newFlagSet(name string, g *globalFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringVar(&g.configPath, "config", "", "path to config.toml (default ~/.config/launchpad/config.toml)")
	fs.StringVar(&g.dbPath, "db", "", "path to the settings database (default ~/.local/share/launchpad/launchpad.db)")
	return fs
}

// app bundles what every command needs once flags are parsed.
type app struct {
	cfg      *config.Config
	cfgPath  string
	db       *sql.DB
	logger   *log.Logger
	closeLog func() error
}

func openApp(g globalFlags) (*app, error) {
	cfgPath := g.configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfgPath = pathutil.ExpandUser(cfgPath)
	cfg, err := config.LoadOrInit(cfgPath)
	if err != nil {
		return nil, err
	}

	dbPath := g.dbPath
	if dbPath == "" {
		dbPath = store.DefaultPath()
	}
	db, err := store.InitDB(pathutil.ExpandUser(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to init db: %w", err)
	}

	overrides, err := store.AllSettings(db)
	if err == nil {
		err = cfg.ApplyOverrides(overrides)
	}
	if err == nil && g.algorithm != "" {
		err = cfg.Apply("search.algorithm", g.algorithm)
	}
	if err != nil {
		db.Close()
		return nil, err
	}

	logger, closeLog, err := logging.Open("launchpad", cfg.Log.Level, cfg.Log.File)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &app{cfg: cfg, cfgPath: cfgPath, db: db, logger: logger, closeLog: closeLog}, nil
}

func (a *app) Close() {
	a.db.Close()
	_ = a.closeLog()
}

func (a *app) ranker() (search.Ranker, error) {
	return search.NewRanker(search.Algorithm(a.cfg.Search.Algorithm))
}

func (a *app) candidates() ([]search.Candidate, error) {
	pinned, err := store.ListPins(a.db)
	if err != nil {
		return nil, err
	}
	return search.Enumerate(search.EnumerateOptions{
		Roots:            a.cfg.Projects.Roots,
		Pins:             append(append([]string{}, a.cfg.Projects.Pins...), pinned...),
		SkipHidden:       a.cfg.Projects.SkipHidden,
		RespectGitignore: a.cfg.Projects.RespectGitignore,
		Logger:           a.logger.WithPrefix("search"),
	})
}

func (a *app) orchestrator() (*launch.Orchestrator, error) {
	plan, err := launch.ParsePlan(a.cfg.Commands())
	if err != nil {
		return nil, err
	}
	return launch.New(launch.ExecSpawner{}, plan, a.logger.WithPrefix("launch")), nil
}

// prepare loads everything a picking session needs, failing before any UI
// appears when the configuration is unusable.
func (a *app) prepare() ([]search.Candidate, search.Ranker, *launch.Orchestrator, error) {
	ranker, err := a.ranker()
	if err != nil {
		return nil, search.Ranker{}, nil, err
	}
	orch, err := a.orchestrator()
	if err != nil {
		return nil, search.Ranker{}, nil, err
	}
	candidates, err := a.candidates()
	if err != nil {
		return nil, search.Ranker{}, nil, err
	}
	return candidates, ranker, orch, nil
}

func runProjects(args []string, stdout io.Writer) (int, error) {
	var g globalFlags
	fs := newFlagSet("projects", &g)
	fs.StringVar(&g.algorithm, "algorithm", "", "ranking algorithm: fzf or sahilm")
	noLaunch := fs.Bool("no-launch", false, "print the chosen directory instead of launching tools")
	if err := fs.Parse(args); err != nil {
		return 1, err
	}

	a, err := openApp(g)
	if err != nil {
		return 1, err
	}
	defer a.Close()

	candidates, ranker, orch, err := a.prepare()
	if err != nil {
		return 1, err
	}
	a.logger.Debug("session started", "candidates", len(candidates), "algorithm", ranker.Algorithm())

	ctrl, sink := newSession(candidates, ranker)
	p := tea.NewProgram(initialModel(ctrl, sink, len(candidates)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return 1, fmt.Errorf("ui failed: %w", err)
	}

	selected, ok := ctrl.Selection()
	if !ok {
		a.logger.Debug("session cancelled")
		return 0, nil
	}
	return finish(a, orch, selected, *noLaunch, stdout)
}

// finish launches the selection, or only prints it with noLaunch.
func finish(a *app, orch *launch.Orchestrator, selected search.Candidate, noLaunch bool, stdout io.Writer) (int, error) {
	if noLaunch {
		fmt.Fprintln(stdout, selected.Location)
		return 0, nil
	}
	a.logger.Info("launching", "project", selected.Label(), "path", selected.Location)
	if err := orch.Launch(selected); err != nil {
		return 1, err
	}
	fmt.Fprintln(stdout, selected.Location)
	return 0, nil
}

type searchResult struct {
	Label string `json:"label" yaml:"label"`
	Name  string `json:"name" yaml:"name"`
	Path  string `json:"path" yaml:"path"`
	Score int    `json:"score" yaml:"score"`
}

func runSearch(args []string, stdout, stderr io.Writer) (int, error) {
	var g globalFlags
	fs := newFlagSet("search", &g)
	fs.StringVar(&g.algorithm, "algorithm", "", "ranking algorithm: fzf or sahilm")
	format := fs.StringP("format", "f", "text", "output format: text, json or yaml")
	doLaunch := fs.Bool("launch", false, "launch the project when exactly one matches")
	if err := fs.Parse(args); err != nil {
		return 1, err
	}
	switch *format {
	case "text", "json", "yaml":
	default:
		return 1, fmt.Errorf("invalid format %q", *format)
	}

	a, err := openApp(g)
	if err != nil {
		return 1, err
	}
	defer a.Close()

	candidates, ranker, orch, err := a.prepare()
	if err != nil {
		return 1, err
	}

	ctrl := session.New(candidates, ranker, nil)
	if err := ctrl.QueryChanged(strings.Join(fs.Args(), " ")); err != nil {
		return 1, err
	}
	view := ctrl.View()

	if *doLaunch {
		outcome, err := ctrl.Confirm()
		if err != nil {
			return 1, err
		}
		switch outcome {
		case session.OutcomeNone:
			return 1, errors.New("no matching project")
		case session.OutcomeHighlighted:
			fmt.Fprintf(stderr, "launchpad: %d projects match, be more specific\n", len(view.Entries))
			if err := writeResults(stderr, "text", view); err != nil {
				return 2, err
			}
			return 2, nil
		}
		selected, _ := ctrl.Selection()
		return finish(a, orch, selected, false, stdout)
	}

	if err := writeResults(stdout, *format, view); err != nil {
		return 1, err
	}
	if len(view.Entries) == 0 {
		return 1, nil
	}
	return 0, nil
}

func writeResults(w io.Writer, format string, view session.View) error {
	results := make([]searchResult, 0, len(view.Entries))
	for _, e := range view.Entries {
		results = append(results, searchResult{
			Label: e.Label,
			Name:  e.Candidate.RawName,
			Path:  e.Candidate.Location,
			Score: e.Score,
		})
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, r := range results {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", r.Label, r.Path); err != nil {
				return err
			}
		}
		return nil
	}
}

func runPin(args []string, stdout io.Writer) (int, error) {
	var g globalFlags
	fs := newFlagSet("pin", &g)
	if err := fs.Parse(args); err != nil {
		return 1, err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return 1, errors.New("usage: launchpad pin add|rm|ls [PATH]")
	}

	a, err := openApp(g)
	if err != nil {
		return 1, err
	}
	defer a.Close()

	switch rest[0] {
	case "ls", "list":
		pins, err := store.ListPins(a.db)
		if err != nil {
			return 1, err
		}
		for _, p := range pins {
			fmt.Fprintln(stdout, p)
		}
		return 0, nil
	case "add":
		target := "."
		if len(rest) > 1 {
			target = rest[1]
		}
		path, err := pathutil.Resolve(target)
		if err != nil {
			return 1, err
		}
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			return 1, fmt.Errorf("%s is not a directory", path)
		}
		if err := store.AddPin(a.db, path); err != nil {
			return 1, err
		}
		fmt.Fprintf(stdout, "Pinned %s\n", path)
		return 0, nil
	case "rm", "remove":
		if len(rest) < 2 {
			return 1, errors.New("usage: launchpad pin rm PATH")
		}
		path, err := pathutil.Resolve(rest[1])
		if err != nil {
			return 1, err
		}
		removed, err := store.RemovePin(a.db, path)
		if err != nil {
			return 1, err
		}
		if !removed {
			return 1, fmt.Errorf("%s is not pinned", path)
		}
		fmt.Fprintf(stdout, "Unpinned %s\n", path)
		return 0, nil
	default:
		return 1, fmt.Errorf("unknown pin command %q", rest[0])
	}
}

func runConfig(args []string, stdout io.Writer) (int, error) {
	var g globalFlags
	fs := newFlagSet("config", &g)
	if err := fs.Parse(args); err != nil {
		return 1, err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		rest = []string{"show"}
	}

	a, err := openApp(g)
	if err != nil {
		return 1, err
	}
	defer a.Close()

	switch rest[0] {
	case "path":
		fmt.Fprintln(stdout, a.cfgPath)
	case "show":
		fmt.Fprintf(stdout, "projects.roots = %q\n", a.cfg.Projects.Roots)
		fmt.Fprintf(stdout, "projects.pins = %q\n", a.cfg.Projects.Pins)
		for _, k := range config.Keys() {
			v, _ := a.cfg.Get(k)
			_, stored, err := store.GetSetting(a.db, k)
			if err != nil {
				return 1, err
			}
			if stored {
				fmt.Fprintf(stdout, "%s = %q  # config set\n", k, v)
			} else {
				fmt.Fprintf(stdout, "%s = %q\n", k, v)
			}
		}
	case "get":
		if len(rest) != 2 {
			return 1, errors.New("usage: launchpad config get KEY")
		}
		v, err := a.cfg.Get(rest[1])
		if err != nil {
			return 1, err
		}
		fmt.Fprintln(stdout, v)
	case "set":
		if len(rest) != 3 {
			return 1, errors.New("usage: launchpad config set KEY VALUE")
		}
		key, value := strings.ToLower(rest[1]), rest[2]
		if err := a.cfg.Apply(key, value); err != nil {
			return 1, err
		}
		if err := validate(a.cfg); err != nil {
			return 1, err
		}
		if err := store.SetSetting(a.db, key, value); err != nil {
			return 1, err
		}
	case "unset":
		if len(rest) != 2 {
			return 1, errors.New("usage: launchpad config unset KEY")
		}
		if err := store.DeleteSetting(a.db, strings.ToLower(rest[1])); err != nil {
			return 1, err
		}
	default:
		return 1, fmt.Errorf("unknown config command %q", rest[0])
	}
	return 0, nil
}

// validate rejects values that would only fail once a session starts.
func validate(cfg *config.Config) error {
	if _, err := search.NewRanker(search.Algorithm(cfg.Search.Algorithm)); err != nil {
		return err
	}
	_, err := launch.ParsePlan(cfg.Commands())
	return err
}

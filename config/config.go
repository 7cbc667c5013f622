/*
Package config manages the TOML configuration of launchpad.

Values are layered: built-in defaults, then the config file, then overrides
stored with "launchpad config set", then command line flags.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/montrey/launchpad/launch"
	"github.com/montrey/launchpad/pathutil"
)

// Config holds the entire config structure
type Config struct {
	Projects ProjectsConfig `toml:"projects"`
	Search   SearchConfig   `toml:"search"`
	Launch   LaunchConfig   `toml:"launch"`
	Log      LogConfig      `toml:"log"`
}

// ProjectsConfig says where candidate projects come from.
type ProjectsConfig struct {
	Roots            []string `toml:"roots"`
	Pins             []string `toml:"pins"`
	SkipHidden       bool     `toml:"skip_hidden"`
	RespectGitignore bool     `toml:"respect_gitignore"`
}

type SearchConfig struct {
	Algorithm string `toml:"algorithm"`
}

// LaunchConfig has one command line per launch step. {label} and {path}
// are replaced with the project's label and directory.
type LaunchConfig struct {
	Workspace string `toml:"workspace"`
	Layout    string `toml:"layout"`
	Terminal  string `toml:"terminal"`
	Editor    string `toml:"editor"`
	Browser   string `toml:"browser"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

var ErrUnknownKey = errors.New("unknown config key")

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Projects: ProjectsConfig{
			Roots:            []string{"~/dev"},
			Pins:             []string{"~/owl"},
			SkipHidden:       true,
			RespectGitignore: true,
		},
		Search: SearchConfig{
			Algorithm: "fzf",
		},
		Launch: LaunchConfig(launch.DefaultCommands()),
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DefaultPath returns ~/.config/launchpad/config.toml.
func DefaultPath() string {
	return filepath.Join(pathutil.ExpandUser("~"), ".config", "launchpad", "config.toml")
}

// Load reads a TOML file over the defaults. Keys the file sets replace the
// defaults; everything else keeps its default value.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Warn("ignoring unknown config key", "key", key.String(), "file", path)
	}
	return cfg, nil
}

// LoadOrInit loads the config at path, writing the defaults there first if
// the file does not exist.
func LoadOrInit(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := Save(cfg, path); err != nil {
			log.Warn("could not write default config, using built-in defaults", "path", path, "err", err)
			return cfg, nil
		}
		log.Debug("created default config", "path", path)
		return cfg, nil
	}
	return Load(path)
}

// Save writes cfg as TOML, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()
	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Commands converts the launch section for the launch package.
func (c *Config) Commands() launch.Commands {
	return launch.Commands(c.Launch)
}

type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringField(ptr func(c *Config) *string) field {
	return field{
		get: func(c *Config) string { return *ptr(c) },
		set: func(c *Config, v string) error { *ptr(c) = v; return nil },
	}
}

func boolField(ptr func(c *Config) *bool) field {
	return field{
		get: func(c *Config) string { return strconv.FormatBool(*ptr(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("expected true or false, got %q", v)
			}
			*ptr(c) = b
			return nil
		},
	}
}

var fields = map[string]field{
	"projects.skip_hidden":       boolField(func(c *Config) *bool { return &c.Projects.SkipHidden }),
	"projects.respect_gitignore": boolField(func(c *Config) *bool { return &c.Projects.RespectGitignore }),
	"search.algorithm":           stringField(func(c *Config) *string { return &c.Search.Algorithm }),
	"launch.workspace":           stringField(func(c *Config) *string { return &c.Launch.Workspace }),
	"launch.layout":              stringField(func(c *Config) *string { return &c.Launch.Layout }),
	"launch.terminal":            stringField(func(c *Config) *string { return &c.Launch.Terminal }),
	"launch.editor":              stringField(func(c *Config) *string { return &c.Launch.Editor }),
	"launch.browser":             stringField(func(c *Config) *string { return &c.Launch.Browser }),
	"log.level":                  stringField(func(c *Config) *string { return &c.Log.Level }),
	"log.file":                   stringField(func(c *Config) *string { return &c.Log.File }),
}

// Keys lists the keys accepted by Get and Apply, sorted.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a dotted key such as "launch.terminal".
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[strings.ToLower(key)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Apply sets a dotted key from its string form.
func (c *Config) Apply(key, value string) error {
	f, ok := fields[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if err := f.set(c, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

// ApplyOverrides applies stored overrides. Unknown keys are skipped with a
// warning so a stale database never blocks startup.
func (c *Config) ApplyOverrides(overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		err := c.Apply(k, overrides[k])
		if errors.Is(err, ErrUnknownKey) {
			log.Warn("ignoring stored override", "key", k)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

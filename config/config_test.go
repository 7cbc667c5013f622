package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/montrey/launchpad/launch"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !reflect.DeepEqual(cfg.Projects.Roots, []string{"~/dev"}) {
		t.Errorf("roots = %v", cfg.Projects.Roots)
	}
	if !reflect.DeepEqual(cfg.Projects.Pins, []string{"~/owl"}) {
		t.Errorf("pins = %v", cfg.Projects.Pins)
	}
	if cfg.Search.Algorithm != "fzf" {
		t.Errorf("algorithm = %q", cfg.Search.Algorithm)
	}
	if cfg.Commands() != launch.DefaultCommands() {
		t.Errorf("launch commands = %+v", cfg.Commands())
	}
	if _, err := launch.ParsePlan(cfg.Commands()); err != nil {
		t.Errorf("default commands do not parse: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[projects]
roots = ["~/src", "/srv/work"]

[launch]
terminal = "alacritty --working-directory {path}"
browser = ""

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg.Projects.Roots, []string{"~/src", "/srv/work"}) {
		t.Errorf("roots = %v", cfg.Projects.Roots)
	}
	if !cfg.Projects.SkipHidden {
		t.Error("unset skip_hidden lost its default")
	}
	if cfg.Launch.Terminal != "alacritty --working-directory {path}" {
		t.Errorf("terminal = %q", cfg.Launch.Terminal)
	}
	if cfg.Launch.Browser != "" {
		t.Errorf("browser = %q, want disabled", cfg.Launch.Browser)
	}
	if cfg.Launch.Editor != launch.DefaultCommands().Editor {
		t.Errorf("editor = %q, want default", cfg.Launch.Editor)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[projects\nroots = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadOrInitCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launchpad", "config.toml")
	cfg, err := LoadOrInit(path)
	if err != nil {
		t.Fatalf("LoadOrInit failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load of written defaults failed: %v", err)
	}
	if !reflect.DeepEqual(reloaded, DefaultConfig()) {
		t.Errorf("written defaults do not round trip: %+v", reloaded)
	}
}

func TestApplyAndGet(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Apply("launch.editor", "code {path}"); err != nil {
		t.Fatal(err)
	}
	if got, _ := cfg.Get("launch.editor"); got != "code {path}" {
		t.Errorf("launch.editor = %q", got)
	}

	if err := cfg.Apply("projects.skip_hidden", "false"); err != nil {
		t.Fatal(err)
	}
	if cfg.Projects.SkipHidden {
		t.Error("skip_hidden not applied")
	}
	if err := cfg.Apply("projects.skip_hidden", "maybe"); err == nil {
		t.Error("expected bool parse error")
	}

	if err := cfg.Apply("launch.shell", "zsh"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
	if _, err := cfg.Get("nope"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyOverrides(map[string]string{
		"search.algorithm": "sahilm",
		"stale.key":        "x",
	})
	if err != nil {
		t.Fatalf("ApplyOverrides failed: %v", err)
	}
	if cfg.Search.Algorithm != "sahilm" {
		t.Errorf("algorithm = %q", cfg.Search.Algorithm)
	}

	if err := cfg.ApplyOverrides(map[string]string{"log.file": "/tmp/x", "projects.respect_gitignore": "nah"}); err == nil {
		t.Error("expected invalid value error")
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	if len(keys) != len(fields) {
		t.Fatalf("Keys() = %v", keys)
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Errorf("keys not sorted: %v", keys)
		}
	}
}

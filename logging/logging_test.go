package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		" warn ":  log.WarnLevel,
		"error":   log.ErrorLevel,
		"verbose": log.WarnLevel,
		"":        log.WarnLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("launch", &buf, log.InfoLevel)
	logger.Debug("hidden")
	logger.Info("starting", "step", "terminal")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "starting") || !strings.Contains(out, "step=terminal") || !strings.Contains(out, "launch") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestOpenAppends(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "launchpad.log")
	for i := 0; i < 2; i++ {
		logger, closeFn, err := Open("test", "info", file)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		logger.Info("hello")
		if err := closeFn(); err != nil {
			t.Fatal(err)
		}
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "hello"); n != 2 {
		t.Errorf("expected 2 lines, got %d in %q", n, data)
	}
}

// Package logging builds the charmbracelet/log loggers used across launchpad.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/montrey/launchpad/pathutil"
)

// New creates a charm logger writing to w.
func New(prefix string, w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
	})
}

// ParseLevel maps debug, info, warn and error to a level. Anything else
// yields warn.
func ParseLevel(s string) log.Level {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// DefaultFile returns ~/.local/share/launchpad/launchpad.log.
func DefaultFile() string {
	return filepath.Join(pathutil.ExpandUser("~"), ".local", "share", "launchpad", "launchpad.log")
}

// Open returns a logger appending to file (DefaultFile when empty). The
// terminal belongs to the UI while it runs, so logs never go to stderr.
// The returned function closes the file.
func Open(prefix, level, file string) (*log.Logger, func() error, error) {
	if file == "" {
		file = DefaultFile()
	}
	file = pathutil.ExpandUser(file)
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(prefix, f, ParseLevel(level)), f.Close, nil
}

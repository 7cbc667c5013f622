package search

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/monochromegane/go-gitignore"

	"github.com/montrey/launchpad/pathutil"
)

type EnumerateOptions struct {
	Roots            []string // directories whose immediate subdirectories are projects
	Pins             []string // directories listed before any root entry
	SkipHidden       bool
	RespectGitignore bool
	Logger           *log.Logger
}

// Enumerate lists the candidate projects: pins first, then the
// subdirectories of each root in name order. Paths are de-duplicated after
// resolving ~ and making them absolute. Roots and pins that do not exist
// are skipped.
func Enumerate(opts EnumerateOptions) ([]Candidate, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	seen := make(map[string]bool)
	var out []Candidate
	add := func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		out = append(out, NewCandidate(path))
	}

	for _, pin := range opts.Pins {
		path, err := pathutil.Resolve(pin)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve pin %q: %w", pin, err)
		}
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			logger.Debug("skipping pin", "path", path, "err", err)
			continue
		}
		add(path)
	}

	for _, root := range opts.Roots {
		dir, err := pathutil.Resolve(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
		}
		entries, err := listRoot(dir, opts)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("skipping missing root", "path", dir)
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, path := range entries {
			add(path)
		}
	}

	logger.Debug("enumerated projects", "count", len(out))
	return out, nil
}

func listRoot(root string, opts EnumerateOptions) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read root %s: %w", root, err)
	}

	var ignoreMatcher gitignore.IgnoreMatcher
	if opts.RespectGitignore {
		gitignorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitignorePath); err == nil {
			ignoreMatcher, _ = gitignore.NewGitIgnore(gitignorePath)
		}
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(root, name)
		if !isDir(path, entry) {
			continue
		}
		if opts.SkipHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if ignoreMatcher != nil && ignoreMatcher.Match(path, true) {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// isDir follows symlinks so linked project directories are listed too.
func isDir(path string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

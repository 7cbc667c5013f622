// Package pathutil converts between user-facing paths ("~/dev") and
// absolute ones.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandUser expands a leading ~ to the current user's home directory.
func ExpandUser(path string) string {
	if path == "" || !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Resolve expands ~ and makes path absolute and clean.
func Resolve(path string) (string, error) {
	abs, err := filepath.Abs(ExpandUser(path))
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// ShortenUser replaces the home directory prefix with ~.
func ShortenUser(path string) string {
	if path == "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(filepath.Separator)) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}

package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandUser(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/dev", filepath.Join(home, "dev")},
		{"~/a/b", filepath.Join(home, "a", "b")},
		{"/srv/projects", "/srv/projects"},
		{"rel/dir", "rel/dir"},
		{"~other/dev", "~other/dev"},
	}
	for _, tt := range tests {
		if got := ExpandUser(tt.path); got != tt.want {
			t.Errorf("ExpandUser(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestShortenUser(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{home, "~"},
		{filepath.Join(home, "dev", "navi"), "~/dev/navi"},
		{"/usr/local", "/usr/local"},
		{home + "sick", home + "sick"},
	}
	for _, tt := range tests {
		if got := ShortenUser(tt.path); got != tt.want {
			t.Errorf("ShortenUser(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	got, err := Resolve(filepath.Join(dir, "a", "..", "b"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != filepath.Join(dir, "b") {
		t.Errorf("Resolve = %q, want %q", got, filepath.Join(dir, "b"))
	}
}

package launch

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		line    string
		program string
		args    []string
	}{
		{"chromium", "chromium", []string{}},
		{"i3-msg workspace {label}", "i3-msg", []string{"workspace", "{label}"}},
		{`alacritty --working-directory "{path}" -e "nvim ."`, "alacritty", []string{"--working-directory", "{path}", "-e", "nvim ."}},
		{"", "", nil},
		{"   ", "", nil},
	}
	for _, tt := range tests {
		got, err := ParseTemplate(tt.line)
		if err != nil {
			t.Fatalf("ParseTemplate(%q) failed: %v", tt.line, err)
		}
		if got.Program != tt.program || !reflect.DeepEqual(got.Args, tt.args) {
			t.Errorf("ParseTemplate(%q) = %+v", tt.line, got)
		}
		if got.Enabled() != (tt.program != "") {
			t.Errorf("Enabled() = %v for %q", got.Enabled(), tt.line)
		}
	}
}

func TestParseTemplateErrors(t *testing.T) {
	if _, err := ParseTemplate(`vim "oops`); err == nil {
		t.Error("expected unterminated quote error")
	}
	if _, err := ParseTemplate(`''`); !errors.Is(err, ErrEmptyTemplate) {
		t.Errorf("expected ErrEmptyTemplate, got %v", err)
	}
}

func TestExpandKeepsValuesWhole(t *testing.T) {
	tmpl, err := ParseTemplate("i3-msg workspace {label} --dir={path}")
	if err != nil {
		t.Fatal(err)
	}
	program, args := tmpl.Expand("My Cool Project", "/home/me/my dir")
	if program != "i3-msg" {
		t.Errorf("program = %q", program)
	}
	want := []string{"workspace", "My Cool Project", "--dir=/home/me/my dir"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %q, want %q", args, want)
	}
}

package search

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"dash and underscore", "my-cool_Project", "My Cool Project"},
		{"camel case", "fooBarBaz", "Foo Bar Baz"},
		{"already spaced", "hello world", "Hello World"},
		{"empty", "", ""},
		{"only separators", "-_-", ""},
		{"collapses repeated separators", "a--b__c", "A B C"},
		{"acronym is flattened", "myHTTPServer", "My Httpserver"},
		{"all caps word", "README", "Readme"},
		{"digits stay put", "go1_22-beta", "Go1 22 Beta"},
		{"leading capital", "Navi", "Navi"},
		{"unicode word", "élan-vital", "Élan Vital"},
		{"dotted name", "dotfiles.nix", "Dotfiles.nix"},
		{"case maps rune for rune", "ΟΔΟΣ", "Οδοσ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	inputs := []string{"", "a", "fooBar", "x_y-z", "ABC_def", "  spaced  out  "}
	for _, in := range inputs {
		first := Normalize(in)
		for i := 0; i < 3; i++ {
			if got := Normalize(in); got != first {
				t.Fatalf("Normalize(%q) changed between calls: %q vs %q", in, first, got)
			}
		}
	}
}

func TestNormalizeFlattensAcronyms(t *testing.T) {
	if got := Normalize("fooBAR"); got != "Foo Bar" {
		t.Errorf("Normalize(fooBAR) = %q", got)
	}
	if got := Normalize("xmlHTTPRequest"); got != "Xml Httprequest" {
		t.Errorf("Normalize(xmlHTTPRequest) = %q", got)
	}
}

func TestCandidateLabel(t *testing.T) {
	a := NewCandidate("/home/me/dev/my-cool_Project")
	b := Candidate{RawName: "my-cool_Project", Location: "/elsewhere/my-cool_Project"}
	if a.RawName != "my-cool_Project" {
		t.Fatalf("RawName = %q", a.RawName)
	}
	if a.Label() != b.Label() || a.Label() != "My Cool Project" {
		t.Errorf("labels differ: %q vs %q", a.Label(), b.Label())
	}
}

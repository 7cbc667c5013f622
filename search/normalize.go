package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// Normalize turns a directory name into a human readable label:
// "my-cool_Project" becomes "My Cool Project" and "fooBarBaz" becomes
// "Foo Bar Baz".
//
// Every word keeps only its first letter upper case, so runs of capitals
// collapse ("myHTTPServer" becomes "My Httpserver"). Matching and workspace
// names rely on exactly one pass; do not feed labels back through it.
//
// Case mapping is rune for rune: "ß" stays "ß" when it starts a word and a
// final sigma lowers to "σ", not "ς".
func Normalize(raw string) string {
	spaced := strings.NewReplacer("-", " ", "_", " ").Replace(raw)
	spaced = camelBoundary.ReplaceAllString(spaced, "$1 $2")

	words := strings.Fields(spaced)
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = strings.ToUpper(string(first)) + strings.ToLower(word[size:])
	}
	return strings.Join(words, " ")
}

package search

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
	"github.com/sahilm/fuzzy"
)

// Candidate is one launchable project directory.
type Candidate struct {
	RawName  string // last path segment
	Location string // full path handed to the launched tools
}

// NewCandidate builds a candidate from a directory path.
func NewCandidate(path string) Candidate {
	clean := filepath.Clean(path)
	return Candidate{RawName: filepath.Base(clean), Location: clean}
}

// Label is the display name of the candidate.
func (c Candidate) Label() string {
	return Normalize(c.RawName)
}

type Result struct {
	Candidate Candidate
	Score     int
	Positions []int // rune indexes of matched characters in RawName
	Index     int   // position of the candidate in the ranked input
}

// Algorithm selects the scoring function used by a Ranker.
type Algorithm string

const (
	AlgorithmFzf    Algorithm = "fzf"
	AlgorithmSahilm Algorithm = "sahilm"
)

var ErrUnknownAlgorithm = errors.New("unknown ranking algorithm")

type matchFunc func(query string, candidates []Candidate) []Result

// Ranker filters and orders candidates against a query. The zero value
// ranks with fzf.
type Ranker struct {
	algorithm Algorithm
	match     matchFunc
}

// NewRanker returns a ranker for the named algorithm. An empty name selects
// the default.
func NewRanker(alg Algorithm) (Ranker, error) {
	switch alg {
	case "", AlgorithmFzf:
		return Ranker{algorithm: AlgorithmFzf, match: matchFzf}, nil
	case AlgorithmSahilm:
		return Ranker{algorithm: AlgorithmSahilm, match: matchSahilm}, nil
	default:
		return Ranker{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
}

func (r Ranker) Algorithm() Algorithm {
	if r.algorithm == "" {
		return AlgorithmFzf
	}
	return r.algorithm
}

// Rank keeps the candidates whose raw name contains query as an ordered
// subsequence, best score first. Equal scores keep input order, so the same
// input always yields the same output. An empty query keeps everything in
// input order.
func (r Ranker) Rank(query string, candidates []Candidate) []Result {
	if query == "" {
		results := make([]Result, len(candidates))
		for i, c := range candidates {
			results[i] = Result{Candidate: c, Index: i}
		}
		return results
	}

	match := r.match
	if match == nil {
		match = matchFzf
	}
	results := match(query, candidates)
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})
	return results
}

// Rank ranks with the default algorithm.
func Rank(query string, candidates []Candidate) []Result {
	return Ranker{}.Rank(query, candidates)
}

const (
	slab16Size = 100 * 1024
	slab32Size = 2048
)

var fzfInit sync.Once

// matchFzf scores with fzf's V2 algorithm. Matching is case-insensitive
// unless the query has an upper-case letter.
func matchFzf(query string, candidates []Candidate) []Result {
	fzfInit.Do(func() { algo.Init("default") })

	caseSensitive := hasUpper(query)
	pattern := []rune(query)
	if !caseSensitive {
		pattern = []rune(strings.ToLower(query))
	}
	slab := util.MakeSlab(slab16Size, slab32Size)

	var results []Result
	for i, c := range candidates {
		chars := util.ToChars([]byte(c.RawName))
		res, pos := algo.FuzzyMatchV2(caseSensitive, false, true, &chars, pattern, true, slab)
		if res.Start < 0 {
			continue
		}
		var positions []int
		if pos != nil {
			positions = append(positions, *pos...)
			sort.Ints(positions)
		}
		results = append(results, Result{
			Candidate: c,
			Score:     res.Score,
			Positions: positions,
			Index:     i,
		})
	}
	return results
}

type rawNames []Candidate

func (r rawNames) String(i int) string { return r[i].RawName }
func (r rawNames) Len() int            { return len(r) }

// matchSahilm scores with sahilm/fuzzy, which favours matches at word
// boundaries and after separators.
func matchSahilm(query string, candidates []Candidate) []Result {
	matches := fuzzy.FindFrom(query, rawNames(candidates))

	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		c := candidates[m.Index]
		results = append(results, Result{
			Candidate: c,
			Score:     m.Score,
			Positions: runeIndexes(c.RawName, m.MatchedIndexes),
			Index:     m.Index,
		})
	}
	return results
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// runeIndexes converts byte offsets into s to rune offsets.
func runeIndexes(s string, byteIdx []int) []int {
	if len(byteIdx) == 0 {
		return nil
	}
	out := make([]int, 0, len(byteIdx))
	for _, b := range byteIdx {
		if b > len(s) {
			b = len(s)
		}
		out = append(out, utf8.RuneCountInString(s[:b]))
	}
	return out
}

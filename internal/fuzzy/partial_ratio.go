// Package fuzzy implements the approximate string matching used to rank
// repositories against a search query.
package fuzzy

import (
	"math"

	"github.com/pmezard/go-difflib/difflib"
)

// Scorer rates how well two strings match on a 0..100 scale.
type Scorer interface {
	Score(a, b string) int
}

// PartialRatioScorer scores with PartialRatio.
type PartialRatioScorer struct{}

func (PartialRatioScorer) Score(a, b string) int {
	return PartialRatio(a, b)
}

// PartialRatio returns the similarity of the shorter string to the best
// aligned window of the longer one, as an integer between 0 and 100.
// A string contained in the other scores 100. Empty input scores 0.
//
// Every window of the longer string as wide as the shorter one is rated with
// the difflib SequenceMatcher ratio (2*M/T), including the windows cut short
// by either end of the longer string.
func PartialRatio(a, b string) int {
	s1, s2 := runes(a), runes(b)
	if len(s1) == 0 || len(s2) == 0 {
		return 0
	}

	shorter, longer := s1, s2
	if len(s1) > len(s2) {
		shorter, longer = s2, s1
	}

	n, m := len(shorter), len(longer)
	best := 0.0
	for offset := 1 - n; offset < m; offset++ {
		start, end := max(offset, 0), min(offset+n, m)

		r := difflib.NewMatcher(shorter, longer[start:end]).Ratio()
		if r > 0.995 {
			return 100
		}
		best = max(best, r)
	}
	return int(math.RoundToEven(100 * best))
}

// runes splits s into one-character elements so that difflib compares
// characters rather than lines.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

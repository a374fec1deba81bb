package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartialRatio(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     string
		expected int
	}{
		{name: "identical strings", a: "alice/toolkit", b: "alice/toolkit", expected: 100},
		{name: "query contained in name", a: "alice/toolkit", b: "toolkit", expected: 100},
		{name: "name contained in query", a: "YANKEES", b: "NEW YORK YANKEES", expected: 100},
		{name: "shared prefix scored on edge window", a: "NEW YORK METS", b: "NEW YORK YANKEES", expected: 82},
		{name: "repeated substring in name", a: "kubernetes/kubernetes", b: "te/skuber", expected: 89},
		{name: "transposed characters", a: "hashicorp/terraform", b: "terrafrom", expected: 89},
		{name: "no characters in common", a: "alice/toolkit", b: "zzzzz", expected: 0},
		{name: "case sensitive", a: "abc", b: "ABC", expected: 0},
		{name: "empty query", a: "alice/toolkit", b: "", expected: 0},
		{name: "both empty", a: "", b: "", expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PartialRatio(tc.a, tc.b))
		})
	}
}

func TestPartialRatio_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"NEW YORK METS", "NEW YORK YANKEES"},
		{"bob/repo", "rep"},
		{"golang/go", "gopher"},
	}
	for _, p := range pairs {
		assert.Equal(t, PartialRatio(p[0], p[1]), PartialRatio(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestPartialRatioScorer(t *testing.T) {
	var s Scorer = PartialRatioScorer{}
	assert.Equal(t, 100, s.Score("alice/toolkit", "toolkit"))
}

package core

import (
	"cmp"
	"slices"
	"strings"
)

// ScoredLocation pairs a location with its relevance to a query.
// The location is shared with the catalog and is never modified by scoring.
type ScoredLocation struct {
	Location *Location
	Score    float64
}

// CompareScored orders results by descending score.
// Exact ties fall back to ascending location name and then ID, so the
// resulting order is total and repeatable.
func CompareScored(a, b *ScoredLocation) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := strings.Compare(a.Location.Name(), b.Location.Name()); c != 0 {
		return c
	}
	return cmp.Compare(a.Location.ID(), b.Location.ID())
}

// SortScored sorts results in place using CompareScored.
func SortScored(results []*ScoredLocation) {
	slices.SortFunc(results, CompareScored)
}

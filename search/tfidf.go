package search

import (
	"math"

	"github.com/poiesic/wayfarer/core"
)

// TermFrequency returns the share of loc's endorsements that went to p.
// A location with no endorsements at all has a term frequency of zero.
func TermFrequency(loc *core.Location, p core.Passion) float64 {
	endorsements, total := loc.Counts(p)
	if total == 0 {
		return 0
	}
	return float64(endorsements) / float64(total)
}

// InverseDocumentFrequency returns ln(N / nt) for p, where N is the catalog
// size and nt the number of locations indexed under p. A passion indexed for
// every location scores exactly zero. Passions with no index entry return an
// UnknownPassionError.
func (r *Recommender) InverseDocumentFrequency(p core.Passion) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.index[p]; !ok {
		return 0, &UnknownPassionError{Passion: p}
	}
	return r.idf(p), nil
}

// TFIDF scores each location against the query: the sum over query passions
// of tf * idf. Scores are summed, not averaged, so longer queries are not
// normalized against shorter ones; a passion listed twice counts twice.
// Results are returned in input order, unsorted.
func (r *Recommender) TFIDF(locations []*core.Location, passions []core.Passion) []*core.ScoredLocation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tfIdf(locations, passions, &noopMonitor{})
}

// tfIdf does the scoring for TFIDF and Search.
// Must be called with a lock held.
func (r *Recommender) tfIdf(locations []*core.Location, passions []core.Passion, monitor SearchMonitor) []*core.ScoredLocation {
	idfs := make([]float64, len(passions))
	for i, p := range passions {
		idfs[i] = r.idf(p)
	}

	results := make([]*core.ScoredLocation, 0, len(locations))
	for _, loc := range locations {
		result := &core.ScoredLocation{Location: loc}

		// Only reachable when the index lists a location it should not
		if loc.TotalEndorsements() == 0 {
			monitor.DegenerateLocation(loc)
		}

		for i, p := range passions {
			result.Score += TermFrequency(loc, p) * idfs[i]
		}

		monitor.Scored(result)
		results = append(results, result)
	}

	return results
}

// idf computes ln(N / nt) without locking.
// Empty catalogs and empty index entries score zero.
func (r *Recommender) idf(p core.Passion) float64 {
	n := len(r.locations)
	nt := len(r.index[p])
	if n == 0 || nt == 0 {
		return 0
	}
	return math.Log(float64(n) / float64(nt))
}

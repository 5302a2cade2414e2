// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import (
	"maps"
	"slices"

	"github.com/poiesic/wayfarer/core"
)

// Search returns the catalog locations endorsed for every passion in the
// query, ranked by descending TF-IDF score.
func (r *Recommender) Search(passions []core.Passion) ([]*core.ScoredLocation, error) {
	return r.SearchWithMonitor(passions, nil)
}

// SearchWithMonitor searches like Search, reporting each stage to monitor.
// Either the full ranked list or an error is returned, never a partial result.
func (r *Recommender) SearchWithMonitor(passions []core.Passion, monitor SearchMonitor) ([]*core.ScoredLocation, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(passions)

	if len(passions) == 0 {
		monitor.Failed(ErrEmptyQuery)
		return nil, ErrEmptyQuery
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// 1. Intersect the index entries of every query passion
	candidates, err := r.candidates(passions, monitor)
	if err != nil {
		monitor.Failed(err)
		return nil, err
	}

	// 2. Score the survivors
	results := r.tfIdf(candidates, passions, monitor)

	// 3. Rank
	core.SortScored(results)
	if r.maxResults > 0 && len(results) > r.maxResults {
		results = results[:r.maxResults]
	}

	r.logger.Debug("search complete", "query", passions, "candidates", len(candidates), "results", len(results))
	monitor.Finish(results)

	return results, nil
}

// candidates returns the locations indexed under every query passion.
// Every passion must have an index entry; the first one that does not is
// reported as an UnknownPassionError before any intersection is done.
// Must be called with a lock held.
func (r *Recommender) candidates(passions []core.Passion, monitor SearchMonitor) ([]*core.Location, error) {
	for _, p := range passions {
		if _, ok := r.index[p]; !ok {
			return nil, &UnknownPassionError{Passion: p}
		}
	}

	survivors := maps.Clone(r.index[passions[0]])
	monitor.AfterCandidateSelection(passions[0], len(survivors))

	for _, p := range passions[1:] {
		entry := r.index[p]
		maps.DeleteFunc(survivors, func(id core.ID, _ *core.Location) bool {
			_, ok := entry[id]
			return !ok
		})
		monitor.AfterCandidateSelection(p, len(survivors))
	}

	return slices.Collect(maps.Values(survivors)), nil
}

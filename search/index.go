package search

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/poiesic/wayfarer/core"
)

// IndexPassion records that the given catalog locations endorse p.
// The index entry for p is created even when no locations are given.
// Endorsement counts are not checked: callers that build the index
// themselves are responsible for keeping it consistent with the catalog
// (see Verify). Locations outside the catalog are rejected with
// ErrLocationNotInCatalog and nothing is indexed.
func (r *Recommender) IndexPassion(p core.Passion, locations ...*core.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, loc := range locations {
		if !r.inCatalog(loc) {
			return fmt.Errorf("%w: indexing %q for %q", ErrLocationNotInCatalog, locationName(loc), p.Name())
		}
	}

	entry := r.entry(p)
	for _, loc := range locations {
		entry[loc.ID()] = loc
	}
	return nil
}

// Endorse endorses a catalog location for p and keeps the index exact:
// once the location has a positive count for p it is indexed under p.
// The endorsement is serialized with searches.
func (r *Recommender) Endorse(loc *core.Location, p core.Passion, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inCatalog(loc) {
		return fmt.Errorf("%w: endorsing %q", ErrLocationNotInCatalog, locationName(loc))
	}

	if err := loc.Endorse(p, amount); err != nil {
		return err
	}

	if loc.EndorsementFor(p) > 0 {
		r.entry(p)[loc.ID()] = loc
	}
	return nil
}

// Reindex rebuilds the whole index from the catalog: every passion maps to
// exactly the locations with a positive endorsement count for it.
// Passions whose entries end up empty are dropped.
func (r *Recommender) Reindex() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.index = r.derivedIndex()
	r.logger.Debug("rebuilt passion index", "passions", len(r.index), "locations", len(r.locations))
}

// Verify checks that every index entry holds exactly the catalog locations
// with a positive endorsement count for its passion. The first mismatch, in
// passion and location name order, is reported as ErrInconsistentIndex.
func (r *Recommender) Verify() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := r.derivedIndex()

	passions := slices.Collect(maps.Keys(r.index))
	for p := range want {
		if _, ok := r.index[p]; !ok {
			passions = append(passions, p)
		}
	}
	slices.SortFunc(passions, func(a, b core.Passion) int {
		return strings.Compare(a.Name(), b.Name())
	})

	for _, p := range passions {
		have, expected := r.index[p], want[p]
		for _, loc := range sortedLocations(have) {
			if !r.inCatalog(loc) {
				return fmt.Errorf("%w: %q indexed for %q is not in the catalog", ErrInconsistentIndex, loc.Name(), p.Name())
			}
			if _, ok := expected[loc.ID()]; !ok {
				return fmt.Errorf("%w: %q indexed for %q without endorsements", ErrInconsistentIndex, loc.Name(), p.Name())
			}
		}
		for _, loc := range sortedLocations(expected) {
			if _, ok := have[loc.ID()]; !ok {
				return fmt.Errorf("%w: %q endorses %q but is not indexed", ErrInconsistentIndex, loc.Name(), p.Name())
			}
		}
	}
	return nil
}

// entry returns the index entry for p, creating it if needed.
// Must be called with the write lock held.
func (r *Recommender) entry(p core.Passion) map[core.ID]*core.Location {
	entry, ok := r.index[p]
	if !ok {
		entry = make(map[core.ID]*core.Location)
		r.index[p] = entry
	}
	return entry
}

// derivedIndex computes the index implied by the catalog's endorsements.
// Must be called with a lock held.
func (r *Recommender) derivedIndex() map[core.Passion]map[core.ID]*core.Location {
	index := make(map[core.Passion]map[core.ID]*core.Location)
	for _, loc := range r.locations {
		for p, count := range loc.Endorsements() {
			if count <= 0 {
				continue
			}
			entry, ok := index[p]
			if !ok {
				entry = make(map[core.ID]*core.Location)
				index[p] = entry
			}
			entry[loc.ID()] = loc
		}
	}
	return index
}

func locationName(loc *core.Location) string {
	if loc == nil {
		return "<nil>"
	}
	return loc.Name()
}

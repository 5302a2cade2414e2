package search

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/poiesic/wayfarer/core"
)

// Recommender owns a catalog of locations and the inverted index from
// passions to the locations endorsing them, and ranks locations against
// queries of passions.
//
// All methods are safe for concurrent use. Searches share a read lock;
// catalog and index mutations take the write lock, so a search always sees a
// consistent snapshot as long as endorsements go through Endorse.
type Recommender struct {
	mu         sync.RWMutex
	locations  map[core.ID]*core.Location
	index      map[core.Passion]map[core.ID]*core.Location
	maxResults int
	logger     *slog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recommender) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithMaxResults limits the number of results a search returns.
// Default is 0, which returns every candidate.
func WithMaxResults(n int) Option {
	return func(r *Recommender) error {
		if n < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidMaxResults, n)
		}
		r.maxResults = n
		return nil
	}
}

// NewRecommender creates an empty recommender.
func NewRecommender(opts ...Option) (*Recommender, error) {
	r := &Recommender{
		locations: make(map[core.ID]*core.Location),
		index:     make(map[core.Passion]map[core.ID]*core.Location),
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// AddLocation adds locations to the catalog.
// Adding a location that is already in the catalog is a no-op. Adding a
// different location with the same name fails with ErrDuplicateLocation and
// leaves the catalog unchanged.
func (r *Recommender) AddLocation(locations ...*core.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending := make(map[core.ID]*core.Location, len(locations))
	for _, loc := range locations {
		if loc == nil {
			return fmt.Errorf("%w: location is nil", core.ErrInvalidLocation)
		}
		if existing, ok := r.locations[loc.ID()]; ok && existing != loc {
			return fmt.Errorf("%w: %q", ErrDuplicateLocation, loc.Name())
		}
		if other, ok := pending[loc.ID()]; ok && other != loc {
			return fmt.Errorf("%w: %q given twice", ErrDuplicateLocation, loc.Name())
		}
		pending[loc.ID()] = loc
	}

	for _, loc := range locations {
		r.locations[loc.ID()] = loc
	}
	r.logger.Debug("added locations", "count", len(locations), "catalogSize", len(r.locations))
	return nil
}

// Len returns the number of locations in the catalog.
func (r *Recommender) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.locations)
}

// Location looks up a catalog location by name.
func (r *Recommender) Location(name string) (*core.Location, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loc, ok := r.locations[core.IDFromContent(name)]
	return loc, ok
}

// Locations returns every catalog location, sorted by name.
func (r *Recommender) Locations() []*core.Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedLocations(r.locations)
}

// Passions returns every passion with an index entry, sorted by name.
func (r *Recommender) Passions() []core.Passion {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.SortedFunc(maps.Keys(r.index), func(a, b core.Passion) int {
		return strings.Compare(a.Name(), b.Name())
	})
}

// IndexedCount returns the number of locations indexed for p, and whether p
// has an index entry at all.
func (r *Recommender) IndexedCount(p core.Passion) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.index[p]
	return len(entry), ok
}

func (r *Recommender) inCatalog(loc *core.Location) bool {
	if loc == nil {
		return false
	}
	existing, ok := r.locations[loc.ID()]
	return ok && existing == loc
}

func sortedLocations(set map[core.ID]*core.Location) []*core.Location {
	return slices.SortedFunc(maps.Values(set), func(a, b *core.Location) int {
		return strings.Compare(a.Name(), b.Name())
	})
}

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

package core

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Location is a destination that accumulates endorsements for passions.
//
// The running total is maintained alongside the per-passion counts on every
// endorsement and always equals their sum. A Location is safe to read from
// multiple goroutines, but endorsing a Location that a search.Recommender is
// concurrently scoring can pair a new count with an old total; use
// Recommender.Endorse to serialize those mutations with searches.
type Location struct {
	id   ID
	name string

	mu                sync.RWMutex
	totalEndorsements int64
	endorsements      map[Passion]int64
}

// NewLocation creates a location with no endorsements.
func NewLocation(name string) *Location {
	return &Location{
		id:           IDFromContent(name),
		name:         name,
		endorsements: make(map[Passion]int64),
	}
}

// ID returns the location's content-derived identifier.
func (l *Location) ID() ID {
	return l.id
}

// Name returns the location's name.
func (l *Location) Name() string {
	return l.name
}

func (l *Location) String() string {
	return l.name
}

// Endorse adds amount endorsements for passion p.
// Repeated endorsements for the same passion accumulate.
// Negative amounts are rejected with ErrInvalidEndorsement and leave the
// location unchanged.
func (l *Location) Endorse(p Passion, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: %s endorsed %d for %q", ErrInvalidEndorsement, l.name, amount, p.name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.endorsements[p] += amount
	l.totalEndorsements += amount
	return nil
}

// TotalEndorsements returns the sum of endorsements across all passions.
func (l *Location) TotalEndorsements() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalEndorsements
}

// EndorsementFor returns the endorsements recorded for p.
// A passion that was never endorsed has zero endorsements.
func (l *Location) EndorsementFor(p Passion) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.endorsements[p]
}

// Counts returns the endorsement count for p together with the running total,
// read under a single lock.
func (l *Location) Counts(p Passion) (endorsements, total int64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.endorsements[p], l.totalEndorsements
}

// Passions returns every passion recorded for this location, sorted by name.
func (l *Location) Passions() []Passion {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.SortedFunc(maps.Keys(l.endorsements), comparePassions)
}

// Endorsements returns a copy of the per-passion endorsement counts.
func (l *Location) Endorsements() map[Passion]int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return maps.Clone(l.endorsements)
}

func comparePassions(a, b Passion) int {
	return strings.Compare(a.name, b.name)
}

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
	"errors"
	"fmt"

	"github.com/poiesic/wayfarer/core"
)

var (
	// ErrEmptyQuery is returned when a search names no passions.
	ErrEmptyQuery = errors.New("query must name at least one passion")

	// ErrUnknownPassion is returned when a query passion has no index entry.
	ErrUnknownPassion = errors.New("no locations known for passion")

	// ErrLocationNotInCatalog is returned when indexing or endorsing a location
	// that was never added to the recommender.
	ErrLocationNotInCatalog = errors.New("location not in catalog")

	// ErrDuplicateLocation is returned when a different location with the
	// same name is already in the catalog.
	ErrDuplicateLocation = errors.New("duplicate location")

	// ErrInconsistentIndex is returned by Verify when the index does not match
	// the catalog's endorsements.
	ErrInconsistentIndex = errors.New("passion index inconsistent with catalog")

	// ErrInvalidMaxResults is returned for a negative result limit.
	ErrInvalidMaxResults = errors.New("max results cannot be negative")
)

// UnknownPassionError reports the query passion that had no index entry.
// It matches ErrUnknownPassion with errors.Is.
type UnknownPassionError struct {
	Passion core.Passion
}

func (e *UnknownPassionError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknownPassion, e.Passion.Name())
}

func (e *UnknownPassionError) Unwrap() error {
	return ErrUnknownPassion
}

package storage

import (
	"context"

	"github.com/poiesic/wayfarer/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// LocationRepository persists catalog locations together with their
// endorsements and a passion posting list.
type LocationRepository interface {
	Repository

	// AddLocations stores new locations.
	// Returns ErrDuplicateKey if a location with the same ID is already stored.
	AddLocations(ctx context.Context, locations ...*core.Location) error

	// UpdateLocations replaces the stored endorsements of existing locations.
	// Returns ErrNotFound if any location doesn't exist.
	UpdateLocations(ctx context.Context, locations ...*core.Location) error

	// DeleteLocations removes locations and their passion postings.
	// Returns ErrNotFound if any location doesn't exist.
	DeleteLocations(ctx context.Context, ids ...core.ID) error

	// GetLocation retrieves a single location by ID.
	// Returns ErrNotFound if the location doesn't exist.
	GetLocation(ctx context.Context, id core.ID) (*core.Location, error)

	// GetLocations retrieves multiple locations by their IDs.
	// Returns only the locations that exist (no error for missing ones).
	GetLocations(ctx context.Context, ids ...core.ID) ([]*core.Location, error)

	// FindLocationByName finds a location by its exact name.
	// Returns ErrNotFound if no location has that name.
	FindLocationByName(ctx context.Context, name string) (*core.Location, error)

	// GetAllLocations retrieves every stored location ordered by key.
	GetAllLocations(ctx context.Context) ([]*core.Location, error)

	// GetLocationIDsByPassion returns the IDs of locations with a positive
	// endorsement for passion.
	GetLocationIDsByPassion(ctx context.Context, passion core.Passion) ([]core.ID, error)
}

package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/wayfarer/core"
	"github.com/poiesic/wayfarer/storage"
)

// LocationRepository implements storage.LocationRepository for BadgerDB.
type LocationRepository struct {
	backend *Backend
}

var _ storage.LocationRepository = (*LocationRepository)(nil)

// NewLocationRepository creates a new LocationRepository on backend.
// The backend stays owned by the caller.
func NewLocationRepository(backend *Backend) (storage.LocationRepository, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	return &LocationRepository{
		backend: backend,
	}, nil
}

// Close releases resources. LocationRepository has no resources to release.
func (r *LocationRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *LocationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddLocations stores new locations with their passion postings.
func (r *LocationRepository) AddLocations(ctx context.Context, locations ...*core.Location) error {
	for _, loc := range locations {
		if err := core.ValidateLocation(loc); err != nil {
			return err
		}
	}

	return r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		for _, loc := range locations {
			key := makeLocationKey(loc.ID())
			existing, err := readLocation(tx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("%w: location %q", storage.ErrDuplicateKey, loc.Name())
			}

			if err := writeLocation(tx, loc); err != nil {
				return err
			}
		}
		return nil
	}, true)
}

// UpdateLocations replaces the stored endorsements of existing locations.
func (r *LocationRepository) UpdateLocations(ctx context.Context, locations ...*core.Location) error {
	for _, loc := range locations {
		if err := core.ValidateLocation(loc); err != nil {
			return err
		}
	}

	return r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		for _, loc := range locations {
			key := makeLocationKey(loc.ID())

			// Read old record so stale postings can be removed
			old, err := readLocation(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return fmt.Errorf("%w: %q", storage.ErrNotFound, loc.Name())
			}

			if err := deletePostings(tx, old); err != nil {
				return err
			}
			if err := writeLocation(tx, loc); err != nil {
				return err
			}
		}
		return nil
	}, true)
}

// DeleteLocations removes locations by their IDs.
func (r *LocationRepository) DeleteLocations(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeLocationKey(id)

			loc, err := readLocation(tx, key)
			if err != nil {
				return err
			}
			if loc == nil {
				return fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
			}

			if err := deletePostings(tx, loc); err != nil {
				return err
			}
			if err := tx.Delete(makeLocationNameKey(loc.Name())); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return nil
	}, true)
}

// GetLocation retrieves a single location by ID.
func (r *LocationRepository) GetLocation(ctx context.Context, id core.ID) (*core.Location, error) {
	var result *core.Location
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readLocation(tx, makeLocationKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
		}
		return nil
	}, false)
	return result, err
}

// GetLocations retrieves multiple locations by their IDs.
func (r *LocationRepository) GetLocations(ctx context.Context, ids ...core.ID) ([]*core.Location, error) {
	var result []*core.Location
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			loc, err := readLocation(tx, makeLocationKey(id))
			if err != nil {
				return err
			}
			if loc != nil {
				result = append(result, loc)
			}
		}
		return nil
	}, false)
	return result, err
}

// FindLocationByName finds a location by its exact name.
func (r *LocationRepository) FindLocationByName(ctx context.Context, name string) (*core.Location, error) {
	var result *core.Location
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		// Look up ID from name index
		item, err := tx.Get(makeLocationNameKey(name))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %q", storage.ErrNotFound, name)
			}
			return err
		}

		var id core.ID
		err = item.Value(func(val []byte) error {
			id, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		result, err = readLocation(tx, makeLocationKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: %q", storage.ErrNotFound, name)
		}
		return nil
	}, false)
	return result, err
}

// GetAllLocations retrieves every stored location.
func (r *LocationRepository) GetAllLocations(ctx context.Context) ([]*core.Location, error) {
	var results []*core.Location
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(locationRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var loc *core.Location
			err := iter.Item().Value(func(val []byte) error {
				var err error
				loc, err = storage.UnmarshalLocation(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, loc)
		}
		return nil
	}, false)

	return results, err
}

// GetLocationIDsByPassion returns the IDs of locations with a positive
// endorsement for passion, in ID order.
func (r *LocationRepository) GetLocationIDsByPassion(ctx context.Context, passion core.Passion) ([]core.ID, error) {
	var ids []core.ID
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makePartialPassionKey(passion)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			id, err := idFromPassionKey(iter.Item().Key())
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	}, false)

	return ids, err
}

// Helper methods

// readLocation reads a location from the transaction.
// Returns nil, nil if the key doesn't exist.
func readLocation(tx *badger.Txn, key []byte) (*core.Location, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var loc *core.Location
	err = item.Value(func(val []byte) error {
		var err error
		loc, err = storage.UnmarshalLocation(val)
		return err
	})
	return loc, err
}

// writeLocation stores the record, the name index entry and one posting per
// positively endorsed passion.
func writeLocation(tx *badger.Txn, loc *core.Location) error {
	if err := tx.Set(makeLocationKey(loc.ID()), storage.MarshalLocation(loc)); err != nil {
		return err
	}
	if err := tx.Set(makeLocationNameKey(loc.Name()), storage.MarshalID(loc.ID())); err != nil {
		return err
	}
	for p, amount := range loc.Endorsements() {
		if amount <= 0 {
			continue
		}
		if err := tx.Set(makePassionKey(p, loc.ID()), []byte{}); err != nil {
			return err
		}
	}
	return nil
}

// deletePostings removes every passion posting of loc.
func deletePostings(tx *badger.Txn, loc *core.Location) error {
	for _, p := range loc.Passions() {
		if err := tx.Delete(makePassionKey(p, loc.ID())); err != nil {
			return err
		}
	}
	return nil
}

package catalog

import (
	"context"
	"slices"

	"github.com/poiesic/wayfarer/core"
	"github.com/poiesic/wayfarer/storage"
)

const (
	// DefaultBatchSize is the default number of locations handled per batch
	DefaultBatchSize = 100
)

// LocationIterator walks every stored location in batches.
type LocationIterator struct {
	repo      storage.LocationRepository
	batchSize int
}

// NewLocationIterator creates an iterator over repo. A batchSize below 1
// uses DefaultBatchSize.
func NewLocationIterator(repo storage.LocationRepository, batchSize int) *LocationIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &LocationIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach calls fn with consecutive batches of stored locations and the
// total number stored. Iteration stops on the first error from fn or when
// ctx is done; ctx is checked between batches.
func (it *LocationIterator) ForEach(ctx context.Context, fn func(batch []*core.Location, total int) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	locations, err := it.repo.GetAllLocations(ctx)
	if err != nil {
		return err
	}

	for batch := range slices.Chunk(locations, it.batchSize) {
		if err := fn(batch, len(locations)); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

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

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/poiesic/wayfarer/core"
	"github.com/poiesic/wayfarer/search"
	"github.com/poiesic/wayfarer/storage"
)

// Config holds configuration for moving catalogs in and out of storage.
type Config struct {
	// BatchSize is the number of locations written or read per batch
	BatchSize int

	// ReportInterval is how often to report progress (number of locations)
	ReportInterval int

	// MaxAttempts is the maximum number of attempts per batch
	MaxAttempts int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Logger receives retry and summary messages. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: DefaultBatchSize,
		MaxAttempts:    3,
		RetryDelay:     100 * time.Millisecond,
	}
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// ImportResult counts what an import wrote.
type ImportResult struct {
	Added   int
	Updated int
}

// Import writes the locations of f to repo. Each batch is written in one
// transaction: new locations are added and stored ones have their
// endorsements replaced. A failed batch is retried with backoff; batches
// already committed stay committed. Progress goes to progress, which may be
// nil.
func Import(ctx context.Context, repo storage.LocationRepository, f *File, cfg *Config, progress io.Writer) (*ImportResult, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	logger := cfg.logger()

	if err := f.Validate(); err != nil {
		return nil, err
	}
	locations, err := f.Build()
	if err != nil {
		return nil, err
	}

	tracker := NewProgressTracker(progress, "Importing", len(locations), cfg.ReportInterval)
	tracker.Start()

	result := &ImportResult{}
	for batch := range slices.Chunk(locations, batchSize) {
		var added, updated int
		err := RetryWithBackoff(ctx, logger, func() error {
			var txErr error
			added, updated, txErr = importBatch(ctx, repo, batch)
			return txErr
		}, cfg.MaxAttempts, cfg.RetryDelay)
		if err != nil {
			return result, fmt.Errorf("import batch at location %q: %w", batch[0].Name(), err)
		}

		result.Added += added
		result.Updated += updated
		tracker.Add(len(batch))
	}
	tracker.Finish()

	logger.Info("imported catalog", "added", result.Added, "updated", result.Updated, "elapsed", tracker.Elapsed())
	return result, nil
}

// importBatch writes one batch in a single transaction.
func importBatch(ctx context.Context, repo storage.LocationRepository, batch []*core.Location) (added, updated int, err error) {
	err = repo.WithTransaction(ctx, func(ctx context.Context) error {
		var fresh, stored []*core.Location
		for _, loc := range batch {
			_, getErr := repo.GetLocation(ctx, loc.ID())
			switch {
			case getErr == nil:
				stored = append(stored, loc)
			case errors.Is(getErr, storage.ErrNotFound):
				fresh = append(fresh, loc)
			default:
				return getErr
			}
		}

		if len(fresh) > 0 {
			if err := repo.AddLocations(ctx, fresh...); err != nil {
				return err
			}
		}
		if len(stored) > 0 {
			if err := repo.UpdateLocations(ctx, stored...); err != nil {
				return err
			}
		}
		added, updated = len(fresh), len(stored)
		return nil
	})
	return added, updated, err
}

// Export reads every stored location into a File with a derived index.
// Progress goes to progress, which may be nil.
func Export(ctx context.Context, repo storage.LocationRepository, cfg *Config, progress io.Writer) (*File, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var tracker *ProgressTracker
	var locations []*core.Location
	err := NewLocationIterator(repo, cfg.BatchSize).ForEach(ctx, func(batch []*core.Location, total int) error {
		if tracker == nil {
			tracker = NewProgressTracker(progress, "Exporting", total, cfg.ReportInterval)
			tracker.Start()
		}
		locations = append(locations, batch...)
		tracker.Add(len(batch))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if tracker != nil {
		tracker.Finish()
	}

	return FromLocations(locations), nil
}

// Restore adds every stored location to rec and derives the index from
// their endorsements. It returns the number of locations added.
func Restore(ctx context.Context, repo storage.LocationRepository, rec *search.Recommender, cfg *Config) (int, error) {
	if repo == nil {
		return 0, ErrRepositoryRequired
	}
	if rec == nil {
		return 0, ErrRecommenderRequired
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	count := 0
	err := NewLocationIterator(repo, cfg.BatchSize).ForEach(ctx, func(batch []*core.Location, _ int) error {
		if err := rec.AddLocation(batch...); err != nil {
			return err
		}
		count += len(batch)
		return nil
	})
	if err != nil {
		return count, err
	}

	rec.Reindex()
	cfg.logger().Debug("restored catalog", "locations", count)
	return count, nil
}

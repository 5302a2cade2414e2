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

// Package wayfarer ties a stored location catalog to the recommender.
package wayfarer

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/wayfarer/catalog"
	"github.com/poiesic/wayfarer/search"
	"github.com/poiesic/wayfarer/storage"
	"github.com/poiesic/wayfarer/storage/badger"
)

type Database struct {
	backend  *badger.Backend
	repo     storage.LocationRepository
	config   *catalog.Config
	logger   *slog.Logger
	inMemory bool
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	logger        *slog.Logger
	catalogConfig *catalog.Config
	inMemory      bool
}

// WithLogger sets the logger used by the database and the jobs it runs.
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCatalogConfig sets batch, retry and progress settings for imports,
// exports and restores.
func WithCatalogConfig(cfg *catalog.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if cfg != nil {
			o.catalogConfig = cfg
		}
	}
}

// InMemory keeps the database in memory; the path is ignored.
func InMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		logger:        slog.Default(),
		catalogConfig: catalog.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	config := *options.catalogConfig
	if config.Logger == nil {
		config.Logger = options.logger
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create location repository
	repo, err := badger.NewLocationRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:  backend,
		repo:     repo,
		config:   &config,
		logger:   options.logger,
		inMemory: options.inMemory,
	}, nil
}

func (db *Database) Close() error {
	if err := db.repo.Close(); err != nil {
		db.logger.Error("error closing location repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) LocationRepository() storage.LocationRepository {
	return db.repo
}

// ImportCatalog stores the locations of f. Progress goes to progress, which
// may be nil.
func (db *Database) ImportCatalog(ctx context.Context, f *catalog.File, progress io.Writer) (*catalog.ImportResult, error) {
	return catalog.Import(ctx, db.repo, f, db.config, progress)
}

// ImportFiles parses the catalog files at paths concurrently and stores the
// merged result.
func (db *Database) ImportFiles(ctx context.Context, paths []string, progress io.Writer, opts ...catalog.Option) (*catalog.ImportResult, error) {
	loader, err := catalog.NewLoader(append([]catalog.Option{catalog.WithLogger(db.logger)}, opts...)...)
	if err != nil {
		return nil, err
	}
	defer loader.Release()

	f, err := loader.LoadFiles(ctx, paths...)
	if err != nil {
		return nil, err
	}
	return db.ImportCatalog(ctx, f, progress)
}

// ExportCatalog reads every stored location into a catalog file.
func (db *Database) ExportCatalog(ctx context.Context, progress io.Writer) (*catalog.File, error) {
	return catalog.Export(ctx, db.repo, db.config, progress)
}

// NewRecommender creates a recommender holding every stored location, with
// the index derived from their endorsements.
func (db *Database) NewRecommender(ctx context.Context, opts ...search.Option) (*search.Recommender, error) {
	rec, err := search.NewRecommender(append([]search.Option{search.WithLogger(db.logger)}, opts...)...)
	if err != nil {
		return nil, err
	}

	if _, err := catalog.Restore(ctx, db.repo, rec, db.config); err != nil {
		return nil, err
	}
	return rec, nil
}

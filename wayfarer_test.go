package wayfarer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/wayfarer/catalog"
	"github.com/poiesic/wayfarer/core"
	"github.com/poiesic/wayfarer/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		// Verify components are initialized
		assert.NotNil(t, db.LocationRepository())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
		assert.NotNil(t, db.config.Logger)
	})

	t.Run("in memory", func(t *testing.T) {
		db, err := NewDatabase("", InMemory())
		require.NoError(t, err)
		defer db.Close()
		assert.True(t, db.inMemory)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestDatabase_Close(t *testing.T) {
	db, err := NewDatabase(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, db)

	assert.NoError(t, db.Close())
}

func TestDatabase_ImportAndSearch(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db, err := NewDatabase(dir)
	require.NoError(t, err)

	result, err := db.ImportCatalog(ctx, catalog.Demo(), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Added)
	require.NoError(t, db.Close())

	// Reopen to read what was persisted
	db, err = NewDatabase(dir)
	require.NoError(t, err)
	defer db.Close()

	rec, err := db.NewRecommender(ctx, search.WithMaxResults(1))
	require.NoError(t, err)
	assert.Equal(t, 4, rec.Len())

	results, err := rec.Search(core.NewPassions("Walking", "Food"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Toronto", results[0].Location.Name())

	exported, err := db.ExportCatalog(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, exported.Locations, 4)
}

func TestDatabase_ImportFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nordic.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
locations:
  - name: Oslo
    endorsements:
      Skiing: 10
  - name: Bergen
    endorsements:
      Skiing: 1
      Fjords: 9
`), 0644))

	db, err := NewDatabase("", InMemory())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	result, err := db.ImportFiles(ctx, []string{path}, nil, catalog.WithPoolSize(1))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)

	rec, err := db.NewRecommender(ctx)
	require.NoError(t, err)
	results, err := rec.Search(core.NewPassions("Skiing"))
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Every location endorses skiing, so it carries no information
	assert.Zero(t, results[0].Score)
	assert.Zero(t, results[1].Score)
	assert.Equal(t, "Bergen", results[0].Location.Name())

	_, err = db.ImportFiles(ctx, nil, nil)
	assert.ErrorIs(t, err, catalog.ErrNoFiles)
}

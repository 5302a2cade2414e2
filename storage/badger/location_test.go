package badger

import (
	"context"
	"sync"
	"testing"

	"github.com/poiesic/wayfarer/core"
	"github.com/poiesic/wayfarer/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) storage.LocationRepository {
	t.Helper()

	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func newLocation(t *testing.T, name string, endorsements map[string]int64) *core.Location {
	t.Helper()

	loc := core.NewLocation(name)
	for p, amount := range endorsements {
		require.NoError(t, loc.Endorse(core.NewPassion(p), amount))
	}
	return loc
}

func TestLocationRepository_AddAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	toronto := newLocation(t, "Toronto", map[string]int64{"Walking": 50, "Food": 50, "Museum": 1})
	require.NoError(t, repo.AddLocations(ctx, toronto))

	got, err := repo.GetLocation(ctx, toronto.ID())
	require.NoError(t, err)
	assert.Equal(t, "Toronto", got.Name())
	assert.Equal(t, int64(101), got.TotalEndorsements())
	assert.Equal(t, toronto.Endorsements(), got.Endorsements())

	byName, err := repo.FindLocationByName(ctx, "Toronto")
	require.NoError(t, err)
	assert.Equal(t, toronto.ID(), byName.ID())
}

func TestLocationRepository_AddDuplicate(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.AddLocations(ctx, core.NewLocation("Amsterdam")))

	err := repo.AddLocations(ctx, core.NewLocation("Amsterdam"))
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	err = repo.AddLocations(ctx, core.NewLocation("Lisbon"), core.NewLocation("Lisbon"))
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// The failed batch wrote nothing
	_, err = repo.FindLocationByName(ctx, "Lisbon")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLocationRepository_AddInvalid(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	assert.ErrorIs(t, repo.AddLocations(ctx, nil), core.ErrInvalidLocation)
	assert.ErrorIs(t, repo.AddLocations(ctx, core.NewLocation("")), core.ErrEmptyLocationName)
}

func TestLocationRepository_NotFound(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.GetLocation(ctx, core.IDFromContent("Atlantis"))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repo.FindLocationByName(ctx, "Atlantis")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = repo.UpdateLocations(ctx, core.NewLocation("Atlantis"))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = repo.DeleteLocations(ctx, core.IDFromContent("Atlantis"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLocationRepository_GetLocations(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	hk := newLocation(t, "Hong Kong", map[string]int64{"Walking": 1})
	amsterdam := newLocation(t, "Amsterdam", map[string]int64{"Museum": 1000})
	require.NoError(t, repo.AddLocations(ctx, hk, amsterdam))

	got, err := repo.GetLocations(ctx, hk.ID(), core.IDFromContent("Atlantis"), amsterdam.ID())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Hong Kong", got[0].Name())
	assert.Equal(t, "Amsterdam", got[1].Name())
}

func TestLocationRepository_Postings(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	hk := newLocation(t, "Hong Kong", map[string]int64{"Walking": 1, "Food": 1, "Museum": 0})
	toronto := newLocation(t, "Toronto", map[string]int64{"Walking": 50, "Food": 50, "Museum": 1})
	street := newLocation(t, "Bangkok", map[string]int64{"Food:Street": 9})
	require.NoError(t, repo.AddLocations(ctx, hk, toronto, street))

	walking, err := repo.GetLocationIDsByPassion(ctx, core.NewPassion("Walking"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []core.ID{hk.ID(), toronto.ID()}, walking)

	// Zero endorsements are stored on the record but not posted
	museum, err := repo.GetLocationIDsByPassion(ctx, core.NewPassion("Museum"))
	require.NoError(t, err)
	assert.Equal(t, []core.ID{toronto.ID()}, museum)

	food, err := repo.GetLocationIDsByPassion(ctx, core.NewPassion("Food"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []core.ID{hk.ID(), toronto.ID()}, food)

	none, err := repo.GetLocationIDsByPassion(ctx, core.NewPassion("Skiing"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLocationRepository_Update(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	london := newLocation(t, "London", map[string]int64{"Shark Diving": 10})
	require.NoError(t, repo.AddLocations(ctx, london))

	updated := newLocation(t, "London", map[string]int64{"Museum": 5})
	require.NoError(t, repo.UpdateLocations(ctx, updated))

	got, err := repo.GetLocation(ctx, london.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.EndorsementFor(core.NewPassion("Shark Diving")))
	assert.Equal(t, int64(5), got.EndorsementFor(core.NewPassion("Museum")))

	diving, err := repo.GetLocationIDsByPassion(ctx, core.NewPassion("Shark Diving"))
	require.NoError(t, err)
	assert.Empty(t, diving)

	museum, err := repo.GetLocationIDsByPassion(ctx, core.NewPassion("Museum"))
	require.NoError(t, err)
	assert.Equal(t, []core.ID{london.ID()}, museum)
}

func TestLocationRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	hk := newLocation(t, "Hong Kong", map[string]int64{"Walking": 1})
	toronto := newLocation(t, "Toronto", map[string]int64{"Walking": 50})
	require.NoError(t, repo.AddLocations(ctx, hk, toronto))

	require.NoError(t, repo.DeleteLocations(ctx, hk.ID()))

	_, err := repo.GetLocation(ctx, hk.ID())
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = repo.FindLocationByName(ctx, "Hong Kong")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	walking, err := repo.GetLocationIDsByPassion(ctx, core.NewPassion("Walking"))
	require.NoError(t, err)
	assert.Equal(t, []core.ID{toronto.ID()}, walking)
}

func TestLocationRepository_GetAllLocations(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	all, err := repo.GetAllLocations(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	names := []string{"Hong Kong", "Toronto", "Amsterdam", "London"}
	for _, name := range names {
		require.NoError(t, repo.AddLocations(ctx, newLocation(t, name, map[string]int64{"Walking": 1})))
	}

	all, err = repo.GetAllLocations(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(names))

	var got []string
	for _, loc := range all {
		got = append(got, loc.Name())
	}
	assert.ElementsMatch(t, names, got)
}

func TestLocationRepository_WithTransaction(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	err := repo.WithTransaction(ctx, func(ctx context.Context) error {
		if err := repo.AddLocations(ctx, core.NewLocation("Oslo")); err != nil {
			return err
		}
		// Reads inside the transaction see its pending writes
		if _, err := repo.FindLocationByName(ctx, "Oslo"); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = repo.FindLocationByName(ctx, "Oslo")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = repo.WithTransaction(ctx, func(ctx context.Context) error {
		return repo.AddLocations(ctx, core.NewLocation("Oslo"), core.NewLocation("Bergen"))
	})
	require.NoError(t, err)

	all, err := repo.GetAllLocations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLocationRepository_ConcurrentAdds(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	names := []string{"Oslo", "Bergen", "Lisbon", "Porto", "Madrid", "Seville", "Rome", "Milan"}

	locations := make([]*core.Location, len(names))
	for i, name := range names {
		locations[i] = newLocation(t, name, map[string]int64{"Food": 1})
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(locations))
	for _, loc := range locations {
		wg.Add(1)
		go func(loc *core.Location) {
			defer wg.Done()
			errs <- repo.AddLocations(ctx, loc)
		}(loc)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	food, err := repo.GetLocationIDsByPassion(ctx, core.NewPassion("Food"))
	require.NoError(t, err)
	assert.Len(t, food, len(names))
}

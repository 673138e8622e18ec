package fleet

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billyautos/showroom/internal/catalog"
	"github.com/billyautos/showroom/internal/db"
	"github.com/billyautos/showroom/internal/models"
)

func newTestService(t *testing.T) (*Service, *db.LocalStore) {
	t.Helper()
	store, err := db.NewLocalStore(t.TempDir(), nil)
	require.NoError(t, err)
	svc, err := NewService(context.Background(), store, catalog.DefaultSeedSize)
	require.NoError(t, err)
	return svc, store
}

func TestNewService_SeedsOnFirstRun(t *testing.T) {
	svc, store := newTestService(t)

	cars := svc.List()
	require.Len(t, cars, catalog.DefaultSeedSize)
	for i, car := range cars {
		assert.Equal(t, catalog.Fleet[i].ID, car.ID)
		assert.Equal(t, models.StatusAvailable, car.Status)
	}

	// The seed must be durable immediately, not only on the next mutation.
	persisted, err := store.LoadFleet(context.Background())
	require.NoError(t, err)
	assert.Len(t, persisted, catalog.DefaultSeedSize)
}

func TestNewService_DoesNotReseed(t *testing.T) {
	dir := t.TempDir()
	store, err := db.NewLocalStore(dir, nil)
	require.NoError(t, err)

	first, err := NewService(context.Background(), store, catalog.DefaultSeedSize)
	require.NoError(t, err)
	first.Delete(context.Background(), catalog.Fleet[0].ID)

	// A later process start must see the trimmed collection, not a fresh seed.
	second, err := NewService(context.Background(), store, catalog.DefaultSeedSize)
	require.NoError(t, err)
	assert.Len(t, second.List(), catalog.DefaultSeedSize-1)
	_, ok := second.FindByID(catalog.Fleet[0].ID)
	assert.False(t, ok)
}

func TestService_CreateAssignsUniqueIDs(t *testing.T) {
	svc, _ := newTestService(t)

	a := svc.Create(context.Background(), models.Car{Make: "Koenigsegg", Model: "Jesko", Year: 2025})
	b := svc.Create(context.Background(), models.Car{Make: "Pagani", Model: "Utopia", Year: 2025})

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)

	got, ok := svc.FindByID(a.ID)
	require.True(t, ok)
	assert.Equal(t, "Koenigsegg", got.Make)
	assert.Len(t, svc.List(), catalog.DefaultSeedSize+2)
}

func TestService_UpdateReplacesAndKeepsID(t *testing.T) {
	svc, _ := newTestService(t)
	id := catalog.Fleet[0].ID

	existing, ok := svc.FindByID(id)
	require.True(t, ok)
	existing.Status = models.StatusSold
	existing.ID = "someone-elses-id"

	require.NoError(t, svc.Update(context.Background(), id, existing))

	got, ok := svc.FindByID(id)
	require.True(t, ok)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, models.StatusSold, got.Status)
}

func TestService_UpdateMissingCar(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.Update(context.Background(), "car-nope", models.Car{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_DeleteIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	id := catalog.Fleet[1].ID

	svc.Delete(context.Background(), id)
	svc.Delete(context.Background(), id)

	_, ok := svc.FindByID(id)
	assert.False(t, ok)
	assert.Len(t, svc.List(), catalog.DefaultSeedSize-1)
}

func TestService_Featured(t *testing.T) {
	svc, _ := newTestService(t)
	for _, car := range svc.Featured() {
		assert.True(t, car.Featured)
	}

	created := svc.Create(context.Background(), models.Car{Make: "Gordon Murray", Model: "T.50", Year: 2025, Featured: true})
	featured := svc.Featured()
	require.NotEmpty(t, featured)
	assert.Equal(t, created.ID, featured[len(featured)-1].ID)
}

func TestService_FacetsAreSortedAndDistinct(t *testing.T) {
	svc, _ := newTestService(t)
	svc.Create(context.Background(), models.Car{Make: "Ferrari", BodyType: models.BodyHypercar, Year: 2020})

	facets := svc.Facets()

	assert.True(t, sort.StringsAreSorted(facets.Makes))
	assert.True(t, sort.StringsAreSorted(facets.BodyTypes))
	assert.True(t, sort.IsSorted(sort.Reverse(sort.IntSlice(facets.Years))))

	seen := map[string]bool{}
	for _, m := range facets.Makes {
		assert.False(t, seen[m], "duplicate make %q", m)
		seen[m] = true
	}
}

func TestService_FilteredMatchesList(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Equal(t, svc.List(), svc.Filtered(Criteria{}))

	sold := svc.Filtered(Criteria{Status: models.StatusSold})
	for _, car := range sold {
		assert.Equal(t, models.StatusSold, car.Status)
	}
}

func TestService_ReloadPicksUpExternalWrites(t *testing.T) {
	svc, store := newTestService(t)

	external := catalog.Seed(3)
	external[0].Status = models.StatusSold
	require.NoError(t, store.SaveFleet(context.Background(), external))

	svc.Reload(context.Background())

	cars := svc.List()
	require.Len(t, cars, 3)
	assert.Equal(t, models.StatusSold, cars[0].Status)
}

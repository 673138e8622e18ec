package favorites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billyautos/showroom/internal/db"
	"github.com/billyautos/showroom/internal/models"
)

type stubFinder map[string]models.Car

func (f stubFinder) FindByID(id string) (models.Car, bool) {
	car, ok := f[id]
	return car, ok
}

func newTestService(t *testing.T) (*Service, db.Store) {
	t.Helper()
	store, err := db.NewLocalStore(t.TempDir(), nil)
	require.NoError(t, err)
	return NewService(store), store
}

func TestService_AddRemove(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, "alice", "car-1")
	svc.Add(ctx, "alice", "car-2")
	svc.Add(ctx, "alice", "car-1") // duplicate, no-op

	assert.Equal(t, []string{"car-1", "car-2"}, svc.List(ctx, "alice"))
	assert.Equal(t, 2, svc.Count(ctx, "alice"))
	assert.True(t, svc.IsFavorite(ctx, "alice", "car-1"))

	svc.Remove(ctx, "alice", "car-1")
	svc.Remove(ctx, "alice", "car-1") // absent, no-op

	assert.Equal(t, []string{"car-2"}, svc.List(ctx, "alice"))
	assert.False(t, svc.IsFavorite(ctx, "alice", "car-1"))
}

func TestService_ToggleRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Toggle(ctx, "alice", "car-1")
	assert.True(t, svc.IsFavorite(ctx, "alice", "car-1"))

	svc.Toggle(ctx, "alice", "car-1")
	assert.False(t, svc.IsFavorite(ctx, "alice", "car-1"))
	assert.Equal(t, 0, svc.Count(ctx, "alice"))
}

func TestService_OwnersAreIsolated(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, "alice", "car-1")
	svc.Add(ctx, "bob", "car-2")

	assert.Equal(t, []string{"car-1"}, svc.List(ctx, "alice"))
	assert.Equal(t, []string{"car-2"}, svc.List(ctx, "bob"))

	svc.Clear(ctx, "alice")
	assert.Empty(t, svc.List(ctx, "alice"))
	assert.Equal(t, []string{"car-2"}, svc.List(ctx, "bob"))
}

func TestService_CarsDropsDanglingIDs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, "alice", "car-1")
	svc.Add(ctx, "alice", "car-gone")
	svc.Add(ctx, "alice", "car-2")

	finder := stubFinder{
		"car-1": {ID: "car-1", Make: "Ferrari"},
		"car-2": {ID: "car-2", Make: "Porsche"},
	}

	cars := svc.Cars(ctx, "alice", finder)
	require.Len(t, cars, 2)
	assert.Equal(t, "car-1", cars[0].ID)
	assert.Equal(t, "car-2", cars[1].ID)

	// The dangling id stays in the raw set; only the derived view drops it.
	assert.Equal(t, 3, svc.Count(ctx, "alice"))
}

func TestService_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	store, err := db.NewLocalStore(dir, nil)
	require.NoError(t, err)
	ctx := context.Background()

	first := NewService(store)
	first.Add(ctx, "alice", "car-1")
	first.Add(ctx, "alice", "car-2")

	second := NewService(store)
	assert.Equal(t, []string{"car-1", "car-2"}, second.List(ctx, "alice"))
}

func TestService_ReloadDropsCache(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, "alice", "car-1")

	// Simulate another instance rewriting the persisted set.
	require.NoError(t, store.SaveFavorites(ctx, "alice", []string{"car-9"}))
	assert.Equal(t, []string{"car-1"}, svc.List(ctx, "alice"), "cache still serving before reload")

	svc.Reload()
	assert.Equal(t, []string{"car-9"}, svc.List(ctx, "alice"))
}

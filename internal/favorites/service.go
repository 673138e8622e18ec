// Package favorites manages per-visitor sets of saved car ids.
package favorites

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/billyautos/showroom/internal/db"
	"github.com/billyautos/showroom/internal/models"
)

// CarFinder resolves favorite ids against the live inventory.
type CarFinder interface {
	FindByID(id string) (models.Car, bool)
}

// Service keeps each owner's set in memory, read through from the store on
// first access, and overwrites the whole set on every mutation. A favorite id
// may dangle after its car is deleted; the derived car view drops it silently.
type Service struct {
	mu    sync.Mutex
	sets  map[string][]string
	store db.FavoritesStore
}

// NewService creates the favorites service over the given store.
func NewService(store db.FavoritesStore) *Service {
	return &Service{sets: make(map[string][]string), store: store}
}

// List returns the owner's favorite ids in insertion order.
func (s *Service) List(ctx context.Context, owner string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.load(ctx, owner)...)
}

// IsFavorite reports membership of id in the owner's set.
func (s *Service) IsFavorite(ctx context.Context, owner, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fav := range s.load(ctx, owner) {
		if fav == id {
			return true
		}
	}
	return false
}

// Count returns the owner's set size.
func (s *Service) Count(ctx context.Context, owner string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.load(ctx, owner))
}

// Add inserts id into the owner's set. Adding a present id is a no-op.
func (s *Service) Add(ctx context.Context, owner, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.load(ctx, owner)
	for _, fav := range ids {
		if fav == id {
			return
		}
	}
	s.save(ctx, owner, append(ids, id))
}

// Remove deletes id from the owner's set. Removing an absent id is a no-op.
func (s *Service) Remove(ctx context.Context, owner, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.load(ctx, owner)
	kept := make([]string, 0, len(ids))
	for _, fav := range ids {
		if fav != id {
			kept = append(kept, fav)
		}
	}
	if len(kept) == len(ids) {
		return
	}
	s.save(ctx, owner, kept)
}

// Toggle adds id if absent, removes it if present.
func (s *Service) Toggle(ctx context.Context, owner, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.load(ctx, owner)
	kept := make([]string, 0, len(ids)+1)
	present := false
	for _, fav := range ids {
		if fav == id {
			present = true
			continue
		}
		kept = append(kept, fav)
	}
	if !present {
		kept = append(kept, id)
	}
	s.save(ctx, owner, kept)
}

// Clear empties the owner's set.
func (s *Service) Clear(ctx context.Context, owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(ctx, owner, nil)
}

// Cars resolves the owner's favorites against the inventory, dropping ids
// whose car no longer exists.
func (s *Service) Cars(ctx context.Context, owner string, finder CarFinder) []models.Car {
	ids := s.List(ctx, owner)
	cars := make([]models.Car, 0, len(ids))
	for _, id := range ids {
		if car, ok := finder.FindByID(id); ok {
			cars = append(cars, car)
		}
	}
	return cars
}

// Reload drops the cached sets so the next access rereads the store. Invoked
// on external-write notifications.
func (s *Service) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets = make(map[string][]string)
}

// load returns the cached set, reading through to the store once per owner.
// Caller holds the lock.
func (s *Service) load(ctx context.Context, owner string) []string {
	if ids, ok := s.sets[owner]; ok {
		return ids
	}
	ids, err := s.store.LoadFavorites(ctx, owner)
	if err != nil {
		log.WithError(err).WithField("owner", owner).Warn("Failed to load favorites")
		ids = nil
	}
	if ids == nil {
		ids = []string{}
	}
	s.sets[owner] = ids
	return ids
}

// save replaces the cached set and overwrites the persisted one. Caller holds
// the lock.
func (s *Service) save(ctx context.Context, owner string, ids []string) {
	if ids == nil {
		ids = []string{}
	}
	s.sets[owner] = ids
	if err := s.store.SaveFavorites(ctx, owner, ids); err != nil {
		log.WithError(err).WithField("owner", owner).Warn("Failed to persist favorites")
	}
}

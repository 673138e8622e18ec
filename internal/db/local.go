package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/billyautos/showroom/internal/models"
	"github.com/billyautos/showroom/internal/notify"
)

// Storage keys, one JSON file per key under the data directory.
const (
	fleetKey     = "billy_autos_fleet"
	favoritesKey = "billy_autos_favorites"
	analyticsKey = "billy_autos_analytics"
)

// LocalStore persists everything to keyed JSON files in one directory, scoped
// to a single deployment. Every mutation rewrites the affected key whole and
// publishes a write notification; there is exactly one writer per key, so
// read-modify-write of counters is safe here.
type LocalStore struct {
	dir string
	bus notify.Bus
	mu  sync.Mutex
}

// NewLocalStore creates the data directory if needed and returns the store.
func NewLocalStore(dir string, bus notify.Bus) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &LocalStore{dir: dir, bus: bus}, nil
}

// Close is a no-op; the files need no teardown.
func (s *LocalStore) Close(ctx context.Context) error { return nil }

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// readKey unmarshals the named key into out. A missing file reports absent;
// a malformed payload degrades to absent with a warning rather than failing.
func (s *LocalStore) readKey(key string, out interface{}) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.WithError(err).WithField("key", key).Warn("Malformed persisted payload, falling back to empty state")
		return false, nil
	}
	return true, nil
}

// writeKey marshals value, replaces the key's file atomically, and publishes
// the write notification.
func (s *LocalStore) writeKey(key, entity string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	if s.bus != nil {
		s.bus.Publish(entity)
	}
	return nil
}

// LoadFleet reads the persisted collection in stored order.
func (s *LocalStore) LoadFleet(ctx context.Context) ([]models.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stored []StoredCar
	found, err := s.readKey(fleetKey, &stored)
	if err != nil || !found || len(stored) == 0 {
		return nil, err
	}
	return DecodeFleet(stored), nil
}

// SaveFleet overwrites the whole persisted collection.
func (s *LocalStore) SaveFleet(ctx context.Context, cars []models.Car) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeKey(fleetKey, notify.EntityFleet, EncodeFleet(cars))
}

// InsertCar appends one record, rewriting the collection file.
func (s *LocalStore) InsertCar(ctx context.Context, car models.Car) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stored []StoredCar
	if _, err := s.readKey(fleetKey, &stored); err != nil {
		return err
	}
	stored = append(stored, EncodeCar(car, len(stored)))
	return s.writeKey(fleetKey, notify.EntityFleet, stored)
}

// UpdateCar replaces the record matching the car's id.
func (s *LocalStore) UpdateCar(ctx context.Context, car models.Car) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stored []StoredCar
	if _, err := s.readKey(fleetKey, &stored); err != nil {
		return err
	}
	for i := range stored {
		if stored[i].ID == car.ID {
			stored[i] = EncodeCar(car, stored[i].Position)
			return s.writeKey(fleetKey, notify.EntityFleet, stored)
		}
	}
	return ErrNotFound
}

// DeleteCar removes the record matching id. Deleting an absent id is a no-op.
func (s *LocalStore) DeleteCar(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stored []StoredCar
	if _, err := s.readKey(fleetKey, &stored); err != nil {
		return err
	}
	kept := stored[:0]
	for _, c := range stored {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(stored) {
		return nil
	}
	return s.writeKey(fleetKey, notify.EntityFleet, kept)
}

// LoadFavorites reads one owner's favorite ids in insertion order.
func (s *LocalStore) LoadFavorites(ctx context.Context, owner string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sets := map[string][]string{}
	if _, err := s.readKey(favoritesKey, &sets); err != nil {
		return nil, err
	}
	return sets[owner], nil
}

// SaveFavorites overwrites one owner's whole set.
func (s *LocalStore) SaveFavorites(ctx context.Context, owner string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sets := map[string][]string{}
	if _, err := s.readKey(favoritesKey, &sets); err != nil {
		return err
	}
	if len(ids) == 0 {
		delete(sets, owner)
	} else {
		sets[owner] = ids
	}
	return s.writeKey(favoritesKey, notify.EntityFavorites, sets)
}

// LoadAnalytics reads the durable counter state, empty by default.
func (s *LocalStore) LoadAnalytics(ctx context.Context) (models.AnalyticsData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := models.NewAnalyticsData()
	if _, err := s.readKey(analyticsKey, &data); err != nil {
		return models.NewAnalyticsData(), err
	}
	if data.Cars == nil {
		data.Cars = make(map[string]models.CarAnalytics)
	}
	return data, nil
}

// IncrementView bumps one car's view counter and the global total.
func (s *LocalStore) IncrementView(ctx context.Context, carID string, at time.Time) error {
	return s.mutateAnalytics(func(data *models.AnalyticsData) {
		entry := data.Cars[carID]
		entry.Views++
		entry.LastViewed = &at
		data.Cars[carID] = entry
		data.TotalViews++
	})
}

// IncrementInquiry bumps one car's inquiry counter and the global total.
func (s *LocalStore) IncrementInquiry(ctx context.Context, carID string) error {
	return s.mutateAnalytics(func(data *models.AnalyticsData) {
		entry := data.Cars[carID]
		entry.Inquiries++
		data.Cars[carID] = entry
		data.TotalInquiries++
	})
}

// IncrementSiteVisit bumps the site-wide visit counter.
func (s *LocalStore) IncrementSiteVisit(ctx context.Context) error {
	return s.mutateAnalytics(func(data *models.AnalyticsData) {
		data.SiteVisits++
	})
}

// ResetAnalytics clears every counter.
func (s *LocalStore) ResetAnalytics(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeKey(analyticsKey, notify.EntityAnalytics, models.NewAnalyticsData())
}

func (s *LocalStore) mutateAnalytics(mutate func(*models.AnalyticsData)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := models.NewAnalyticsData()
	if _, err := s.readKey(analyticsKey, &data); err != nil {
		return err
	}
	if data.Cars == nil {
		data.Cars = make(map[string]models.CarAnalytics)
	}
	mutate(&data)
	return s.writeKey(analyticsKey, notify.EntityAnalytics, data)
}

// Package fleet owns the canonical car inventory: CRUD, facet derivation,
// filtering and first-run seeding.
package fleet

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/billyautos/showroom/internal/catalog"
	"github.com/billyautos/showroom/internal/db"
	"github.com/billyautos/showroom/internal/models"
)

// ErrNotFound is returned when no car matches the requested id.
var ErrNotFound = db.ErrNotFound

// Facets are the distinct values of the filterable fields, used to populate
// filter options. Makes and body types sort ascending, years descending.
type Facets struct {
	Makes     []string `json:"makes"`
	BodyTypes []string `json:"bodyTypes"`
	Years     []int    `json:"years"`
}

// Service keeps the inventory in memory and writes every mutation through the
// persistence adapter. The in-memory snapshot stays authoritative when the
// durable medium is unreachable; failed writes downgrade to warnings.
type Service struct {
	mu    sync.RWMutex
	cars  []models.Car
	store db.FleetStore
}

// NewService loads the persisted collection, seeding from the bundled catalog
// on first run. seedSize caps how many catalog entries the seed takes.
func NewService(ctx context.Context, store db.FleetStore, seedSize int) (*Service, error) {
	s := &Service{store: store}
	cars, err := store.LoadFleet(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fleet: %w", err)
	}
	if len(cars) == 0 {
		cars = catalog.Seed(seedSize)
		if err := store.SaveFleet(ctx, cars); err != nil {
			log.WithError(err).Warn("Failed to persist seed fleet")
		}
	}
	for i := range cars {
		cars[i].Normalize()
	}
	s.cars = cars
	return s, nil
}

// List returns the full collection in insertion order.
func (s *Service) List() []models.Car {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Car(nil), s.cars...)
}

// FindByID returns the car matching id.
func (s *Service) FindByID(id string) (models.Car, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.cars {
		if s.cars[i].ID == id {
			return s.cars[i], true
		}
	}
	return models.Car{}, false
}

// Featured returns the cars flagged for the homepage carousel.
func (s *Service) Featured() []models.Car {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Car
	for i := range s.cars {
		if s.cars[i].Featured {
			out = append(out, s.cars[i])
		}
	}
	return out
}

// Filtered returns the cars satisfying the criteria, in insertion order.
func (s *Service) Filtered(criteria Criteria) []models.Car {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Filter(s.cars, criteria)
}

// Facets projects and de-duplicates the live collection.
func (s *Service) Facets() Facets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	makes := map[string]bool{}
	bodyTypes := map[string]bool{}
	years := map[int]bool{}
	for i := range s.cars {
		makes[s.cars[i].Make] = true
		bodyTypes[s.cars[i].BodyType] = true
		years[s.cars[i].Year] = true
	}
	facets := Facets{
		Makes:     make([]string, 0, len(makes)),
		BodyTypes: make([]string, 0, len(bodyTypes)),
		Years:     make([]int, 0, len(years)),
	}
	for m := range makes {
		facets.Makes = append(facets.Makes, m)
	}
	for b := range bodyTypes {
		facets.BodyTypes = append(facets.BodyTypes, b)
	}
	for y := range years {
		facets.Years = append(facets.Years, y)
	}
	sort.Strings(facets.Makes)
	sort.Strings(facets.BodyTypes)
	sort.Sort(sort.Reverse(sort.IntSlice(facets.Years)))
	return facets
}

// Create assigns a fresh time-based id, appends the car and persists it.
func (s *Service) Create(ctx context.Context, fields models.Car) models.Car {
	s.mu.Lock()
	defer s.mu.Unlock()
	car := fields
	car.ID = s.newID()
	car.Normalize()
	s.cars = append(s.cars, car)
	if err := s.store.InsertCar(ctx, car); err != nil {
		log.WithError(err).WithField("car_id", car.ID).Warn("Failed to persist new car")
	}
	return car
}

// Update replaces the record matching id with the merged car, keeping the id
// immutable. Last write wins.
func (s *Service) Update(ctx context.Context, id string, updated models.Car) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cars {
		if s.cars[i].ID == id {
			updated.ID = id
			updated.Normalize()
			s.cars[i] = updated
			if err := s.store.UpdateCar(ctx, updated); err != nil {
				log.WithError(err).WithField("car_id", id).Warn("Failed to persist car update")
			}
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes the record matching id. Deleting an absent id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.cars[:0]
	removed := false
	for _, car := range s.cars {
		if car.ID == id {
			removed = true
			continue
		}
		kept = append(kept, car)
	}
	s.cars = kept
	if removed {
		if err := s.store.DeleteCar(ctx, id); err != nil {
			log.WithError(err).WithField("car_id", id).Warn("Failed to persist car deletion")
		}
	}
}

// Reload replaces the in-memory snapshot with the persisted collection. It is
// invoked on external-write notifications; a failed or empty load keeps the
// current snapshot serving.
func (s *Service) Reload(ctx context.Context) {
	cars, err := s.store.LoadFleet(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to reload fleet after external write")
		return
	}
	if cars == nil {
		return
	}
	for i := range cars {
		cars[i].Normalize()
	}
	s.mu.Lock()
	s.cars = cars
	s.mu.Unlock()
}

// newID generates a time-based token, suffixed when two creations land on the
// same millisecond. Caller holds the lock.
func (s *Service) newID() string {
	base := fmt.Sprintf("car-%d", time.Now().UnixMilli())
	id := base
	for n := 1; s.idTaken(id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

func (s *Service) idTaken(id string) bool {
	for i := range s.cars {
		if s.cars[i].ID == id {
			return true
		}
	}
	return false
}

package db

import (
	"context"
	"errors"
	"time"

	"github.com/billyautos/showroom/internal/models"
)

// ErrNotFound is returned when a record id has no match in the store.
var ErrNotFound = errors.New("record not found")

// FleetStore defines the interface for car inventory persistence.
// LoadFleet returns (nil, nil) on first run, before anything was persisted.
type FleetStore interface {
	LoadFleet(ctx context.Context) ([]models.Car, error)
	SaveFleet(ctx context.Context, cars []models.Car) error
	InsertCar(ctx context.Context, car models.Car) error
	UpdateCar(ctx context.Context, car models.Car) error
	DeleteCar(ctx context.Context, id string) error
}

// FavoritesStore defines the interface for per-owner favorites persistence.
// The set is always written whole, never as a diff.
type FavoritesStore interface {
	LoadFavorites(ctx context.Context, owner string) ([]string, error)
	SaveFavorites(ctx context.Context, owner string, ids []string) error
}

// AnalyticsStore defines the interface for counter persistence. Increment
// operations must be commutative when the medium is shared between writers.
type AnalyticsStore interface {
	LoadAnalytics(ctx context.Context) (models.AnalyticsData, error)
	IncrementView(ctx context.Context, carID string, at time.Time) error
	IncrementInquiry(ctx context.Context, carID string) error
	IncrementSiteVisit(ctx context.Context) error
	ResetAnalytics(ctx context.Context) error
}

// Store is the full persistence adapter contract. Exactly one implementation
// is active per process, selected by configuration.
type Store interface {
	FleetStore
	FavoritesStore
	AnalyticsStore
	Close(ctx context.Context) error
}

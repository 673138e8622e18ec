// Package analytics counts car views, inquiries and site visits.
package analytics

import (
	"context"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/billyautos/showroom/internal/db"
	"github.com/billyautos/showroom/internal/models"
	"github.com/billyautos/showroom/internal/session"
)

// DefaultTopLimit caps the ranking endpoints when no limit is given.
const DefaultTopLimit = 5

// Service keeps the counter snapshot in memory and writes every increment
// through the persistence adapter. Counters only grow; the one decrement path
// is an explicit administrative reset.
type Service struct {
	mu       sync.Mutex
	data     models.AnalyticsData
	store    db.AnalyticsStore
	sessions session.Store
}

// NewService loads the persisted counters, starting empty on first run or
// when the payload is unreadable.
func NewService(ctx context.Context, store db.AnalyticsStore, sessions session.Store) *Service {
	data, err := store.LoadAnalytics(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to load analytics, starting empty")
		data = models.NewAnalyticsData()
	}
	if data.Cars == nil {
		data.Cars = make(map[string]models.CarAnalytics)
	}
	return &Service{data: data, store: store, sessions: sessions}
}

// RecordSiteVisit increments the visit counter at most once per session. The
// session marker lives in its own store, never in the durable counters.
func (s *Service) RecordSiteVisit(ctx context.Context, sessionID string) {
	first, err := s.sessions.MarkVisit(ctx, sessionID)
	if err != nil {
		log.WithError(err).Warn("Failed to check session visit marker")
		return
	}
	if !first {
		return
	}
	s.mu.Lock()
	s.data.SiteVisits++
	s.mu.Unlock()
	if err := s.store.IncrementSiteVisit(ctx); err != nil {
		log.WithError(err).Warn("Failed to persist site visit")
	}
}

// RecordView increments the car's view counter, the global total and the
// last-viewed timestamp.
func (s *Service) RecordView(ctx context.Context, carID string) {
	now := time.Now().UTC()
	s.mu.Lock()
	entry := s.data.Cars[carID]
	entry.Views++
	entry.LastViewed = &now
	s.data.Cars[carID] = entry
	s.data.TotalViews++
	s.mu.Unlock()
	if err := s.store.IncrementView(ctx, carID, now); err != nil {
		log.WithError(err).WithField("car_id", carID).Warn("Failed to persist view")
	}
}

// RecordInquiry increments the car's inquiry counter and the global total.
func (s *Service) RecordInquiry(ctx context.Context, carID string) {
	s.mu.Lock()
	entry := s.data.Cars[carID]
	entry.Inquiries++
	s.data.Cars[carID] = entry
	s.data.TotalInquiries++
	s.mu.Unlock()
	if err := s.store.IncrementInquiry(ctx, carID); err != nil {
		log.WithError(err).WithField("car_id", carID).Warn("Failed to persist inquiry")
	}
}

// Counters returns the car's counters, zero-valued when it has no activity.
func (s *Service) Counters(carID string) models.CarAnalytics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Cars[carID]
}

// Snapshot returns a copy of the full counter state.
func (s *Service) Snapshot() models.AnalyticsData {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.data
	out.Cars = make(map[string]models.CarAnalytics, len(s.data.Cars))
	for id, entry := range s.data.Cars {
		out.Cars[id] = entry
	}
	return out
}

// TopViewed ranks cars by views, descending. Ties break by car id so the
// order is stable across calls.
func (s *Service) TopViewed(limit int) []models.ViewCount {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	s.mu.Lock()
	ranked := make([]models.ViewCount, 0, len(s.data.Cars))
	for id, entry := range s.data.Cars {
		ranked = append(ranked, models.ViewCount{CarID: id, Views: entry.Views})
	}
	s.mu.Unlock()
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Views != ranked[j].Views {
			return ranked[i].Views > ranked[j].Views
		}
		return ranked[i].CarID < ranked[j].CarID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TopInquired ranks cars by inquiries, descending, excluding cars nobody has
// inquired about.
func (s *Service) TopInquired(limit int) []models.InquiryCount {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	s.mu.Lock()
	ranked := make([]models.InquiryCount, 0, len(s.data.Cars))
	for id, entry := range s.data.Cars {
		if entry.Inquiries > 0 {
			ranked = append(ranked, models.InquiryCount{CarID: id, Inquiries: entry.Inquiries})
		}
	}
	s.mu.Unlock()
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Inquiries != ranked[j].Inquiries {
			return ranked[i].Inquiries > ranked[j].Inquiries
		}
		return ranked[i].CarID < ranked[j].CarID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Reset clears every counter, in memory and in the store.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	s.data = models.NewAnalyticsData()
	s.mu.Unlock()
	if err := s.store.ResetAnalytics(ctx); err != nil {
		log.WithError(err).Warn("Failed to persist analytics reset")
	}
}

// Reload replaces the in-memory snapshot with the persisted counters. Invoked
// on external-write notifications so concurrent sessions converge.
func (s *Service) Reload(ctx context.Context) {
	data, err := s.store.LoadAnalytics(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to reload analytics after external write")
		return
	}
	if data.Cars == nil {
		data.Cars = make(map[string]models.CarAnalytics)
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
}

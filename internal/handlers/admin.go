package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/billyautos/showroom/internal/analytics"
	"github.com/billyautos/showroom/internal/fleet"
	"github.com/billyautos/showroom/internal/models"
)

// AdminHandler serves the fleet manager and the analytics dashboard.
type AdminHandler struct {
	fleet     *fleet.Service
	analytics *analytics.Service
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(fleetSvc *fleet.Service, analyticsSvc *analytics.Service) *AdminHandler {
	return &AdminHandler{fleet: fleetSvc, analytics: analyticsSvc}
}

// CreateCar handles POST /api/admin/cars. The id is assigned server-side.
func (h *AdminHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	var fields models.Car
	if err := json.Unmarshal(body, &fields); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	car := h.fleet.Create(r.Context(), fields)
	writeJSON(w, http.StatusCreated, toCarResponse(car))
}

// UpdateCar handles PUT /api/admin/cars/{id}. Fields present in the body are
// merged into the existing record; the merged record then replaces it whole.
func (h *AdminHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, ok := h.fleet.FindByID(id)
	if !ok {
		http.Error(w, "Car not found", http.StatusNotFound)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	merged := existing
	if err := json.Unmarshal(body, &merged); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.fleet.Update(r.Context(), id, merged); err != nil {
		if errors.Is(err, fleet.ErrNotFound) {
			http.Error(w, "Car not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update car", http.StatusInternalServerError)
		return
	}
	updated, _ := h.fleet.FindByID(id)
	writeJSON(w, http.StatusOK, toCarResponse(updated))
}

// DeleteCar handles DELETE /api/admin/cars/{id}. Deleting an absent id
// succeeds; the operation is idempotent.
func (h *AdminHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	h.fleet.Delete(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// dashboardResponse is the analytics tab's payload.
type dashboardResponse struct {
	TotalViews     int                   `json:"totalViews"`
	TotalInquiries int                   `json:"totalInquiries"`
	SiteVisits     int                   `json:"siteVisits"`
	TopViewed      []models.ViewCount    `json:"topViewed"`
	TopInquired    []models.InquiryCount `json:"topInquired"`
}

// Analytics handles GET /api/admin/analytics.
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	snapshot := h.analytics.Snapshot()
	writeJSON(w, http.StatusOK, dashboardResponse{
		TotalViews:     snapshot.TotalViews,
		TotalInquiries: snapshot.TotalInquiries,
		SiteVisits:     snapshot.SiteVisits,
		TopViewed:      h.analytics.TopViewed(0),
		TopInquired:    h.analytics.TopInquired(0),
	})
}

// ResetAnalytics handles POST /api/admin/analytics/reset.
func (h *AdminHandler) ResetAnalytics(w http.ResponseWriter, r *http.Request) {
	h.analytics.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

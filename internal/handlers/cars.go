// Package handlers exposes the showroom over HTTP.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/billyautos/showroom/internal/analytics"
	"github.com/billyautos/showroom/internal/fleet"
	"github.com/billyautos/showroom/internal/models"
)

// carResponse is a car as served to visitors: the record plus the rendered
// price, so a zero price always reads "P.O.A." and never "$0".
type carResponse struct {
	models.Car
	DisplayPrice string `json:"displayPrice"`
}

func toCarResponse(car models.Car) carResponse {
	return carResponse{Car: car, DisplayPrice: car.DisplayPrice()}
}

func toCarResponses(cars []models.Car) []carResponse {
	out := make([]carResponse, len(cars))
	for i, car := range cars {
		out[i] = toCarResponse(car)
	}
	return out
}

// CarHandler serves the public catalog.
type CarHandler struct {
	fleet     *fleet.Service
	analytics *analytics.Service
	phone     string
}

// NewCarHandler creates a new catalog handler. phone is the dealership's
// WhatsApp number.
func NewCarHandler(fleetSvc *fleet.Service, analyticsSvc *analytics.Service, phone string) *CarHandler {
	return &CarHandler{fleet: fleetSvc, analytics: analyticsSvc, phone: phone}
}

// List handles GET /api/cars. The query parameters make, bodyType, year and
// status each constrain the result unless absent or "all".
func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria := fleet.CriteriaFromQuery(r.URL.Query())
	cars := h.fleet.Filtered(criteria)
	writeJSON(w, http.StatusOK, toCarResponses(cars))
}

// Featured handles GET /api/cars/featured.
func (h *CarHandler) Featured(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCarResponses(h.fleet.Featured()))
}

// Facets handles GET /api/cars/facets.
func (h *CarHandler) Facets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.fleet.Facets())
}

// Get handles GET /api/cars/{id}. Serving a detail view records a view for
// the car.
func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	car, ok := h.fleet.FindByID(id)
	if !ok {
		http.Error(w, "Car not found", http.StatusNotFound)
		return
	}
	h.analytics.RecordView(r.Context(), id)
	writeJSON(w, http.StatusOK, toCarResponse(car))
}

// Inquire handles POST /api/cars/{id}/inquiry. It records the inquiry and
// returns the WhatsApp deep link carrying year, make and model. Sold cars do
// not take inquiries.
func (h *CarHandler) Inquire(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	car, ok := h.fleet.FindByID(id)
	if !ok {
		http.Error(w, "Car not found", http.StatusNotFound)
		return
	}
	if car.Status == models.StatusSold {
		http.Error(w, "Car is sold", http.StatusConflict)
		return
	}
	h.analytics.RecordInquiry(r.Context(), id)
	writeJSON(w, http.StatusOK, map[string]string{
		"whatsappUrl": models.WhatsAppLink(h.phone, &car),
	})
}

// Contact handles GET /api/contact/whatsapp, the site widget's general
// greeting link.
func (h *CarHandler) Contact(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"whatsappUrl": models.WhatsAppGreetingLink(h.phone),
	})
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(value)
}

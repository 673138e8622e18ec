package handlers

import (
	"net/http"

	"github.com/billyautos/showroom/internal/favorites"
	"github.com/billyautos/showroom/internal/fleet"
	"github.com/billyautos/showroom/internal/middleware"
)

// FavoritesHandler serves the visitor's saved-cars set, scoped by session.
type FavoritesHandler struct {
	favorites *favorites.Service
	fleet     *fleet.Service
}

// NewFavoritesHandler creates a new favorites handler.
func NewFavoritesHandler(favoritesSvc *favorites.Service, fleetSvc *fleet.Service) *FavoritesHandler {
	return &FavoritesHandler{favorites: favoritesSvc, fleet: fleetSvc}
}

// List handles GET /api/favorites.
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusBadRequest)
		return
	}
	ids := h.favorites.List(r.Context(), owner)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ids":   ids,
		"count": len(ids),
	})
}

// Cars handles GET /api/favorites/cars, the derived saved-cars view. Ids
// whose car was deleted are dropped, never an error.
func (h *FavoritesHandler) Cars(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusBadRequest)
		return
	}
	cars := h.favorites.Cars(r.Context(), owner, h.fleet)
	writeJSON(w, http.StatusOK, toCarResponses(cars))
}

// Add handles POST /api/favorites/{id}. Adding twice does not duplicate.
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusBadRequest)
		return
	}
	h.favorites.Add(r.Context(), owner, r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// Remove handles DELETE /api/favorites/{id}.
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusBadRequest)
		return
	}
	h.favorites.Remove(r.Context(), owner, r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// Toggle handles POST /api/favorites/{id}/toggle and reports the new
// membership state.
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")
	h.favorites.Toggle(r.Context(), owner, id)
	writeJSON(w, http.StatusOK, map[string]bool{
		"favorite": h.favorites.IsFavorite(r.Context(), owner, id),
	})
}

// Clear handles DELETE /api/favorites.
func (h *FavoritesHandler) Clear(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusBadRequest)
		return
	}
	h.favorites.Clear(r.Context(), owner)
	w.WriteHeader(http.StatusNoContent)
}

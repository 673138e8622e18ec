package handlers

import (
	"net/http"

	"github.com/billyautos/showroom/internal/middleware"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Cars      *CarHandler
	Admin     *AdminHandler
	Favorites *FavoritesHandler
	Auth      *AuthHandler
	Visits    *VisitHandler

	AuthMiddleware    *middleware.AuthMiddleware
	SessionMiddleware *middleware.SessionMiddleware
	RateLimit         *middleware.RateLimitMiddleware
}

// NewRouter assembles the route table and middleware chain.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/cars", deps.Cars.List)
	mux.HandleFunc("GET /api/cars/featured", deps.Cars.Featured)
	mux.HandleFunc("GET /api/cars/facets", deps.Cars.Facets)
	mux.HandleFunc("GET /api/cars/{id}", deps.Cars.Get)
	mux.HandleFunc("POST /api/cars/{id}/inquiry", deps.Cars.Inquire)
	mux.HandleFunc("GET /api/contact/whatsapp", deps.Cars.Contact)

	mux.HandleFunc("GET /api/favorites", deps.Favorites.List)
	mux.HandleFunc("DELETE /api/favorites", deps.Favorites.Clear)
	mux.HandleFunc("GET /api/favorites/cars", deps.Favorites.Cars)
	mux.HandleFunc("POST /api/favorites/{id}", deps.Favorites.Add)
	mux.HandleFunc("DELETE /api/favorites/{id}", deps.Favorites.Remove)
	mux.HandleFunc("POST /api/favorites/{id}/toggle", deps.Favorites.Toggle)

	mux.HandleFunc("POST /api/visit", deps.Visits.Record)

	loginLimit := deps.RateLimit.RateLimit(5, 900)
	mux.Handle("POST /api/auth/login", loginLimit(http.HandlerFunc(deps.Auth.Login)))

	admin := func(h http.HandlerFunc) http.Handler {
		return deps.AuthMiddleware.RequireAdmin(h)
	}
	mux.Handle("POST /api/admin/cars", admin(deps.Admin.CreateCar))
	mux.Handle("PUT /api/admin/cars/{id}", admin(deps.Admin.UpdateCar))
	mux.Handle("DELETE /api/admin/cars/{id}", admin(deps.Admin.DeleteCar))
	mux.Handle("GET /api/admin/analytics", admin(deps.Admin.Analytics))
	mux.Handle("POST /api/admin/analytics/reset", admin(deps.Admin.ResetAnalytics))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	var handler http.Handler = mux
	handler = deps.AuthMiddleware.Authenticate(handler)
	handler = deps.SessionMiddleware.EnsureSession(handler)
	return handler
}

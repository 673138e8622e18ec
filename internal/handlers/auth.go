package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/billyautos/showroom/internal/analytics"
	"github.com/billyautos/showroom/internal/auth"
	"github.com/billyautos/showroom/internal/middleware"
	"github.com/billyautos/showroom/internal/models"
)

// AuthHandler handles admin login requests.
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/auth/login. Failures come back as an inline 401
// message; the endpoint sits behind the per-IP rate limit.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var loginReq models.LoginRequest
	if err := json.Unmarshal(body, &loginReq); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if loginReq.Username == "" || loginReq.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	if err := h.authService.Authenticate(loginReq.Username, loginReq.Password); err != nil {
		http.Error(w, "Invalid credentials. Access denied.", http.StatusUnauthorized)
		return
	}

	token, err := h.authService.GenerateToken(loginReq.Username)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}
	refreshToken, err := h.authService.GenerateRefreshToken()
	if err != nil {
		http.Error(w, "Failed to generate refresh token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		Username:     loginReq.Username,
		Role:         models.RoleAdmin,
	})
}

// VisitHandler records deduplicated site visits.
type VisitHandler struct {
	analytics *analytics.Service
}

// NewVisitHandler creates a new visit handler.
func NewVisitHandler(analyticsSvc *analytics.Service) *VisitHandler {
	return &VisitHandler{analytics: analyticsSvc}
}

// Record handles POST /api/visit. The increment lands at most once per
// session; repeats within the same session are suppressed.
func (h *VisitHandler) Record(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusBadRequest)
		return
	}
	h.analytics.RecordSiteVisit(r.Context(), sessionID)
	w.WriteHeader(http.StatusNoContent)
}

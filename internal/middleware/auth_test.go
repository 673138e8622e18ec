package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billyautos/showroom/internal/auth"
)

func newAuthMiddleware(t *testing.T) (*AuthMiddleware, string) {
	t.Helper()
	hash, err := auth.HashPassword("letmein")
	require.NoError(t, err)
	svc := auth.NewService("test-secret", time.Hour, "admin", hash)
	token, err := svc.GenerateToken("admin")
	require.NoError(t, err)
	return NewAuthMiddleware(svc), token
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_PublicRoutePassesThrough(t *testing.T) {
	mw, _ := newAuthMiddleware(t)
	handler := mw.Authenticate(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/cars", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_AdminRouteWithoutToken(t *testing.T) {
	mw, _ := newAuthMiddleware(t)
	handler := mw.Authenticate(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/analytics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_AdminRouteWithValidToken(t *testing.T) {
	mw, token := newAuthMiddleware(t)

	var sawClaims bool
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawClaims = GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/analytics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sawClaims, "claims should be on the request context")
}

func TestAuthenticate_AdminRouteWithInvalidToken(t *testing.T) {
	mw, _ := newAuthMiddleware(t)
	handler := mw.Authenticate(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/cars", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_WithoutClaims(t *testing.T) {
	mw, _ := newAuthMiddleware(t)
	handler := mw.RequireAdmin(okHandler())

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/cars/car-1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_WithAdminClaims(t *testing.T) {
	mw, token := newAuthMiddleware(t)
	handler := mw.Authenticate(mw.RequireAdmin(okHandler()))

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/cars/car-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_BlocksAfterMax(t *testing.T) {
	mw := NewRateLimitMiddleware()
	handler := mw.RateLimit(3, 60)(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimit_TracksClientsSeparately(t *testing.T) {
	mw := NewRateLimitMiddleware()
	handler := mw.RateLimit(1, 60)(okHandler())

	for i, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = fmt.Sprintf("%s:%d", ip, 40000+i)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "first request from %s should pass", ip)
	}
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.10:52000"
	assert.Equal(t, "192.168.1.10", getClientIP(req))

	req.Header.Set("X-Real-IP", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.4, 203.0.113.7")
	assert.Equal(t, "198.51.100.4", getClientIP(req))
}

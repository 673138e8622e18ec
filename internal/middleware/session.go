package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

const (
	// SessionCookie is the cookie carrying the visitor's session id.
	SessionCookie = "showroom_session"

	SessionContextKey contextKey = "session"
)

// SessionMiddleware assigns each visitor a session id cookie and exposes it
// through the request context. Favorites ownership and the per-session
// site-visit dedup both key off this id.
type SessionMiddleware struct{}

// NewSessionMiddleware creates a new session middleware.
func NewSessionMiddleware() *SessionMiddleware {
	return &SessionMiddleware{}
}

// EnsureSession reads the session cookie, minting one when absent.
func (m *SessionMiddleware) EnsureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		} else {
			sessionID = newSessionID()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), SessionContextKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionFromContext extracts the session id from request context.
func GetSessionFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionContextKey).(string)
	return id, ok && id != ""
}

func newSessionID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "anonymous"
	}
	return hex.EncodeToString(bytes)
}

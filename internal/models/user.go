package models

// Role represents the access level carried by a session token.
type Role string

const (
	// RoleAdmin grants access to the fleet manager and analytics endpoints.
	RoleAdmin Role = "admin"
)

// LoginRequest represents an admin login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login response.
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	Role         Role   `json:"role"`
}

// Claims represents the JWT claims attached to an authenticated request.
type Claims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Exp      int64  `json:"exp"`
}

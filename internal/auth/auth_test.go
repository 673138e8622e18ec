package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/billyautos/showroom/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := HashPassword("showroom-secret-1")
	assert.NoError(t, err)
	return NewService("test-secret", time.Hour, "admin", hash)
}

func TestNewService_DefaultExpiry(t *testing.T) {
	service := NewService("secret", 0, "admin", "hash")
	assert.Equal(t, 24*time.Hour, service.tokenExp)
}

func TestHashPassword(t *testing.T) {
	password := "testpassword123"
	hash, err := HashPassword(password)

	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
}

func TestService_Authenticate(t *testing.T) {
	service := newTestService(t)

	assert.NoError(t, service.Authenticate("admin", "showroom-secret-1"))
	assert.ErrorIs(t, service.Authenticate("admin", "wrongpassword"), ErrInvalidCredentials)
	assert.ErrorIs(t, service.Authenticate("someone", "showroom-secret-1"), ErrInvalidCredentials)
}

func TestService_GenerateToken(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateToken("admin")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestService_ValidateToken(t *testing.T) {
	service := newTestService(t)

	token, _ := service.GenerateToken("admin")

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	// Bearer prefix is tolerated
	claims, err = service.ValidateToken("Bearer " + token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestService_ValidateToken_Invalid(t *testing.T) {
	service := newTestService(t)

	_, err := service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token signed with a different secret
	other := NewService("other-secret", time.Hour, "admin", "hash")
	token, _ := other.GenerateToken("admin")
	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_ValidateToken_Expired(t *testing.T) {
	service := NewService("test-secret", -time.Hour, "admin", "hash")

	token, _ := service.GenerateToken("admin")
	_, err := service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestService_GenerateRefreshToken(t *testing.T) {
	service := newTestService(t)

	first, err := service.GenerateRefreshToken()
	assert.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := service.GenerateRefreshToken()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestService_ExtractTokenFromHeader(t *testing.T) {
	service := newTestService(t)

	token, err := service.ExtractTokenFromHeader("Bearer abc123")
	assert.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = service.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = service.ExtractTokenFromHeader("Basic abc123")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = service.ExtractTokenFromHeader("Bearer")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
)

// Claims are the session claims carried by a bearer token.
type Claims struct {
	UserID uuid.UUID   `json:"uid"`
	Role   entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates session tokens.
type TokenService interface {
	// GenerateToken creates a signed session token for the account.
	GenerateToken(userID uuid.UUID, role entity.Role) (string, error)

	// ValidateToken parses tokenString and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)

	// TokenTTL returns the lifetime of issued tokens.
	TokenTTL() time.Duration
}

package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT access tokens.
type JWTService interface {
	// GenerateToken creates a signed access token whose subject is the
	// user's email address.
	GenerateToken(ctx context.Context, email string) (string, error)

	// ValidateToken validates the token signature and time claims and
	// extracts the claims. A token without a subject is still returned;
	// callers decide whether that is acceptable.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the claims carried by an access token.
type Claims struct {
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken covers bad signatures, foreign algorithms, malformed input and bad subjects.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned once the current time reaches the expiry claim.
	ErrExpiredToken = errors.New("token expired")
)

// Claims are the registered claims carried by an access token.
// Privilege is deliberately absent; it is resolved from the store per request.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless bearer tokens.
type TokenService interface {
	// Issue signs a token whose subject is userID and whose expiry is now + TTL.
	Issue(userID uuid.UUID) (string, error)

	// Verify returns the subject of a valid token, or ErrInvalidToken / ErrExpiredToken.
	Verify(tokenString string) (uuid.UUID, error)

	// TTL returns the validity window of issued tokens.
	TTL() time.Duration
}

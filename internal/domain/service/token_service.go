package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by both token kinds. SessionID is
// only set on refresh tokens and ties the token to its server-side session.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	Phone     string
	Roles     []string
	SessionID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// Access and refresh tokens are signed with independent secrets, so a token
// of one kind never verifies as the other.
type TokenService interface {
	// IssueAccessToken creates a short-lived access token for a user.
	IssueAccessToken(userID uuid.UUID, email, phone string, roles []string) (string, error)

	// IssueRefreshToken creates a refresh token bound to a session ID and
	// returns the token together with its expiry.
	IssueRefreshToken(userID uuid.UUID, email, phone string, roles []string, sessionID uuid.UUID) (token string, expiresAt time.Time, err error)

	// VerifyAccessToken checks signature and expiry against the access secret.
	VerifyAccessToken(tokenString string) (*Claims, error)

	// VerifyRefreshToken checks signature and expiry against the refresh secret.
	VerifyRefreshToken(tokenString string) (*Claims, error)

	// HashToken produces the digest under which a refresh token is stored.
	// Raw refresh tokens are never persisted.
	HashToken(tokenString string) string

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}

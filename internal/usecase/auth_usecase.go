// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"bistro/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// LoginInput defines the data required to log in. Identifier accepts either
// the email or the phone number.
type LoginInput struct {
	Identifier  string
	Password    string
	ClientIP    string
	ClientAgent string
}

// RefreshInput carries the raw refresh token presented for rotation.
type RefreshInput struct {
	RefreshToken string
	ClientIP     string
	ClientAgent  string
}

// LogoutInput carries the raw refresh token to revoke.
type LogoutInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's public information.
type RegisterOutput struct {
	User *entity.PublicUser
}

// TokenPairOutput returns a freshly issued access/refresh token pair.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.PublicUser
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates a new customer account. A colliding email or phone
	// yields ErrDuplicateIdentity without revealing which field collided.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials and opens a new refresh session. Unknown
	// identifier and wrong password produce the identical error.
	Login(ctx context.Context, input *LoginInput) (*TokenPairOutput, error)

	// Refresh rotates a refresh token: the presented token is revoked and a
	// new pair is issued. Each token redeems at most once.
	Refresh(ctx context.Context, input *RefreshInput) (*TokenPairOutput, error)

	// Logout revokes the session behind the presented token. It never fails
	// on unknown or already revoked tokens.
	Logout(ctx context.Context, input *LogoutInput) error

	// CleanupExpiredSessions removes sessions past their expiry.
	CleanupExpiredSessions(ctx context.Context) error
}

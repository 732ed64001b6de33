package repository

import (
	"context"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for session persistence.
var (
	// ErrSessionNotFound is returned when no usable session matches a lookup.
	// Revoked and expired sessions are deliberately indistinguishable from
	// missing ones.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionAlreadyRevoked is returned when a conditional revoke finds the
	// session already spent.
	ErrSessionAlreadyRevoked = errors.New("session already revoked")
)

// SessionRepository defines the interface for refresh session management.
// Sessions store only a digest of the refresh token, never the raw token.
type SessionRepository interface {
	// CreateSession persists a new refresh session.
	CreateSession(ctx context.Context, session *entity.Session) error

	// FindActiveSession retrieves the session for a user and token hash that is
	// neither revoked nor expired. Any other state yields ErrSessionNotFound.
	FindActiveSession(ctx context.Context, userID uuid.UUID, tokenHash string) (*entity.Session, error)

	// RevokeSession marks a session revoked only if it is not revoked yet.
	// Returns ErrSessionAlreadyRevoked when another caller got there first,
	// which makes token rotation single-use under concurrency.
	RevokeSession(ctx context.Context, id uuid.UUID) error

	// RevokeSessionByHash marks the matching session revoked. It is a silent
	// no-op when no session matches, so logout stays idempotent.
	RevokeSessionByHash(ctx context.Context, userID uuid.UUID, tokenHash string) error

	// DeleteExpiredSessions removes sessions past their expiry. Called
	// periodically for cleanup.
	DeleteExpiredSessions(ctx context.Context) error
}

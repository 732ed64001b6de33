package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record of one issued refresh token. Only a
// SHA-256 hash of the raw token is kept; the raw string exists nowhere at rest.
// Records are append-only apart from the single false->true revoke transition.
type Session struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	TokenHash   string
	ClientIP    string
	ClientAgent string
	IsRevoked   bool
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Usable reports whether the session may still redeem a refresh.
// A session is usable iff it has not been revoked and has not expired.
func (s *Session) Usable(now time.Time) bool {
	return s != nil && !s.IsRevoked && now.Before(s.ExpiresAt)
}

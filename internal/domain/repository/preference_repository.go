package repository

import (
	"context"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
)

// PreferenceRepository defines the interface for per-user preference storage.
type PreferenceRepository interface {
	// FindPreferenceByUserID retrieves a user's preference record, creating an
	// empty one if none exists yet.
	FindPreferenceByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserPreference, error)

	// SavePreference persists the preference record.
	SavePreference(ctx context.Context, pref *entity.UserPreference) error
}

package usecase

import (
	"context"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput defines the profile fields a user may change. Nil fields
// are left untouched.
type UpdateProfileInput struct {
	Name  *string
	Email *string
	Phone *string
}

// PreferencesOutput is the API shape of a user's preferences.
type PreferencesOutput struct {
	FavoriteItemIDs []uuid.UUID `json:"favoriteItemIds"`
	DietaryTags     []string    `json:"dietaryTags"`
}

// ProfileUsecase defines the interface for self-service account operations.
type ProfileUsecase interface {
	// GetProfile returns the caller's public profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error)

	// UpdateProfile changes the caller's profile fields.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.PublicUser, error)

	// GetPreferences returns the caller's ordering preferences.
	GetPreferences(ctx context.Context, userID uuid.UUID) (*PreferencesOutput, error)

	// UpdateDietaryTags replaces the caller's dietary tag list.
	UpdateDietaryTags(ctx context.Context, userID uuid.UUID, tags []string) (*PreferencesOutput, error)

	// AddFavorite marks a menu item as a favourite. Adding an existing
	// favourite is a no-op.
	AddFavorite(ctx context.Context, userID, menuItemID uuid.UUID) (*PreferencesOutput, error)

	// RemoveFavorite unmarks a favourite. Removing an absent one is a no-op.
	RemoveFavorite(ctx context.Context, userID, menuItemID uuid.UUID) (*PreferencesOutput, error)
}

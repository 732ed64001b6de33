package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserPreference holds per-user ordering preferences: favourite dishes and
// dietary tags. A record is created lazily on first read or write.
type UserPreference struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	FavoriteItemIDs []uuid.UUID
	DietaryTags     []string
	UpdatedAt       time.Time
}

// HasFavorite reports whether the given menu item is already a favourite.
func (p *UserPreference) HasFavorite(itemID uuid.UUID) bool {
	for _, id := range p.FavoriteItemIDs {
		if id == itemID {
			return true
		}
	}

	return false
}

// AddFavorite appends the item if not already present.
func (p *UserPreference) AddFavorite(itemID uuid.UUID) {
	if !p.HasFavorite(itemID) {
		p.FavoriteItemIDs = append(p.FavoriteItemIDs, itemID)
	}
}

// RemoveFavorite drops the item if present.
func (p *UserPreference) RemoveFavorite(itemID uuid.UUID) {
	kept := p.FavoriteItemIDs[:0]
	for _, id := range p.FavoriteItemIDs {
		if id != itemID {
			kept = append(kept, id)
		}
	}
	p.FavoriteItemIDs = kept
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer's rating of a menu item. Each (menu item, user) pair
// carries at most one review; re-submitting replaces the previous one.
type Review struct {
	ID         uuid.UUID `json:"id"`
	MenuItemID uuid.UUID `json:"menuItemId"`
	UserID     uuid.UUID `json:"userId"`
	Rating     float64   `json:"rating"`
	Comment    string    `json:"comment"`
	Images     []string  `json:"images"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Reviewer is filled by list queries for display purposes.
	Reviewer *PublicUser `json:"reviewer,omitempty"`
}

// Validate enforces the rating bounds.
func (r *Review) Validate() error {
	if r.Rating < 0 || r.Rating > 5 {
		return ErrRatingOutOfRange
	}

	return nil
}

// RatingSummary is the aggregate recomputed after every review mutation.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

package repository

import (
	"context"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrReviewNotFound is returned when a review is not found.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository defines the interface for menu item reviews.
// Each (menu item, user) pair holds at most one review.
type ReviewRepository interface {
	// UpsertReview creates the review or replaces the caller's existing one
	// for the same menu item.
	UpsertReview(ctx context.Context, review *entity.Review) error

	// FindReview retrieves the review a user left on a menu item.
	FindReview(ctx context.Context, menuItemID, userID uuid.UUID) (*entity.Review, error)

	// ListReviewsByMenuItem returns a page of reviews for a menu item, newest
	// first, with reviewer info attached, plus the total count.
	ListReviewsByMenuItem(ctx context.Context, menuItemID uuid.UUID, page, limit int) ([]*entity.Review, int64, error)

	// DeleteReview removes a user's review of a menu item.
	DeleteReview(ctx context.Context, menuItemID, userID uuid.UUID) error

	// SummarizeRatings recomputes the rating aggregate for a menu item from
	// its remaining reviews.
	SummarizeRatings(ctx context.Context, menuItemID uuid.UUID) (entity.RatingSummary, error)

	// CountReviews returns the total number of reviews.
	CountReviews(ctx context.Context) (int64, error)
}

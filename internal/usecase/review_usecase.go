package usecase

import (
	"context"

	"bistro/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitReviewInput defines the data for creating or replacing a review.
type SubmitReviewInput struct {
	MenuItemID uuid.UUID
	UserID     uuid.UUID
	Rating     float64
	Comment    string
	Images     []string
}

// SubmitReviewOutput returns the stored review and the menu item's fresh
// rating aggregate.
type SubmitReviewOutput struct {
	Review  *entity.Review
	Summary entity.RatingSummary
}

// ListReviewsOutput is one page of reviews plus the total count.
type ListReviewsOutput struct {
	Reviews []*entity.Review
	Total   int64
	Page    int
	Limit   int
}

// ReviewUsecase defines the interface for menu item review operations.
type ReviewUsecase interface {
	// SubmitReview creates or replaces the caller's review of a menu item and
	// recomputes the item's rating aggregate in the same transaction.
	SubmitReview(ctx context.Context, input *SubmitReviewInput) (*SubmitReviewOutput, error)

	// ListReviews returns a page of reviews for a menu item, newest first.
	ListReviews(ctx context.Context, menuItemID uuid.UUID, page, limit int) (*ListReviewsOutput, error)

	// DeleteReview removes the caller's review and recomputes the aggregate.
	DeleteReview(ctx context.Context, menuItemID, userID uuid.UUID) (entity.RatingSummary, error)
}

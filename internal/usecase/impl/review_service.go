package impl

import (
	"context"
	"log/slog"

	deliverycontext "bistro/internal/delivery/context"
	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager  repository.TransactionManager
	reviewRepo repository.ReviewRepository
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for reviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	ReviewRepo repository.ReviewRepository
	Logger     *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:  params.TxManager,
		reviewRepo: params.ReviewRepo,
		logger:     params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitReview creates or replaces the caller's review and recomputes the
// item's rating aggregate. Upsert and recompute share one transaction so the
// aggregate can never drift from the reviews it summarizes.
func (srv *reviewService) SubmitReview(ctx context.Context, input *usecase.SubmitReviewInput) (*usecase.SubmitReviewOutput, error) {
	review := &entity.Review{
		MenuItemID: input.MenuItemID,
		UserID:     input.UserID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		Images:     input.Images,
	}
	if err := review.Validate(); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails(err.Error()), "review rejected")
	}

	var summary entity.RatingSummary
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		menuRepo := repoFactory.NewMenuItemRepository()
		reviewRepo := repoFactory.NewReviewRepository()

		if _, err := menuRepo.FindMenuItemByID(ctx, input.MenuItemID); err != nil {
			if errors.Is(err, repository.ErrMenuItemNotFound) {
				return errors.Wrap(domainerrors.ErrMenuItemNotFound, "review rejected")
			}

			return errors.Wrap(err, "failed to load menu item for review")
		}

		if err := reviewRepo.UpsertReview(ctx, review); err != nil {
			return errors.Wrap(err, "failed to upsert review")
		}

		var err error
		summary, err = reviewRepo.SummarizeRatings(ctx, input.MenuItemID)
		if err != nil {
			return errors.Wrap(err, "failed to summarize ratings")
		}

		if err := menuRepo.UpdateMenuItemRating(ctx, input.MenuItemID, summary); err != nil {
			return errors.Wrap(err, "failed to store rating aggregate")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Review submission failed", slog.Any("menuItemID", input.MenuItemID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute review transaction")
	}

	srv.log(ctx).Debug("Review stored",
		slog.Any("menuItemID", input.MenuItemID),
		slog.Float64("average", summary.Average),
		slog.Int("count", summary.Count))

	return &usecase.SubmitReviewOutput{Review: review, Summary: summary}, nil
}

// ListReviews returns a page of reviews for a menu item, newest first.
func (srv *reviewService) ListReviews(ctx context.Context, menuItemID uuid.UUID, page, limit int) (*usecase.ListReviewsOutput, error) {
	reviews, total, err := srv.reviewRepo.ListReviewsByMenuItem(ctx, menuItemID, page, limit)
	if err != nil {
		srv.log(ctx).Error("Failed to list reviews", slog.Any("menuItemID", menuItemID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return &usecase.ListReviewsOutput{
		Reviews: reviews,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

// DeleteReview removes the caller's review and recomputes the aggregate.
func (srv *reviewService) DeleteReview(ctx context.Context, menuItemID, userID uuid.UUID) (entity.RatingSummary, error) {
	var summary entity.RatingSummary
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		menuRepo := repoFactory.NewMenuItemRepository()
		reviewRepo := repoFactory.NewReviewRepository()

		if err := reviewRepo.DeleteReview(ctx, menuItemID, userID); err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return errors.Wrap(domainerrors.ErrReviewNotFound, "review delete failed")
			}

			return errors.Wrap(err, "failed to delete review")
		}

		var err error
		summary, err = reviewRepo.SummarizeRatings(ctx, menuItemID)
		if err != nil {
			return errors.Wrap(err, "failed to summarize ratings")
		}

		if err := menuRepo.UpdateMenuItemRating(ctx, menuItemID, summary); err != nil {
			return errors.Wrap(err, "failed to store rating aggregate")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Review deletion failed", slog.Any("menuItemID", menuItemID), slog.Any("error", err))

		return entity.RatingSummary{}, errors.Wrap(err, "failed to execute review delete transaction")
	}

	return summary, nil
}

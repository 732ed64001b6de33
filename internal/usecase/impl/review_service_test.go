package impl

import (
	"context"
	"testing"

	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	svc  usecase.ReviewUsecase
	menu *memMenuRepo
	item *entity.MenuItem
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	menu := newMemMenuRepo()
	reviews := newMemReviewRepo()
	factory := &memFactory{
		userRepo:    newMemUserRepo(),
		sessionRepo: newMemSessionRepo(),
		menuRepo:    menu,
		reviewRepo:  reviews,
		prefRepo:    newMemPrefRepo(),
	}

	item := &entity.MenuItem{Name: "Pad Thai", Price: 12.5, IsAvailable: true}
	require.NoError(t, menu.CreateMenuItem(context.Background(), item))

	svc := NewReviewService(ReviewServiceParams{
		TxManager:  &memTxManager{factory: factory},
		ReviewRepo: reviews,
		Logger:     newDiscardLogger(),
	})

	return &reviewFixture{svc: svc, menu: menu, item: item}
}

func TestReviewService_SubmitRecomputesAggregate(t *testing.T) {
	fx := newReviewFixture(t)
	ctx := context.Background()

	out, err := fx.svc.SubmitReview(ctx, &usecase.SubmitReviewInput{
		MenuItemID: fx.item.ID,
		UserID:     uuid.New(),
		Rating:     5,
		Comment:    "excellent",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RatingSummary{Average: 5, Count: 1}, out.Summary)

	out, err = fx.svc.SubmitReview(ctx, &usecase.SubmitReviewInput{
		MenuItemID: fx.item.ID,
		UserID:     uuid.New(),
		Rating:     4,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RatingSummary{Average: 4.5, Count: 2}, out.Summary)

	// The aggregate lands on the menu item itself.
	stored, err := fx.menu.FindMenuItemByID(ctx, fx.item.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, stored.Rate)
	assert.Equal(t, 2, stored.RateCount)
}

func TestReviewService_ResubmitReplaces(t *testing.T) {
	fx := newReviewFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := fx.svc.SubmitReview(ctx, &usecase.SubmitReviewInput{
		MenuItemID: fx.item.ID,
		UserID:     userID,
		Rating:     2,
	})
	require.NoError(t, err)

	out, err := fx.svc.SubmitReview(ctx, &usecase.SubmitReviewInput{
		MenuItemID: fx.item.ID,
		UserID:     userID,
		Rating:     4,
		Comment:    "better on a second visit",
	})
	require.NoError(t, err)

	// One review per user per item: the count stays at one.
	assert.Equal(t, entity.RatingSummary{Average: 4, Count: 1}, out.Summary)
}

func TestReviewService_SubmitValidation(t *testing.T) {
	fx := newReviewFixture(t)
	ctx := context.Background()

	_, err := fx.svc.SubmitReview(ctx, &usecase.SubmitReviewInput{
		MenuItemID: fx.item.ID,
		UserID:     uuid.New(),
		Rating:     6,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = fx.svc.SubmitReview(ctx, &usecase.SubmitReviewInput{
		MenuItemID: uuid.New(),
		UserID:     uuid.New(),
		Rating:     3,
	})
	assert.ErrorIs(t, err, domainerrors.ErrMenuItemNotFound)
}

func TestReviewService_DeleteRecomputesAggregate(t *testing.T) {
	fx := newReviewFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := fx.svc.SubmitReview(ctx, &usecase.SubmitReviewInput{MenuItemID: fx.item.ID, UserID: userID, Rating: 5})
	require.NoError(t, err)
	_, err = fx.svc.SubmitReview(ctx, &usecase.SubmitReviewInput{MenuItemID: fx.item.ID, UserID: uuid.New(), Rating: 3})
	require.NoError(t, err)

	summary, err := fx.svc.DeleteReview(ctx, fx.item.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, entity.RatingSummary{Average: 3, Count: 1}, summary)

	_, err = fx.svc.DeleteReview(ctx, fx.item.ID, userID)
	assert.ErrorIs(t, err, domainerrors.ErrReviewNotFound)
}

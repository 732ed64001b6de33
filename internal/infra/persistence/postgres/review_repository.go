package postgres

import (
	"context"
	"math"

	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reviewRepository implements the domain.ReviewRepository interface.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// UpsertReview creates the review or replaces the caller's existing one for
// the same menu item, relying on the (menu_item_id, user_id) unique index.
func (repo *reviewRepository) UpsertReview(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "menu_item_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"rating", "comment", "images", "updated_at",
			}),
		}).
		Create(reviewM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrMenuItemNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

// FindReview retrieves the review a user left on a menu item.
func (repo *reviewRepository) FindReview(ctx context.Context, menuItemID, userID uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	if err := repo.db.WithContext(ctx).
		Where("menu_item_id = ? AND user_id = ?", menuItemID, userID).
		First(&reviewM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toReviewDomain(&reviewM), nil
}

// ListReviewsByMenuItem returns a page of reviews for a menu item, newest
// first, with reviewer info preloaded.
func (repo *reviewRepository) ListReviewsByMenuItem(ctx context.Context, menuItemID uuid.UUID, page, limit int) ([]*entity.Review, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Where("menu_item_id = ?", menuItemID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	page, limit = normalizePage(page, limit)

	var reviewModels []*model.ReviewModel
	if err := query.
		Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviewModels).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	reviews := make([]*entity.Review, 0, len(reviewModels))
	for _, reviewM := range reviewModels {
		reviews = append(reviews, toReviewDomain(reviewM))
	}

	return reviews, total, nil
}

// DeleteReview removes a user's review of a menu item.
func (repo *reviewRepository) DeleteReview(ctx context.Context, menuItemID, userID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("menu_item_id = ? AND user_id = ?", menuItemID, userID).
		Delete(&model.ReviewModel{})
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

// SummarizeRatings recomputes the rating aggregate for a menu item. The
// average is rounded to two decimal places.
func (repo *reviewRepository) SummarizeRatings(ctx context.Context, menuItemID uuid.UUID) (entity.RatingSummary, error) {
	var row struct {
		Average float64
		Count   int64
	}
	if err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("menu_item_id = ?", menuItemID).
		Scan(&row).Error; err != nil {
		return entity.RatingSummary{}, errors.WithStack(err)
	}

	return entity.RatingSummary{
		Average: math.Round(row.Average*100) / 100,
		Count:   int(row.Count),
	}, nil
}

// CountReviews returns the total number of reviews.
func (repo *reviewRepository) CountReviews(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

// --- Mapper Functions ---

// toReviewDomain converts a GORM ReviewModel to a domain Review entity.
func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	review := &entity.Review{
		ID:         data.ID,
		MenuItemID: data.MenuItemID,
		UserID:     data.UserID,
		Rating:     data.Rating,
		Comment:    data.Comment,
		Images:     data.Images,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
	if data.User != nil {
		review.Reviewer = toUserDomain(data.User).Public()
	}

	return review
}

// fromReviewDomain converts a domain Review entity to a GORM ReviewModel.
func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:         data.ID,
		MenuItemID: data.MenuItemID,
		UserID:     data.UserID,
		Rating:     data.Rating,
		Comment:    data.Comment,
		Images:     datatypes.NewJSONSlice(data.Images),
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

package postgres

import (
	"context"
	"math"
	"time"

	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// menuItemRepository implements the domain.MenuItemRepository interface.
type menuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository is the constructor for menuItemRepository.
func NewMenuItemRepository(db *gorm.DB) repository.MenuItemRepository {
	return &menuItemRepository{db: db}
}

// CreateMenuItem persists a new menu item.
func (repo *menuItemRepository) CreateMenuItem(ctx context.Context, item *entity.MenuItem) error {
	itemM := fromMenuItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required menu item fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create menu item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// FindMenuItemByID retrieves a menu item by its unique ID.
func (repo *menuItemRepository) FindMenuItemByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var itemM model.MenuItemModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMenuItemNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toMenuItemDomain(&itemM), nil
}

// ListMenuItems returns a filtered page of menu items and the total match count.
func (repo *menuItemRepository) ListMenuItems(ctx context.Context, filter repository.MenuItemFilter) ([]*entity.MenuItem, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.MenuItemModel{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ? OR tags::text ILIKE ?", pattern, pattern, pattern)
	}
	if filter.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}
	if filter.ActiveDiscount {
		query = query.Where(activeDiscountCondition, time.Now(), time.Now())
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	page, limit := normalizePage(filter.Page, filter.Limit)

	var itemModels []*model.MenuItemModel
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&itemModels).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	items := make([]*entity.MenuItem, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toMenuItemDomain(itemM))
	}

	return items, total, nil
}

// UpdateMenuItem persists changes to an existing menu item.
func (repo *menuItemRepository) UpdateMenuItem(ctx context.Context, item *entity.MenuItem) error {
	itemM := fromMenuItemDomain(item)

	result := repo.db.WithContext(ctx).
		Model(&model.MenuItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"name":                    itemM.Name,
			"description":             itemM.Description,
			"category":                itemM.Category,
			"thumbnail":               itemM.Thumbnail,
			"images":                  itemM.Images,
			"tags":                    itemM.Tags,
			"type":                    itemM.Type,
			"is_available":            itemM.IsAvailable,
			"preparation_time":        itemM.PreparationTime,
			"portion":                 itemM.Portion,
			"ingredients":             itemM.Ingredients,
			"nutritional_information": itemM.NutritionalInformation,
			"price":                   itemM.Price,
			"discount_price":          itemM.DiscountPrice,
			"discount_start_at":       itemM.DiscountStartAt,
			"discount_end_at":         itemM.DiscountEndAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update menu item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMenuItemNotFound
	}

	return nil
}

// UpdateMenuItemRating stores a recomputed rating aggregate.
func (repo *menuItemRepository) UpdateMenuItemRating(ctx context.Context, id uuid.UUID, summary entity.RatingSummary) error {
	result := repo.db.WithContext(ctx).
		Model(&model.MenuItemModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rate":       summary.Average,
			"rate_count": summary.Count,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update menu item rating")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMenuItemNotFound
	}

	return nil
}

// DeleteMenuItem removes a menu item by its ID.
func (repo *menuItemRepository) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.MenuItemModel{})
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrMenuItemNotFound
	}

	return nil
}

// CountMenuItems returns the total number of menu items.
func (repo *menuItemRepository) CountMenuItems(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.MenuItemModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

// activeDiscountCondition matches items whose discount window covers the
// bound time. Open window bounds count as covering.
const activeDiscountCondition = "discount_price IS NOT NULL" +
	" AND (discount_start_at IS NULL OR discount_start_at <= ?)" +
	" AND (discount_end_at IS NULL OR discount_end_at >= ?)"

// MenuItemStats returns the platform average rating over rated items and the
// number of items discounted at the given time.
func (repo *menuItemRepository) MenuItemStats(ctx context.Context, now time.Time) (repository.MenuStats, error) {
	var average float64
	if err := repo.db.WithContext(ctx).
		Model(&model.MenuItemModel{}).
		Where("rate_count > 0").
		Select("COALESCE(AVG(rate), 0)").
		Scan(&average).Error; err != nil {
		return repository.MenuStats{}, errors.WithStack(err)
	}

	var discounted int64
	if err := repo.db.WithContext(ctx).
		Model(&model.MenuItemModel{}).
		Where(activeDiscountCondition, now, now).
		Count(&discounted).Error; err != nil {
		return repository.MenuStats{}, errors.WithStack(err)
	}

	return repository.MenuStats{
		AverageRating:   math.Round(average*100) / 100,
		DiscountedCount: discounted,
	}, nil
}

// --- Mapper Functions ---

// toMenuItemDomain converts a GORM MenuItemModel to a domain MenuItem entity.
func toMenuItemDomain(data *model.MenuItemModel) *entity.MenuItem {
	if data == nil {
		return nil
	}

	return &entity.MenuItem{
		ID:                     data.ID,
		Name:                   data.Name,
		Description:            data.Description,
		Category:               data.Category,
		Thumbnail:              data.Thumbnail,
		Images:                 data.Images,
		Tags:                   data.Tags,
		Type:                   data.Type,
		IsAvailable:            data.IsAvailable,
		PreparationTime:        data.PreparationTime,
		Portion:                data.Portion,
		Ingredients:            data.Ingredients,
		NutritionalInformation: data.NutritionalInformation,
		Rate:                   data.Rate,
		RateCount:              data.RateCount,
		Price:                  data.Price,
		DiscountPrice:          data.DiscountPrice,
		DiscountStartAt:        data.DiscountStartAt,
		DiscountEndAt:          data.DiscountEndAt,
		CreatedAt:              data.CreatedAt,
		UpdatedAt:              data.UpdatedAt,
	}
}

// fromMenuItemDomain converts a domain MenuItem entity to a GORM MenuItemModel.
func fromMenuItemDomain(data *entity.MenuItem) *model.MenuItemModel {
	if data == nil {
		return nil
	}

	return &model.MenuItemModel{
		ID:                     data.ID,
		Name:                   data.Name,
		Description:            data.Description,
		Category:               data.Category,
		Thumbnail:              data.Thumbnail,
		Images:                 datatypes.NewJSONSlice(data.Images),
		Tags:                   datatypes.NewJSONSlice(data.Tags),
		Type:                   data.Type,
		IsAvailable:            data.IsAvailable,
		PreparationTime:        data.PreparationTime,
		Portion:                data.Portion,
		Ingredients:            datatypes.NewJSONSlice(data.Ingredients),
		NutritionalInformation: datatypes.NewJSONSlice(data.NutritionalInformation),
		Rate:                   data.Rate,
		RateCount:              data.RateCount,
		Price:                  data.Price,
		DiscountPrice:          data.DiscountPrice,
		DiscountStartAt:        data.DiscountStartAt,
		DiscountEndAt:          data.DiscountEndAt,
		CreatedAt:              data.CreatedAt,
		UpdatedAt:              data.UpdatedAt,
	}
}

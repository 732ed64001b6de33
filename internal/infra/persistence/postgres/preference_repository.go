package postgres

import (
	"context"

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

// preferenceRepository implements the domain.PreferenceRepository interface.
type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository is the constructor for preferenceRepository.
func NewPreferenceRepository(db *gorm.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

// FindPreferenceByUserID retrieves a user's preference record. A missing
// record comes back as an empty one, so callers never see a not-found here.
func (repo *preferenceRepository) FindPreferenceByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserPreference, error) {
	var prefM model.PreferenceModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&prefM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.UserPreference{UserID: userID}, nil
		}

		return nil, errors.WithStack(err)
	}

	return toPreferenceDomain(&prefM), nil
}

// SavePreference persists the preference record, inserting or updating on the
// user_id unique index.
func (repo *preferenceRepository) SavePreference(ctx context.Context, pref *entity.UserPreference) error {
	prefM := fromPreferenceDomain(pref)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"favorite_item_ids", "dietary_tags", "updated_at",
			}),
		}).
		Create(prefM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save preference")
	}

	pref.ID = prefM.ID
	pref.UpdatedAt = prefM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toPreferenceDomain converts a GORM PreferenceModel to a domain UserPreference entity.
func toPreferenceDomain(data *model.PreferenceModel) *entity.UserPreference {
	if data == nil {
		return nil
	}

	return &entity.UserPreference{
		ID:              data.ID,
		UserID:          data.UserID,
		FavoriteItemIDs: data.FavoriteItemIDs,
		DietaryTags:     data.DietaryTags,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromPreferenceDomain converts a domain UserPreference entity to a GORM PreferenceModel.
func fromPreferenceDomain(data *entity.UserPreference) *model.PreferenceModel {
	if data == nil {
		return nil
	}

	return &model.PreferenceModel{
		ID:              data.ID,
		UserID:          data.UserID,
		FavoriteItemIDs: datatypes.NewJSONSlice(data.FavoriteItemIDs),
		DietaryTags:     datatypes.NewJSONSlice(data.DietaryTags),
		UpdatedAt:       data.UpdatedAt,
	}
}

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

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	prefRepo  repository.PreferenceRepository
	menuRepo  repository.MenuItemRepository
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	PrefRepo  repository.PreferenceRepository
	MenuRepo  repository.MenuItemRepository
	Logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		prefRepo:  params.PrefRepo,
		menuRepo:  params.MenuRepo,
		logger:    params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the caller's public profile.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error) {
	user, err := srv.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user.Public(), nil
}

// UpdateProfile changes the caller's profile fields.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.PublicUser, error) {
	var updated *entity.PublicUser
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "profile update failed")
			}

			return errors.Wrap(err, "failed to load user for profile update")
		}

		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Email != nil {
			user.Email = *input.Email
		}
		if input.Phone != nil {
			user.Phone = *input.Phone
		}

		if err := userRepo.UpdateUser(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateUser) {
				return errors.Wrap(domainerrors.ErrDuplicateIdentity, "profile update rejected")
			}

			return errors.Wrap(err, "failed to update profile")
		}

		updated = user.Public()

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	return updated, nil
}

// GetPreferences returns the caller's ordering preferences.
func (srv *profileService) GetPreferences(ctx context.Context, userID uuid.UUID) (*usecase.PreferencesOutput, error) {
	pref, err := srv.prefRepo.FindPreferenceByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load preferences")
	}

	return preferencesOutput(pref.FavoriteItemIDs, pref.DietaryTags), nil
}

// UpdateDietaryTags replaces the caller's dietary tag list.
func (srv *profileService) UpdateDietaryTags(ctx context.Context, userID uuid.UUID, tags []string) (*usecase.PreferencesOutput, error) {
	pref, err := srv.prefRepo.FindPreferenceByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load preferences")
	}

	pref.DietaryTags = tags
	if err := srv.prefRepo.SavePreference(ctx, pref); err != nil {
		srv.log(ctx).Error("Failed to save preferences", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to save preferences")
	}

	return preferencesOutput(pref.FavoriteItemIDs, pref.DietaryTags), nil
}

// AddFavorite marks a menu item as a favourite.
func (srv *profileService) AddFavorite(ctx context.Context, userID, menuItemID uuid.UUID) (*usecase.PreferencesOutput, error) {
	// The item must exist before it can be favourited.
	if _, err := srv.menuRepo.FindMenuItemByID(ctx, menuItemID); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrMenuItemNotFound, "favourite rejected")
		}

		return nil, errors.Wrap(err, "failed to check menu item for favourite")
	}

	pref, err := srv.prefRepo.FindPreferenceByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load preferences")
	}

	pref.AddFavorite(menuItemID)
	if err := srv.prefRepo.SavePreference(ctx, pref); err != nil {
		return nil, errors.Wrap(err, "failed to save preferences")
	}

	return preferencesOutput(pref.FavoriteItemIDs, pref.DietaryTags), nil
}

// RemoveFavorite unmarks a favourite.
func (srv *profileService) RemoveFavorite(ctx context.Context, userID, menuItemID uuid.UUID) (*usecase.PreferencesOutput, error) {
	pref, err := srv.prefRepo.FindPreferenceByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load preferences")
	}

	pref.RemoveFavorite(menuItemID)
	if err := srv.prefRepo.SavePreference(ctx, pref); err != nil {
		return nil, errors.Wrap(err, "failed to save preferences")
	}

	return preferencesOutput(pref.FavoriteItemIDs, pref.DietaryTags), nil
}

func preferencesOutput(favorites []uuid.UUID, tags []string) *usecase.PreferencesOutput {
	if favorites == nil {
		favorites = []uuid.UUID{}
	}
	if tags == nil {
		tags = []string{}
	}

	return &usecase.PreferencesOutput{
		FavoriteItemIDs: favorites,
		DietaryTags:     tags,
	}
}

package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bistro/internal/delivery/context"
	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// menuService implements the MenuUsecase interface.
type menuService struct {
	menuRepo repository.MenuItemRepository
	logger   *slog.Logger
}

// MenuServiceParams holds dependencies for menuService, injected by Fx.
type MenuServiceParams struct {
	fx.In

	MenuRepo repository.MenuItemRepository
	Logger   *slog.Logger
}

// NewMenuService is the constructor for menuService.
func NewMenuService(params MenuServiceParams) usecase.MenuUsecase {
	return &menuService{
		menuRepo: params.MenuRepo,
		logger:   params.Logger,
	}
}

func (srv *menuService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListMenuItems returns a filtered page of the catalogue with derived pricing.
func (srv *menuService) ListMenuItems(ctx context.Context, input *usecase.ListMenuInput) (*usecase.ListMenuOutput, error) {
	items, total, err := srv.menuRepo.ListMenuItems(ctx, repository.MenuItemFilter{
		Category:       input.Category,
		Type:           input.Type,
		Search:         input.Search,
		AvailableOnly:  input.AvailableOnly,
		ActiveDiscount: input.ActiveDiscount,
		MinPrice:       input.MinPrice,
		MaxPrice:       input.MaxPrice,
		Page:           input.Page,
		Limit:          input.Limit,
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list menu items", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list menu items")
	}

	now := time.Now()
	views := make([]*usecase.MenuItemView, 0, len(items))
	for _, item := range items {
		views = append(views, usecase.NewMenuItemView(item, now))
	}

	return &usecase.ListMenuOutput{
		Items: views,
		Total: total,
		Page:  input.Page,
		Limit: input.Limit,
	}, nil
}

// GetMenuItem returns a single item with derived pricing.
func (srv *menuService) GetMenuItem(ctx context.Context, id uuid.UUID) (*usecase.MenuItemView, error) {
	item, err := srv.menuRepo.FindMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrMenuItemNotFound, "menu item lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load menu item")
	}

	return usecase.NewMenuItemView(item, time.Now()), nil
}

// CreateMenuItem adds a dish to the catalogue.
func (srv *menuService) CreateMenuItem(ctx context.Context, input *usecase.SaveMenuItemInput) (*usecase.MenuItemView, error) {
	item := menuItemFromInput(input)
	if err := item.Validate(); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails(err.Error()), "menu item rejected")
	}

	if err := srv.menuRepo.CreateMenuItem(ctx, item); err != nil {
		srv.log(ctx).Error("Failed to create menu item", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create menu item")
	}

	srv.log(ctx).Info("Menu item created", slog.Any("itemID", item.ID), slog.String("name", item.Name))

	return usecase.NewMenuItemView(item, time.Now()), nil
}

// UpdateMenuItem replaces the writable fields of a dish.
func (srv *menuService) UpdateMenuItem(ctx context.Context, id uuid.UUID, input *usecase.SaveMenuItemInput) (*usecase.MenuItemView, error) {
	item := menuItemFromInput(input)
	item.ID = id
	if err := item.Validate(); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails(err.Error()), "menu item rejected")
	}

	if err := srv.menuRepo.UpdateMenuItem(ctx, item); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrMenuItemNotFound, "menu item update failed")
		}
		srv.log(ctx).Error("Failed to update menu item", slog.Any("itemID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update menu item")
	}

	// Re-read so the response reflects stored aggregates like the rating.
	updated, err := srv.menuRepo.FindMenuItemByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload menu item after update")
	}

	return usecase.NewMenuItemView(updated, time.Now()), nil
}

// DeleteMenuItem removes a dish.
func (srv *menuService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if err := srv.menuRepo.DeleteMenuItem(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return errors.Wrap(domainerrors.ErrMenuItemNotFound, "menu item delete failed")
		}
		srv.log(ctx).Error("Failed to delete menu item", slog.Any("itemID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete menu item")
	}

	srv.log(ctx).Info("Menu item deleted", slog.Any("itemID", id))

	return nil
}

func menuItemFromInput(input *usecase.SaveMenuItemInput) *entity.MenuItem {
	return &entity.MenuItem{
		Name:                   input.Name,
		Description:            input.Description,
		Category:               input.Category,
		Thumbnail:              input.Thumbnail,
		Images:                 input.Images,
		Tags:                   input.Tags,
		Type:                   input.Type,
		IsAvailable:            input.IsAvailable,
		PreparationTime:        input.PreparationTime,
		Portion:                input.Portion,
		Ingredients:            input.Ingredients,
		NutritionalInformation: input.Nutrients,
		Price:                  input.Price,
		DiscountPrice:          input.DiscountPrice,
		DiscountStartAt:        input.DiscountStartAt,
		DiscountEndAt:          input.DiscountEndAt,
	}
}

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"bistro/internal/delivery/http/response"
	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ListMenuRequest collects the query parameters of a catalogue listing.
type ListMenuRequest struct {
	Category   string   `query:"category"`
	Type       string   `query:"type"`
	Search     string   `query:"search"`
	Available  bool     `query:"available"`
	Discounted bool     `query:"discounted"`
	MinPrice   *float64 `query:"minPrice"`
	MaxPrice   *float64 `query:"maxPrice"`
	Page       int      `query:"page"`
	Limit      int      `query:"limit"`
}

// SaveMenuItemRequest is the payload for creating or replacing a dish.
type SaveMenuItemRequest struct {
	Name            string            `json:"name" validate:"required"`
	Description     string            `json:"description"`
	Category        string            `json:"category" validate:"required"`
	Thumbnail       string            `json:"thumbnail"`
	Images          []string          `json:"images"`
	Tags            []string          `json:"tags"`
	Type            string            `json:"type"`
	IsAvailable     bool              `json:"isAvailable"`
	PreparationTime string            `json:"preparationTime"`
	Portion         string            `json:"portion"`
	Ingredients     []string          `json:"ingredients"`
	Nutrients       []entity.Nutrient `json:"nutritionalInformation"`
	Price           float64           `json:"price" validate:"required,gt=0"`
	DiscountPrice   *float64          `json:"discountPrice"`
	DiscountStartAt *time.Time        `json:"discountStartAt"`
	DiscountEndAt   *time.Time        `json:"discountEndAt"`
}

// MenuHandler holds dependencies for catalogue handlers.
type MenuHandler struct {
	uc     usecase.MenuUsecase
	logger *slog.Logger
}

// NewMenuHandler is the constructor for MenuHandler, injected by Fx.
func NewMenuHandler(uc usecase.MenuUsecase, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{uc: uc, logger: logger}
}

// List returns a filtered page of the catalogue.
func (h *MenuHandler) List(c echo.Context) error {
	var input ListMenuRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu query")
	}

	output, err := h.uc.ListMenuItems(c.Request().Context(), &usecase.ListMenuInput{
		Category:       input.Category,
		Type:           input.Type,
		Search:         input.Search,
		AvailableOnly:  input.Available,
		ActiveDiscount: input.Discounted,
		MinPrice:       input.MinPrice,
		MaxPrice:       input.MaxPrice,
		Page:           input.Page,
		Limit:          input.Limit,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"items": output.Items,
		"total": output.Total,
		"page":  output.Page,
		"limit": output.Limit,
	}, "Menu items retrieved successfully")
}

// Get returns a single dish with derived pricing.
func (h *MenuHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	item, err := h.uc.GetMenuItem(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item, "Menu item retrieved successfully")
}

// Create adds a dish to the catalogue. Admin only.
func (h *MenuHandler) Create(c echo.Context) error {
	input, err := bindSaveMenuItem(c)
	if err != nil {
		return err
	}

	item, err := h.uc.CreateMenuItem(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, item, "Menu item created successfully")
}

// Update replaces the writable fields of a dish. Admin only.
func (h *MenuHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	input, err := bindSaveMenuItem(c)
	if err != nil {
		return err
	}

	item, err := h.uc.UpdateMenuItem(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item, "Menu item updated successfully")
}

// Delete removes a dish. Admin only.
func (h *MenuHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteMenuItem(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Menu item deleted"}, "Menu item deleted successfully")
}

func bindSaveMenuItem(c echo.Context) (*usecase.SaveMenuItemInput, error) {
	var input SaveMenuItemRequest
	if err := c.Bind(&input); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("invalid menu item payload"), "menu item binding failed")
	}
	if err := c.Validate(&input); err != nil {
		return nil, errors.WithStack(err)
	}

	return &usecase.SaveMenuItemInput{
		Name:            input.Name,
		Description:     input.Description,
		Category:        input.Category,
		Thumbnail:       input.Thumbnail,
		Images:          input.Images,
		Tags:            input.Tags,
		Type:            input.Type,
		IsAvailable:     input.IsAvailable,
		PreparationTime: input.PreparationTime,
		Portion:         input.Portion,
		Ingredients:     input.Ingredients,
		Nutrients:       input.Nutrients,
		Price:           input.Price,
		DiscountPrice:   input.DiscountPrice,
		DiscountStartAt: input.DiscountStartAt,
		DiscountEndAt:   input.DiscountEndAt,
	}, nil
}

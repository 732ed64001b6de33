package handler

import (
	"log/slog"
	"net/http"

	"bistro/internal/delivery/http/response"
	"bistro/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UpdateProfileRequest carries the profile fields a caller may change. Nil
// fields are left untouched.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
}

// DietaryTagsRequest replaces the caller's dietary tag list.
type DietaryTagsRequest struct {
	Tags []string `json:"tags"`
}

// UserHandler holds dependencies for self-service account handlers.
type UserHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger}
}

// GetProfile returns the caller's profile together with their preferences.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	prefs, err := h.uc.GetPreferences(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"profile":     profile,
		"preferences": prefs,
	}, "Profile retrieved successfully")
}

// UpdateProfile changes the caller's profile fields.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var input UpdateProfileRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile payload")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.uc.UpdateProfile(c.Request().Context(), userID, &usecase.UpdateProfileInput{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile updated successfully")
}

// GetPreferences returns the caller's ordering preferences.
func (h *UserHandler) GetPreferences(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	prefs, err := h.uc.GetPreferences(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, prefs, "Preferences retrieved successfully")
}

// UpdateDietaryTags replaces the caller's dietary tag list.
func (h *UserHandler) UpdateDietaryTags(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var input DietaryTagsRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid dietary tags payload")
	}

	prefs, err := h.uc.UpdateDietaryTags(c.Request().Context(), userID, input.Tags)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, prefs, "Dietary tags updated successfully")
}

// AddFavorite marks a menu item as one of the caller's favourites.
func (h *UserHandler) AddFavorite(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	itemID, err := pathUUID(c, "itemID")
	if err != nil {
		return err
	}

	prefs, err := h.uc.AddFavorite(c.Request().Context(), userID, itemID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, prefs, "Favourite added successfully")
}

// RemoveFavorite unmarks one of the caller's favourite menu items.
func (h *UserHandler) RemoveFavorite(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	itemID, err := pathUUID(c, "itemID")
	if err != nil {
		return err
	}

	prefs, err := h.uc.RemoveFavorite(c.Request().Context(), userID, itemID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, prefs, "Favourite removed successfully")
}

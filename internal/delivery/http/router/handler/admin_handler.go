package handler

import (
	"log/slog"
	"net/http"

	"bistro/internal/delivery/http/response"
	"bistro/internal/domain/entity"
	"bistro/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ListUsersRequest collects the query parameters of an admin user listing.
type ListUsersRequest struct {
	Role   string `query:"role"`
	Status string `query:"status"`
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// UpdateStatusRequest sets an account's status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active blocked"`
}

// UpdateRolesRequest replaces an account's role set.
type UpdateRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1"`
}

// AdminHandler holds dependencies for administrative handlers.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{uc: uc, logger: logger}
}

// ListUsers returns a filtered page of accounts.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	var input ListUsersRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user query")
	}

	output, err := h.uc.ListUsers(c.Request().Context(), &usecase.ListUsersInput{
		Role:   input.Role,
		Status: input.Status,
		Search: input.Search,
		Page:   input.Page,
		Limit:  input.Limit,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"users": output.Users,
		"total": output.Total,
		"page":  output.Page,
		"limit": output.Limit,
	}, "Users retrieved successfully")
}

// UpdateUserStatus activates or blocks an account.
func (h *AdminHandler) UpdateUserStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input UpdateStatusRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status payload")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.UpdateUserStatus(c.Request().Context(), id, entity.UserStatus(input.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User status updated successfully")
}

// UpdateUserRoles replaces an account's role set.
func (h *AdminHandler) UpdateUserRoles(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input UpdateRolesRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid roles payload")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.UpdateUserRoles(c.Request().Context(), id, input.Roles)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User roles updated successfully")
}

// Dashboard returns platform-wide counts and rating figures.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	output, err := h.uc.Dashboard(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Dashboard retrieved successfully")
}

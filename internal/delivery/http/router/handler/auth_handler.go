// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	httpmiddleware "bistro/internal/delivery/http/middleware"
	"bistro/internal/delivery/http/response"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/service"
	"bistro/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest carries either an email or a phone number as identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// TokenRequest carries a raw refresh token for rotation or revocation.
type TokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input RegisterRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output.User, "Account registered successfully")
}

// Login handles the credential login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input LoginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Identifier:  input.Identifier,
		Password:    input.Password,
		ClientIP:    c.RealIP(),
		ClientAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	body := tokenPairBody(output)
	body["user"] = output.User

	return response.Success(c, http.StatusOK, body, "Login successful")
}

// Refresh handles the token rotation request.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var input TokenRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh input")
	}
	if input.RefreshToken == "" {
		return errors.WithStack(domainerrors.ErrMissingToken)
	}

	output, err := h.uc.Refresh(c.Request().Context(), &usecase.RefreshInput{
		RefreshToken: input.RefreshToken,
		ClientIP:     c.RealIP(),
		ClientAgent:  c.Request().UserAgent(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenPairBody(output), "Token refreshed successfully")
}

// Logout revokes the presented refresh token's session. Unknown or already
// revoked tokens still answer 200.
func (h *AuthHandler) Logout(c echo.Context) error {
	var input TokenRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid logout input")
	}
	if input.RefreshToken == "" {
		return errors.WithStack(domainerrors.ErrMissingToken)
	}

	if err := h.uc.Logout(c.Request().Context(), &usecase.LogoutInput{RefreshToken: input.RefreshToken}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// Me echoes the identity carried by the verified access token.
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := c.Get(httpmiddleware.ContextKeyClaims).(*service.Claims)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing token claims")
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"userId": claims.UserID,
		"email":  claims.Email,
		"phone":  claims.Phone,
		"roles":  claims.Roles,
	}, "Profile claims retrieved successfully")
}

// AdminPing confirms the caller holds the admin role.
func (h *AuthHandler) AdminPing(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"message": "Welcome, admin"}, "Admin access confirmed")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// tokenPairBody carries the bare token pair. Login attaches the user on top;
// refresh answers with the pair alone.
func tokenPairBody(output *usecase.TokenPairOutput) map[string]any {
	return map[string]any{
		"accessToken":  output.AccessToken,
		"refreshToken": output.RefreshToken,
	}
}

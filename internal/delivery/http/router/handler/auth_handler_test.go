package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpmiddleware "bistro/internal/delivery/http/middleware"
	"bistro/internal/delivery/http/validator"
	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// stubAuthUsecase scripts the outcome of each operation.
type stubAuthUsecase struct {
	loginErr error
}

func (s *stubAuthUsecase) Register(_ context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	return &usecase.RegisterOutput{User: &entity.PublicUser{Name: input.Name, Email: input.Email}}, nil
}

func (s *stubAuthUsecase) Login(context.Context, *usecase.LoginInput) (*usecase.TokenPairOutput, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}

	return &usecase.TokenPairOutput{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         &entity.PublicUser{Name: "Eve", Email: "eve@example.com"},
	}, nil
}

func (s *stubAuthUsecase) Refresh(context.Context, *usecase.RefreshInput) (*usecase.TokenPairOutput, error) {
	return &usecase.TokenPairOutput{
		AccessToken:  "access2",
		RefreshToken: "refresh2",
		User:         &entity.PublicUser{Name: "Eve", Email: "eve@example.com"},
	}, nil
}

func (s *stubAuthUsecase) Logout(context.Context, *usecase.LogoutInput) error { return nil }

func (s *stubAuthUsecase) CleanupExpiredSessions(context.Context) error { return nil }

func newAuthTestServer(uc usecase.AuthUsecase) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = httpmiddleware.NewErrorMiddleware(logger).HandleHTTPError

	h := NewAuthHandler(uc, logger)
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/refresh", h.Refresh)
	e.POST("/auth/logout", h.Logout)

	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	return sendJSON(e, http.MethodPost, path, body)
}

func putJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	return sendJSON(e, http.MethodPut, path, body)
}

func sendJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAuthHandler_RefreshWithoutToken(t *testing.T) {
	e := newAuthTestServer(&stubAuthUsecase{})

	rec := postJSON(e, "/auth/refresh", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_TOKEN")
}

func TestAuthHandler_LogoutWithoutToken(t *testing.T) {
	e := newAuthTestServer(&stubAuthUsecase{})

	rec := postJSON(e, "/auth/logout", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_TOKEN")
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	e := newAuthTestServer(&stubAuthUsecase{})

	rec := postJSON(e, "/auth/register", `{"name":"Eve","email":"not-an-email","phone":"0912345678","password":"correct horse"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
	assert.Contains(t, rec.Body.String(), "Email")
}

func TestAuthHandler_RegisterSuccess(t *testing.T) {
	e := newAuthTestServer(&stubAuthUsecase{})

	rec := postJSON(e, "/auth/register", `{"name":"Eve","email":"eve@example.com","phone":"0912345678","password":"correct horse"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "eve@example.com")
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	e := newAuthTestServer(&stubAuthUsecase{})

	rec := postJSON(e, "/auth/login", `{"identifier":"eve@example.com","password":"correct horse"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "accessToken")
	assert.Contains(t, rec.Body.String(), "refreshToken")
	assert.Contains(t, rec.Body.String(), `"user"`)
}

func TestAuthHandler_LoginRejectedEnvelope(t *testing.T) {
	e := newAuthTestServer(&stubAuthUsecase{
		loginErr: errors.Wrap(domainerrors.ErrInvalidCredentials, "login rejected"),
	})

	rec := postJSON(e, "/auth/login", `{"identifier":"eve@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestAuthHandler_RefreshRotates(t *testing.T) {
	e := newAuthTestServer(&stubAuthUsecase{})

	rec := postJSON(e, "/auth/refresh", `{"refreshToken":"refresh"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "refresh2")
	assert.NotContains(t, rec.Body.String(), `"user"`)
}

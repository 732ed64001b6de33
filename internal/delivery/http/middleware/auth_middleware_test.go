package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bistro/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokenService accepts exactly one access token.
type stubTokenService struct {
	accepted string
	claims   *service.Claims
}

func (s *stubTokenService) IssueAccessToken(uuid.UUID, string, string, []string) (string, error) {
	return s.accepted, nil
}

func (s *stubTokenService) IssueRefreshToken(uuid.UUID, string, string, []string, uuid.UUID) (string, time.Time, error) {
	return "", time.Time{}, errors.New("not implemented")
}

func (s *stubTokenService) VerifyAccessToken(token string) (*service.Claims, error) {
	if token != s.accepted {
		return nil, errors.New("token is invalid")
	}

	return s.claims, nil
}

func (s *stubTokenService) VerifyRefreshToken(string) (*service.Claims, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTokenService) HashToken(token string) string { return token }

func (s *stubTokenService) RefreshTokenDuration() time.Duration { return time.Hour }

func newAuthTestMiddleware() (*AuthMiddleware, *service.Claims) {
	claims := &service.Claims{
		UserID: uuid.New(),
		Email:  "eve@example.com",
		Roles:  []string{"customer"},
	}

	return NewAuthMiddleware(&stubTokenService{accepted: "good-token", claims: claims}), claims
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := mw(func(c echo.Context) error {
		reached = true

		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return rec, c, reached
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	mw, _ := newAuthTestMiddleware()

	rec, _, reached := invoke(t, mw.Authenticate, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
}

func TestAuthenticate_NotBearer(t *testing.T) {
	mw, _ := newAuthTestMiddleware()

	rec, _, reached := invoke(t, mw.Authenticate, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	mw, _ := newAuthTestMiddleware()

	rec, _, reached := invoke(t, mw.Authenticate, "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthenticate_ValidTokenExposesClaims(t *testing.T) {
	mw, claims := newAuthTestMiddleware()

	rec, c, reached := invoke(t, mw.Authenticate, "Bearer good-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.Equal(t, claims.UserID, c.Get(ContextKeyUserID))
	assert.Equal(t, claims.Roles, c.Get(ContextKeyRoles))
	assert.Equal(t, claims, c.Get(ContextKeyClaims))
}

func TestRequireRole(t *testing.T) {
	mw, _ := newAuthTestMiddleware()

	chain := func(required ...string) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return mw.Authenticate(mw.RequireRole(required...)(next))
		}
	}

	// The customer role does not grant admin access.
	rec, _, reached := invoke(t, chain("admin"), "Bearer good-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)

	// Any of the listed roles admits.
	rec, _, reached = invoke(t, chain("admin", "customer"), "Bearer good-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)

	// No required roles means any authenticated caller.
	rec, _, reached = invoke(t, chain(), "Bearer good-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	mw, _ := newAuthTestMiddleware()

	rec, _, reached := invoke(t, mw.RequireRole("admin"), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

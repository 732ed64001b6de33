package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/config"
)

func newTestConfig() *config.Config {
	return &config.Config{
		JWT: &config.JWTConfig{
			AccessSecret:  "access-secret-for-tests",
			RefreshSecret: "refresh-secret-for-tests",
			AccessTTL:     15 * time.Minute,
			RefreshTTL:    7 * 24 * time.Hour,
		},
	}
}

func TestNewJWTService_ConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{
			name:   "missing jwt section",
			mutate: func(c *config.Config) { c.JWT = nil },
		},
		{
			name:   "missing access secret",
			mutate: func(c *config.Config) { c.JWT.AccessSecret = "" },
		},
		{
			name:   "missing refresh secret",
			mutate: func(c *config.Config) { c.JWT.RefreshSecret = "" },
		},
		{
			name:   "zero access ttl",
			mutate: func(c *config.Config) { c.JWT.AccessTTL = 0 },
		},
		{
			name:   "negative refresh ttl",
			mutate: func(c *config.Config) { c.JWT.RefreshTTL = -time.Hour },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig()
			tt.mutate(cfg)

			svc, err := NewJWTService(cfg)
			assert.Error(t, err)
			assert.Nil(t, svc)
		})
	}
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	userID := uuid.New()
	roles := []string{"customer", "admin"}

	token, err := svc.IssueAccessToken(userID, "eve@example.com", "0912345678", roles)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "eve@example.com", claims.Email)
	assert.Equal(t, "0912345678", claims.Phone)
	assert.Equal(t, roles, claims.Roles)
	assert.Equal(t, uuid.Nil, claims.SessionID)
}

func TestJWTService_RefreshTokenRoundTrip(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	userID := uuid.New()
	sessionID := uuid.New()

	token, expiresAt, err := svc.IssueRefreshToken(userID, "eve@example.com", "", []string{"customer"}, sessionID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	claims, err := svc.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, sessionID, claims.SessionID)
}

func TestJWTService_SecretsAreIndependent(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	userID := uuid.New()

	access, err := svc.IssueAccessToken(userID, "a@b.c", "", []string{"customer"})
	require.NoError(t, err)
	refresh, _, err := svc.IssueRefreshToken(userID, "a@b.c", "", []string{"customer"}, uuid.New())
	require.NoError(t, err)

	// A token of one kind must not verify as the other.
	_, err = svc.VerifyRefreshToken(access)
	assert.Error(t, err)
	_, err = svc.VerifyAccessToken(refresh)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredAndMalformed(t *testing.T) {
	cfg := newTestConfig()
	cfg.JWT.AccessTTL = time.Nanosecond
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	token, err := svc.IssueAccessToken(uuid.New(), "a@b.c", "", nil)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)

	_, err = svc.VerifyAccessToken("not.a.jwt")
	assert.Error(t, err)
}

func TestJWTService_HashToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	first := svc.HashToken("some-refresh-token")
	second := svc.HashToken("some-refresh-token")
	other := svc.HashToken("another-refresh-token")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 64)
}

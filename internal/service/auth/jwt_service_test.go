package auth

import (
	"context"
	"testing"
	"time"

	"github.com/OPpuolitaival/tasklist/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes:        15,
		RefreshTokenLifetimeMinutes: 60 * 24,
	}
}

// newTestService returns an hmacJWTService whose clock can be moved by
// the test.
func newTestService(t *testing.T, now time.Time) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)
	impl.timeFunc = func() time.Time { return now }
	impl.clockSkew = 0
	return impl
}

func TestNewJWTService_RejectsShortSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWTSecret = "short"

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	svc := newTestService(t, now)
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, now.Add(15*time.Minute), claims.ExpiresAt, time.Second)
}

func TestValidateToken_Expired(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	svc := newTestService(t, now)

	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	// Move the clock past the access token lifetime.
	svc.timeFunc = func() time.Time { return now.Add(16 * time.Minute) }

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Malformed(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Now())

	for _, tokenString := range []string{
		"not-a-jwt",
		"a.b.c",
		"eyJhbGciOiJIUzI1NiJ9.tampered.signature",
	} {
		_, err := svc.ValidateToken(ctx, tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tokenString)
	}
}

func TestValidateToken_Missing(t *testing.T) {
	svc := newTestService(t, time.Now())

	_, err := svc.ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestValidateToken_WrongSigningKey(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	svc := newTestService(t, now)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "ffffffffffffffffffffffffffffffff"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := other.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Now())

	refresh, err := svc.GenerateRefreshToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateRefreshToken(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	svc := newTestService(t, now)
	userID := uuid.New()

	refresh, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.WithinDuration(t, now.Add(24*time.Hour), claims.ExpiresAt, time.Second)
}

func TestValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Now())

	access, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateRefreshToken_Expired(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	svc := newTestService(t, now)

	refresh, err := svc.GenerateRefreshToken(ctx, uuid.New())
	require.NoError(t, err)

	svc.timeFunc = func() time.Time { return now.Add(25 * time.Hour) }

	_, err = svc.ValidateRefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestTokensAreUnique(t *testing.T) {
	// Each issued token carries a distinct jti even for the same user
	// and instant.
	ctx := context.Background()
	svc := newTestService(t, time.Now())
	userID := uuid.New()

	first, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	second, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

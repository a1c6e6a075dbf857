package jwt

import (
	"testing"
	"time"

	"healthcare-records/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        secret,
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := newTestService("secret")
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "alice@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestJWTService_RefreshTokenType(t *testing.T) {
	svc := newTestService("secret")

	token, _, err := svc.GenerateRefreshToken(uuid.New(), "bob@x.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	token, _, err := newTestService("secret").GenerateAccessToken(uuid.New(), "a@x.com")
	require.NoError(t, err)

	_, err = newTestService("other").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := newTestService("secret")
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.GenerateAccessToken(uuid.New(), "a@x.com")
	require.NoError(t, err)

	_, err = newTestService("secret").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	_, err := newTestService("secret").ValidateToken("not-a-token")
	assert.Error(t, err)
}

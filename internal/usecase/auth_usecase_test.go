package usecase

import (
	"context"
	"testing"

	"healthcare-records/internal/delivery/dto"
	"healthcare-records/internal/domain/entity"
	"healthcare-records/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthUsecase_RegisterAndLoginCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, &dto.RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", reg.User.Email)
	assert.NotEmpty(t, reg.AccessToken)
	assert.NotEmpty(t, reg.RefreshToken)
	assert.Equal(t, int64(900), reg.ExpiresIn)

	login, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "Alice@X.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	var stored entity.User
	require.NoError(t, env.db.First(&stored, "id = ?", reg.User.ID).Error)
	assert.NotEqual(t, "secret1", stored.Password)
}

func TestAuthUsecase_DuplicateEmailCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "Alice", "alice@x.com")

	_, err := env.auth.Register(ctx, &dto.RegisterRequest{Name: "Alice Again", Email: "  ALICE@x.com ", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	var n int64
	require.NoError(t, env.db.Model(&entity.User{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestAuthUsecase_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, &dto.RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: "short"})
	var vErr *entity.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password", vErr.Field)

	_, err = env.auth.Register(ctx, &dto.RegisterRequest{Name: "A", Email: "alice@x.com", Password: "secret1"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)
}

func TestAuthUsecase_LoginFailsUniformly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "Alice", "alice@x.com")

	_, wrongPassword := env.auth.Login(ctx, &dto.LoginRequest{Email: "alice@x.com", Password: "wrong-password"})
	_, unknownEmail := env.auth.Login(ctx, &dto.LoginRequest{Email: "bob@x.com", Password: "secret1"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestAuthUsecase_RefreshRotatesTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, &dto.RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	refreshed, err := env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: reg.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthUsecase_LogoutRevokesBothTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, &dto.RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	access, err := env.jwtService.ValidateToken(reg.AccessToken)
	require.NoError(t, err)
	refresh, err := env.jwtService.ValidateToken(reg.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, reg.User.ID, access.TokenID, reg.RefreshToken))

	ok, err := env.tokens.Exists(ctx, reg.User.ID, jwt.AccessToken, access.TokenID)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = env.tokens.Exists(ctx, reg.User.ID, jwt.RefreshToken, refresh.TokenID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthUsecase_LogoutRejectsForeignRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, err := env.auth.Register(ctx, &dto.RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)
	bob, err := env.auth.Register(ctx, &dto.RegisterRequest{Name: "Bob", Email: "bob@x.com", Password: "secret1"})
	require.NoError(t, err)

	access, err := env.jwtService.ValidateToken(alice.AccessToken)
	require.NoError(t, err)

	err = env.auth.Logout(ctx, alice.User.ID, access.TokenID, bob.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The failed logout leaves the session intact
	ok, err := env.tokens.Exists(ctx, alice.User.ID, jwt.AccessToken, access.TokenID)
	require.NoError(t, err)
	assert.True(t, ok)

	err = env.auth.Logout(ctx, alice.User.ID, access.TokenID, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
	ok, err = env.tokens.Exists(ctx, alice.User.ID, jwt.AccessToken, access.TokenID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthUsecase_RefreshReuseRevokesAllSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, &dto.RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)
	other, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	refreshed, err := env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: reg.RefreshToken})
	require.ErrorIs(t, err, ErrTokenRevoked)

	for _, token := range []string{refreshed.AccessToken, other.AccessToken} {
		claims, err := env.jwtService.ValidateToken(token)
		require.NoError(t, err)
		ok, err := env.tokens.Exists(ctx, reg.User.ID, jwt.AccessToken, claims.TokenID)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: refreshed.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthUsecase_GetCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.register(t, "Alice", "alice@x.com")

	user, err := env.auth.GetCurrentUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	_, err = env.auth.GetCurrentUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthUsecase_AuditsRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.register(t, "Alice", "alice@x.com")

	_, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	logs, err := env.audit.GetMyAuditLogs(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 2, logs.Total)

	actions := []string{logs.Logs[0].Action, logs.Logs[1].Action}
	assert.ElementsMatch(t, []string{entity.AuditActionUserRegister, entity.AuditActionUserLogin}, actions)
}

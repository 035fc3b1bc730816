package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojin/hakwonhub/internal/app/models"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/pkg/apperrors"
	"github.com/seojin/hakwonhub/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo, *fakeTokenRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key-for-auth-service",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "hakwonhub.test",
	})
	return NewAuthService(userRepo, tokenRepo, jwtService), userRepo, tokenRepo
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, active bool) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := &models.User{
		TenantID: testTenant,
		Email:    email,
		Password: hash,
		Name:     "Park Jiyeon",
		Role:     models.RoleAdmin,
		IsActive: active,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLogin_Succeeds(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	u := seedUser(t, userRepo, "admin@daechi-math.kr", "correct horse battery", true)

	tokens, user, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@daechi-math.kr",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, u.ID, user.ID)
	assert.Equal(t, testTenant, user.TenantID)
	assert.NotNil(t, userRepo.users[u.ID].LastLoginAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	seedUser(t, userRepo, "admin@daechi-math.kr", "correct horse battery", true)

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@daechi-math.kr",
		Password: "wrong password!",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@daechi-math.kr",
		Password: "whatever password",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	seedUser(t, userRepo, "admin@daechi-math.kr", "correct horse battery", false)

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@daechi-math.kr",
		Password: "correct horse battery",
	})

	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshTokens_RotatesAndRevokes(t *testing.T) {
	svc, userRepo, tokenRepo := newAuthFixture(t)
	seedUser(t, userRepo, "admin@daechi-math.kr", "correct horse battery", true)

	tokens, _, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@daechi-math.kr",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(context.Background(), dto.RefreshTokenRequest{
		RefreshToken: tokens.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)
	assert.True(t, tokenRepo.tokens[tokens.RefreshToken].Revoked)

	// The old token is single use
	_, err = svc.RefreshTokens(context.Background(), dto.RefreshTokenRequest{
		RefreshToken: tokens.RefreshToken,
	})
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestRefreshTokens_Expired(t *testing.T) {
	svc, userRepo, tokenRepo := newAuthFixture(t)
	seedUser(t, userRepo, "admin@daechi-math.kr", "correct horse battery", true)

	tokens, _, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@daechi-math.kr",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	tokenRepo.tokens[tokens.RefreshToken].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = svc.RefreshTokens(context.Background(), dto.RefreshTokenRequest{
		RefreshToken: tokens.RefreshToken,
	})
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestRefreshTokens_Unknown(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.RefreshTokens(context.Background(), dto.RefreshTokenRequest{
		RefreshToken: "never-issued",
	})
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestGetCurrentUser_NotFound(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.GetCurrentUser(context.Background(), "missing")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

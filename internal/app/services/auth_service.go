package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/app/repositories"
	"github.com/seojin/hakwonhub/internal/pkg/apperrors"
	"github.com/seojin/hakwonhub/internal/pkg/auth"
)

// AuthService handles login and refresh token exchange
type AuthService struct {
	userRepo   repositories.UserRepository
	tokenRepo  repositories.TokenRepository
	jwtService *auth.JWTService

	now func() time.Time
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo repositories.UserRepository, tokenRepo repositories.TokenRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		now:        time.Now,
	}
}

// Login verifies credentials and issues a token pair. Invalid email and
// invalid password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, *dto.UserResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, apperrors.NewDatabaseError("failed to look up user")
	}

	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, nil, apperrors.NewDatabaseError("failed to record login")
	}

	userResp := &dto.UserResponse{
		ID:       user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     string(user.Role),
	}
	return tokens, userResp, nil
}

// RefreshTokens exchanges a refresh token for a new pair and revokes the old
// one so each refresh token is single use.
func (s *AuthService) RefreshTokens(ctx context.Context, req dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.Get(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, apperrors.NewDatabaseError("failed to look up refresh token")
	}

	if stored.Revoked {
		return nil, apperrors.ErrTokenInvalid
	}
	if s.now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	if err := s.tokenRepo.Revoke(ctx, stored.Token); err != nil {
		return nil, apperrors.NewDatabaseError("failed to revoke refresh token")
	}

	return s.issueTokens(ctx, stored.UserID)
}

// GetCurrentUser loads the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("User", userID)
		}
		return nil, apperrors.NewDatabaseError("failed to look up user")
	}

	return &dto.UserResponse{
		ID:       user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     string(user.Role),
	}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, userID string) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, apperrors.NewDatabaseError("failed to look up user")
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("jwt", "failed to sign token")
	}

	if err := s.tokenRepo.Store(ctx, &repositories.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: s.jwtService.GetRefreshTokenExpiry(),
	}); err != nil {
		return nil, apperrors.NewDatabaseError("failed to store refresh token")
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}

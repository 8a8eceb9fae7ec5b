package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"FormUp/internal/cache"
	"FormUp/internal/model/dto"
	"FormUp/internal/repository"
	"FormUp/pkg/errors"
	"FormUp/pkg/logger"
	"FormUp/pkg/token"
	"FormUp/storage/database"
	"FormUp/utils"
)

type AuthService struct{}

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = &AuthService{}
	})
	return authService
}

// Login authenticates by service number and password and issues a token pair.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	db := database.DB().WithContext(ctx)

	serviceNumber := strings.ToUpper(strings.TrimSpace(req.ServiceNumber))

	user, err := repository.GetUserByServiceNumber(db, serviceNumber)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.InvalidCredentials
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !utils.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, errors.InvalidCredentials
	}

	userID := formatPublicID(user.PublicID)
	accessToken, refreshToken, expiresIn, err := token.GenerateTokenPair(userID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	// Refresh token storage is best effort: a Redis outage should not block
	// logins, it only disables refresh until the next login.
	if err := cache.SetRefreshToken(ctx, userID, refreshToken); err != nil {
		logger.Logger.Warn("Failed to store refresh token",
			zap.String("user_id", userID),
			zap.Error(err))
	}

	if err := repository.TouchLastLogin(db, user.ID, time.Now()); err != nil {
		logger.Logger.Warn("Failed to update last login time",
			zap.String("user_id", userID),
			zap.Error(err))
	}

	var mspName string
	if user.MSPID != nil {
		if msp, err := repository.GetMSPByID(db, *user.MSPID); err == nil {
			mspName = msp.Name
		}
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         userSnapshot(user, mspName),
	}, nil
}

// RefreshToken validates a refresh token against Redis and rotates the pair.
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	userID, role, err := token.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, errors.Unauthorized
	}

	if !cache.ValidateRefreshTokenExists(ctx, userID, req.RefreshToken) {
		return nil, errors.Unauthorized
	}

	accessToken, refreshToken, expiresIn, err := token.GenerateTokenPair(userID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to rotate token pair: %w", err)
	}

	if err := cache.SetRefreshToken(ctx, userID, refreshToken); err != nil {
		logger.Logger.Warn("Failed to store rotated refresh token",
			zap.String("user_id", userID),
			zap.Error(err))
	}

	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// Me returns the caller's identity snapshot.
func (s *AuthService) Me(ctx context.Context, userID string) (*dto.UserSnapshot, error) {
	publicID, err := parsePublicID(userID)
	if err != nil {
		return nil, err
	}

	db := database.DB().WithContext(ctx)

	user, err := repository.GetUserByPublicID(db, publicID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.UserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	var mspName string
	if user.MSPID != nil {
		if msp, err := repository.GetMSPByID(db, *user.MSPID); err == nil {
			mspName = msp.Name
		}
	}

	snap := userSnapshot(user, mspName)
	return &snap, nil
}

// ChangePassword rotates the caller's password and revokes the stored refresh
// token so other sessions must sign in again.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	publicID, err := parsePublicID(userID)
	if err != nil {
		return err
	}

	if len(req.NewPassword) < utils.MinPasswordLength {
		return errors.PasswordTooWeak
	}

	db := database.DB().WithContext(ctx)

	user, err := repository.GetUserByPublicID(db, publicID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.UserNotFound
		}
		return fmt.Errorf("failed to query user: %w", err)
	}

	if !utils.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		return errors.PasswordMismatch
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := repository.UpdateUser(db, user.ID, map[string]interface{}{
		"password_hash": hash,
	}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := cache.DeleteRefreshToken(ctx, userID); err != nil {
		logger.Logger.Warn("Failed to revoke refresh token",
			zap.String("user_id", userID),
			zap.Error(err))
	}

	return nil
}

// Logout drops the stored refresh token. The access token expires naturally.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return cache.DeleteRefreshToken(ctx, userID)
}

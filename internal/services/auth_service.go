// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/greeniecart/greeniecart-backend/internal/cache"
	"github.com/greeniecart/greeniecart-backend/internal/config"
	"github.com/greeniecart/greeniecart-backend/internal/models"
	"github.com/greeniecart/greeniecart-backend/internal/utils"
)

type AuthService struct {
	db                  *gorm.DB
	config              *config.Config
	blacklist           *cache.TokenBlacklist
	notificationService *NotificationService
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,strong_password"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Contact   string `json:"contact" validate:"omitempty,ph_mobile"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"` // seconds
}

func NewAuthService(db *gorm.DB, config *config.Config, blacklist *cache.TokenBlacklist, notificationService *NotificationService) *AuthService {
	return &AuthService{
		db:                  db,
		config:              config,
		blacklist:           blacklist,
		notificationService: notificationService,
	}
}

func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrValidationFailed, err)
	}

	// Check for existing account
	var existing models.User
	err := s.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, errors.New("user with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	verificationToken, err := utils.GenerateVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	user := &models.User{
		Email:             req.Email,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Contact:           req.Contact,
		VerificationToken: verificationToken,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Send welcome email asynchronously
	go func() {
		if err := s.notificationService.SendWelcomeEmail(user, verificationToken); err != nil {
			logrus.WithError(err).Error("failed to send welcome email")
		}
	}()

	return user, nil
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrValidationFailed, err)
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid email or password")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.db.Model(&user).Update("last_login_at", now).Error; err != nil {
		logrus.WithError(err).Warn("failed to record last login")
	}

	return s.issueTokens(&user)
}

func (s *AuthService) RefreshToken(refreshToken string) (*AuthResponse, error) {
	subject, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token subject: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return s.issueTokens(&user)
}

// Logout revokes the presented access token for the remainder of its life.
func (s *AuthService) Logout(ctx context.Context, claims *utils.JWTClaims) error {
	if s.blacklist == nil || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *AuthService) VerifyEmail(token string) error {
	if token == "" {
		return errors.New("verification token is required")
	}

	var user models.User
	if err := s.db.Where("verification_token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("invalid verification token")
		}
		return fmt.Errorf("database error: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"email_verified_at":  now,
		"verification_token": "",
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}

	return nil
}

// ForgotPassword issues a reset token. A missing account is not an error so
// the endpoint does not reveal which emails are registered.
func (s *AuthService) ForgotPassword(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("database error: %w", err)
	}

	resetToken, err := utils.GenerateVerificationToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiresAt := time.Now().Add(time.Hour)
	updates := map[string]interface{}{
		"reset_token":            resetToken,
		"reset_token_expires_at": expiresAt,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	go func() {
		if err := s.notificationService.SendPasswordResetEmail(&user, resetToken); err != nil {
			logrus.WithError(err).Error("failed to send password reset email")
		}
	}()

	return nil
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,strong_password"`
}

func (s *AuthService) ResetPassword(req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %w", models.ErrValidationFailed, err)
	}

	var user models.User
	if err := s.db.Where("reset_token = ?", req.Token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("invalid or expired reset token")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if user.ResetTokenExpiresAt == nil || user.ResetTokenExpiresAt.Before(time.Now()) {
		return errors.New("invalid or expired reset token")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	updates := map[string]interface{}{
		"password_hash":          user.PasswordHash,
		"reset_token":            "",
		"reset_token_expires_at": nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}

func (s *AuthService) issueTokens(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(user.ID, user.Email, user.DisplayName(), s.config.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, s.config.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenTTL) * 3600,
	}, nil
}

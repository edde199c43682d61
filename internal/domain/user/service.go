// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/coffeeshop-backend/internal/config"
	"github.com/your-org/coffeeshop-backend/internal/pkg/auth"
	"github.com/your-org/coffeeshop-backend/internal/pkg/email"
	"gorm.io/gorm"
)

// ErrInvalidOTP is returned when a password reset code is wrong or expired
var ErrInvalidOTP = errors.New("invalid or expired verification code")

// OTPStore abstracts the key-value store holding password reset codes.
// The Redis client wrapper implements it.
type OTPStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	otpStore        OTPStore
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
	emailService    *email.Service
}

// NewService creates a new user service
func NewService(db *gorm.DB, otpStore OTPStore, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		otpStore:        otpStore,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
		emailService:    email.NewService(cfg),
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Phone           string `json:"phone"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	// Validate password confirmation
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("passwords do not match")
	}

	// Check if user already exists
	var existingUser User
	result := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existingUser)
	if result.Error == nil {
		return nil, fmt.Errorf("user with this email already exists")
	}

	// Hash password
	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Create new user
	user := User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		IsActive:  true,
		IsAdmin:   false,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(ctx, &user)
}

// Login authenticates a user
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	// Find user by email
	var user User
	result := s.db.WithContext(ctx).Where("email = ? AND is_active = ?", req.Email, true).First(&user)
	if result.Error != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	// Verify password
	if err := s.passwordManager.VerifyPassword(req.Password, user.Password); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueTokens(ctx, &user)
}

// issueTokens generates the token pair and stamps the login time
func (s *Service) issueTokens(ctx context.Context, user *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// Update last login
	now := time.Now().UTC()
	user.LastLoginAt = &now
	s.db.WithContext(ctx).Save(user)

	// Clear password from response
	user.Password = ""

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// RefreshToken generates new tokens using refresh token
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// Validate refresh token
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	// Find user
	var user User
	result := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", claims.UserID, true).First(&user)
	if result.Error != nil {
		return nil, ErrNotFound
	}

	// Generate new tokens
	newAccessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	var newRefreshToken string
	if s.config.JWT.RefreshTokenRotation {
		// Generate new refresh token (rotation)
		newRefreshToken, err = s.jwtManager.GenerateRefreshToken(user.ID, user.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to generate refresh token: %w", err)
		}
	} else {
		// Reuse existing refresh token
		newRefreshToken = refreshToken
	}

	// Clear password from response
	user.Password = ""

	return &AuthResponse{
		User:         &user,
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// GetProfile gets user profile by ID
func (s *Service) GetProfile(ctx context.Context, userID uint) (*User, error) {
	var user User
	result := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", userID, true).First(&user)
	if result.Error != nil {
		return nil, ErrNotFound
	}

	// Clear password
	user.Password = ""

	return &user, nil
}

// Exists reports whether an active user with the given ID exists
func (s *Service) Exists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&User{}).
		Where("id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}
	return count > 0, nil
}

// ChangePassword changes user password after verifying current password
func (s *Service) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	// Find user
	var user User
	result := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", userID, true).First(&user)
	if result.Error != nil {
		return ErrNotFound
	}

	// Verify current password
	if err := s.passwordManager.VerifyPassword(currentPassword, user.Password); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	// Hash new password
	hashedPassword, err := s.passwordManager.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	// Update password
	if err := s.db.WithContext(ctx).Model(&user).Update("password", hashedPassword).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// otpKey builds the Redis key for a password reset code
func otpKey(userEmail string) string {
	return fmt.Sprintf("otp:password_reset:%s", userEmail)
}

// RequestPasswordReset generates a one-time code for the account and
// emails it. The code expires after the configured OTP lifetime.
func (s *Service) RequestPasswordReset(ctx context.Context, userEmail string) error {
	var user User
	result := s.db.WithContext(ctx).Where("email = ? AND is_active = ?", userEmail, true).First(&user)
	if result.Error != nil {
		return ErrNotFound
	}

	code, err := auth.GenerateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	if err := s.otpStore.Set(ctx, otpKey(user.Email), code, s.config.Security.OTPExpiry); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := s.emailService.SendPasswordResetOTP(ctx, user.Email, user.GetDisplayName(), code, s.config.Security.OTPExpiry); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}

	logrus.WithField("user_id", user.ID).Info("Password reset code issued")
	return nil
}

// ConfirmPasswordReset verifies the one-time code, replaces the account
// password with a generated temporary one, and emails it to the user.
// The code is single-use: it is deleted once accepted.
func (s *Service) ConfirmPasswordReset(ctx context.Context, userEmail, code string) error {
	var user User
	result := s.db.WithContext(ctx).Where("email = ? AND is_active = ?", userEmail, true).First(&user)
	if result.Error != nil {
		return ErrNotFound
	}

	stored, found, err := s.otpStore.Get(ctx, otpKey(user.Email))
	if err != nil {
		return fmt.Errorf("failed to load verification code: %w", err)
	}
	if !found || stored != code {
		return ErrInvalidOTP
	}

	tempPassword, err := s.passwordManager.GenerateTemporaryPassword()
	if err != nil {
		return fmt.Errorf("failed to generate temporary password: %w", err)
	}

	hashedPassword, err := s.passwordManager.HashPassword(tempPassword)
	if err != nil {
		return fmt.Errorf("failed to hash temporary password: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&user).Update("password", hashedPassword).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.otpStore.Del(ctx, otpKey(user.Email)); err != nil {
		logrus.WithError(err).Warn("Failed to delete used verification code")
	}

	if err := s.emailService.SendTemporaryPassword(ctx, user.Email, user.GetDisplayName(), tempPassword); err != nil {
		return fmt.Errorf("failed to send temporary password: %w", err)
	}

	logrus.WithField("user_id", user.ID).Info("Password reset completed")
	return nil
}

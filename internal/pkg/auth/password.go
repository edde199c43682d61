// internal/pkg/auth/password.go
package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"unicode"

	"github.com/your-org/coffeeshop-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// PasswordManager handles password operations
type PasswordManager struct {
	config *config.Config
}

// NewPasswordManager creates a new password manager
func NewPasswordManager(cfg *config.Config) *PasswordManager {
	return &PasswordManager{
		config: cfg,
	}
}

// HashPassword hashes a password using bcrypt
func (p *PasswordManager) HashPassword(password string) (string, error) {
	if err := p.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("password validation failed: %w", err)
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.config.Security.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// VerifyPassword verifies a password against its hash
func (p *PasswordManager) VerifyPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidatePassword validates password strength
func (p *PasswordManager) ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	if len(password) > 128 {
		return fmt.Errorf("password must be no more than 128 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

const (
	tempPasswordLength = 9
	otpLength          = 6
)

// GenerateTemporaryPassword generates a random temporary password. The
// first three characters cover the upper/lower/digit requirements so
// the result always passes ValidatePassword.
func (p *PasswordManager) GenerateTemporaryPassword() (string, error) {
	const (
		upper   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
		lower   = "abcdefghijkmnpqrstuvwxyz"
		digits  = "23456789"
		charset = upper + lower + digits
	)

	buf := make([]byte, tempPasswordLength)

	var err error
	buf[0], err = randomChar(upper)
	if err != nil {
		return "", err
	}
	buf[1], err = randomChar(lower)
	if err != nil {
		return "", err
	}
	buf[2], err = randomChar(digits)
	if err != nil {
		return "", err
	}
	for i := 3; i < tempPasswordLength; i++ {
		buf[i], err = randomChar(charset)
		if err != nil {
			return "", err
		}
	}

	return string(buf), nil
}

// GenerateOTP generates a random numeric one-time code
func GenerateOTP() (string, error) {
	buf := make([]byte, otpLength)
	for i := range buf {
		c, err := randomChar("0123456789")
		if err != nil {
			return "", err
		}
		buf[i] = c
	}
	return string(buf), nil
}

// randomChar picks one character from the charset using crypto/rand
func randomChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, fmt.Errorf("failed to read random source: %w", err)
	}
	return charset[n.Int64()], nil
}

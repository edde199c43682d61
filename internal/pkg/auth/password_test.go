package auth

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coffeeshop-backend/internal/config"
)

func newManager() *PasswordManager {
	return NewPasswordManager(&config.Config{
		Security: config.SecurityConfig{BcryptCost: 4}, // Minimum cost for fast tests
	})
}

func TestValidatePassword(t *testing.T) {
	tests := map[string]struct {
		password string
		wantErr  bool
	}{
		"valid password":    {"Espresso42", false},
		"too short":         {"Abc1", true},
		"missing uppercase": {"espresso42", true},
		"missing lowercase": {"ESPRESSO42", true},
		"missing number":    {"EspressoShot", true},
	}

	m := newManager()
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := m.ValidatePassword(tc.password)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	m := newManager()

	hash, err := m.HashPassword("Espresso42")
	require.NoError(t, err)
	assert.NotEqual(t, "Espresso42", hash)

	assert.NoError(t, m.VerifyPassword("Espresso42", hash))
	assert.Error(t, m.VerifyPassword("wrong", hash))
}

func TestGenerateTemporaryPassword(t *testing.T) {
	m := newManager()

	password, err := m.GenerateTemporaryPassword()
	require.NoError(t, err)

	assert.Len(t, password, tempPasswordLength)
	// The generated password must itself be accepted by the validator
	assert.NoError(t, m.ValidatePassword(password))
}

func TestGenerateOTP(t *testing.T) {
	code, err := GenerateOTP()
	require.NoError(t, err)

	assert.Len(t, code, otpLength)
	for _, c := range code {
		assert.True(t, unicode.IsDigit(c))
	}
}

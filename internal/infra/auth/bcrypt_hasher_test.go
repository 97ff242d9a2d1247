package auth

import (
	"strings"
	"testing"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *bcryptHasher {
	t.Helper()

	hasher, err := NewBcryptHasherWithCost(bcrypt.MinCost, 6, 72)
	require.NoError(t, err)

	return hasher.(*bcryptHasher)
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := newTestHasher(t)

	password := "pw123456"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Same input, fresh salt.
	again, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEqual(t, hash, again)

	assert.True(t, hasher.Check(password, hash))
	assert.True(t, hasher.Check(password, again))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := newTestHasher(t)
	password := "pw123456"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("wrong-password", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_CheckWithoutHashNeverMatches(t *testing.T) {
	hasher := newTestHasher(t)

	assert.False(t, hasher.Check("", ""))
	assert.False(t, hasher.Check("anything", ""))
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher, err := NewBcryptHasherWithCost(customCost, 6, 72)
	require.NoError(t, err)

	hash, err := hasher.Hash("pw123456")
	assert.NoError(t, err)

	// Verify the hash uses the correct cost
	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_InvalidConstruction(t *testing.T) {
	_, err := NewBcryptHasherWithCost(bcrypt.MaxCost+1, 6, 72)
	assert.Error(t, err)

	_, err = NewBcryptHasherWithCost(bcrypt.MinCost, 10, 5)
	assert.Error(t, err)
}

func TestBcryptHasher_FromConfig(t *testing.T) {
	cfg := &config.Config{
		Auth:           &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordPolicy: &config.PasswordPolicyConfig{MinLength: 8},
	}

	hasher, err := NewBcryptHasher(cfg)
	require.NoError(t, err)

	assert.Error(t, hasher.ValidatePasswordStrength("short12"))
	assert.NoError(t, hasher.ValidatePasswordStrength("longer123"))
}

func TestBcryptHasher_DefaultPolicyAcceptsShortPasswords(t *testing.T) {
	hasher, err := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})
	require.NoError(t, err)

	assert.NoError(t, hasher.ValidatePasswordStrength("pw123"))
	assert.NoError(t, hasher.ValidatePasswordStrength("x"))
	assert.ErrorIs(t, hasher.ValidatePasswordStrength(""), domainerrors.ErrPasswordStrength)
	assert.ErrorIs(t, hasher.ValidatePasswordStrength(strings.Repeat("a", 73)), domainerrors.ErrPasswordStrength)
}

// With an explicit minimum of 6.
func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := newTestHasher(t)

	testCases := []struct {
		name        string
		password    string
		expectedErr string
	}{
		{name: "minimum length", password: "pw1234"},
		{name: "unicode counts runes", password: "Pässwö"},
		{name: "too short", password: "pw123", expectedErr: "must be at least 6 characters long"},
		{name: "empty", password: "", expectedErr: "must be at least 6 characters long"},
		{name: "too long", password: strings.Repeat("a", 73), expectedErr: "must be at most 72 bytes long"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := hasher.ValidatePasswordStrength(tc.password)
			if tc.expectedErr == "" {
				assert.NoError(t, err)

				return
			}
			assert.ErrorIs(t, err, domainerrors.ErrPasswordStrength)
			assert.Contains(t, err.Error(), tc.expectedErr)
		})
	}
}

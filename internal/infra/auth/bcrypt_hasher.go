package auth

import (
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost      int
	minLength int
	maxLength int
	// dummyHash is compared against when the caller has no stored hash,
	// so unknown accounts cost the same as wrong passwords.
	dummyHash []byte
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) (service.PasswordHasher, error) {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}
	minLength, maxLength := cfg.PasswordLengthBounds()

	return NewBcryptHasherWithCost(cost, minLength, maxLength)
}

// NewBcryptHasherWithCost builds a hasher with an explicit cost and password length bounds.
func NewBcryptHasherWithCost(cost, minLength, maxLength int) (service.PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if minLength <= 0 || maxLength < minLength {
		return nil, errors.Errorf("invalid password length bounds [%d, %d]", minLength, maxLength)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build dummy hash")
	}

	return &bcryptHasher{
		cost:      cost,
		minLength: minLength,
		maxLength: maxLength,
		dummyHash: dummy,
	}, nil
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))

		return false
	}

	// err is nil if the password and hash match.
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength enforces the configured length bounds.
// The upper bound counts bytes because bcrypt ignores input past 72 bytes.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < h.minLength {
		return errors.Wrapf(domainerrors.ErrPasswordStrength, "must be at least %d characters long", h.minLength)
	}
	if len(password) > h.maxLength {
		return errors.Wrapf(domainerrors.ErrPasswordStrength, "must be at most %d bytes long", h.maxLength)
	}

	return nil
}

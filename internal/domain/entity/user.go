// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account that can authenticate against the storefront.
type User struct {
	ID           uuid.UUID // Immutable identifier, also the token subject.
	Name         string    // Display name.
	Email        string    // Login identifier, stored normalized.
	PasswordHash string    // bcrypt hash; never leaves the service.
	Privilege    Privilege // Standard or Elevated.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sanitized returns a copy of the user without the password hash.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""

	return &clone
}

// NormalizeEmail trims and lowercases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrivilege(t *testing.T) {
	assert.True(t, PrivilegeElevated.IsElevated())
	assert.False(t, PrivilegeStandard.IsElevated())
	assert.Equal(t, PrivilegeElevated, PrivilegeFromAdminFlag(true))
	assert.Equal(t, PrivilegeStandard, PrivilegeFromAdminFlag(false))
	assert.False(t, Privilege(9).IsValid())
	assert.Equal(t, "privilege(9)", Privilege(9).String())
}

func TestUserSanitized(t *testing.T) {
	user := &User{Name: "alice", PasswordHash: "hash"}

	clean := user.Sanitized()
	assert.Empty(t, clean.PasswordHash)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.Nil(t, (*User)(nil).Sanitized())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
}

func TestDonationStatus(t *testing.T) {
	assert.True(t, DonationStatusApproved.IsValid())
	assert.False(t, DonationStatus("Shipped").IsValid())
}

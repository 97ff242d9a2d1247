package entity

import "fmt"

// Privilege is the access tier resolved from the store on every request.
// Tokens never carry it.
type Privilege int

const (
	// PrivilegeStandard is an ordinary storefront customer.
	PrivilegeStandard Privilege = iota
	// PrivilegeElevated grants access to the admin console.
	PrivilegeElevated
)

// String returns the string representation of the Privilege.
func (p Privilege) String() string {
	switch p {
	case PrivilegeStandard:
		return "standard"
	case PrivilegeElevated:
		return "elevated"
	default:
		return fmt.Sprintf("privilege(%d)", int(p))
	}
}

// IsValid checks if the Privilege is a known value.
func (p Privilege) IsValid() bool {
	switch p {
	case PrivilegeStandard, PrivilegeElevated:
		return true
	default:
		return false
	}
}

// IsElevated reports whether p grants admin access.
func (p Privilege) IsElevated() bool {
	return p == PrivilegeElevated
}

// AdminFlag projects the privilege onto the storefront's isAdmin field.
func (p Privilege) AdminFlag() bool {
	return p.IsElevated()
}

// PrivilegeFromAdminFlag maps a persisted isAdmin column back to a Privilege.
func PrivilegeFromAdminFlag(isAdmin bool) Privilege {
	if isAdmin {
		return PrivilegeElevated
	}

	return PrivilegeStandard
}

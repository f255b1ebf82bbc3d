package entity

import "slices"

// Role represents the type of account acting on the system.
type Role string

const (
	// RoleMerchant indicates a business owner account ("usuario").
	RoleMerchant Role = "merchant"
	// RolePublic indicates a consumer account.
	RolePublic Role = "public"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleMerchant, RolePublic:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

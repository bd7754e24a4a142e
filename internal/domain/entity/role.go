package entity

import "slices"

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleUnassigned is held by users who verified but have not finished onboarding.
	RoleUnassigned Role = "unassigned"
	RoleCustomer   Role = "customer"
	RoleTasker     Role = "tasker"
	RoleVendor     Role = "vendor"
	RoleAdmin      Role = "admin"
)

// selectableRoles are the roles a user may pick during onboarding. Admin is
// granted only to configured identifiers, never self-selected.
var selectableRoles = Roles{RoleCustomer, RoleTasker, RoleVendor}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a known value, including unassigned.
func (r Role) IsValid() bool {
	return r == RoleUnassigned || r == RoleAdmin || selectableRoles.Contains(r)
}

// IsSelectable reports whether r can be chosen through role selection.
func (r Role) IsSelectable() bool {
	return selectableRoles.Contains(r)
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// SelectableRoles returns a copy of the roles offered during onboarding.
func SelectableRoles() Roles {
	return slices.Clone(selectableRoles)
}

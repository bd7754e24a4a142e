// Package entity contains the core business objects of the authentication
// engine. Entities carry state and the rules for changing it; persistence
// and transport live elsewhere.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account keyed by the identifier it first verified with.
type User struct {
	ID             uuid.UUID      // Global unique identifier.
	Identifier     string         // Normalized phone (E.164) or lowercase email.
	IdentifierKind IdentifierKind // Whether Identifier is a phone number or an email.
	Role           Role           // Unassigned until onboarding completes; set once.
	IsVerified     bool           // True once the user holds a selected role.
	CreatedAt      time.Time      // Creation time.
	UpdatedAt      time.Time      // Last modification time.
}

// NeedsOnboarding reports whether the user still has to pick a role.
func (u *User) NeedsOnboarding() bool {
	return u.Role == RoleUnassigned
}

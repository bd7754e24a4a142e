// Package model holds the GORM table mappings. Primary keys are generated
// in Go so the same models migrate on PostgreSQL and SQLite.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Identifier     string    `gorm:"type:varchar(320);uniqueIndex;not null"`
	IdentifierKind string    `gorm:"type:varchar(16);not null"`
	Role           string    `gorm:"type:varchar(32);not null;default:unassigned"`
	IsVerified     bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

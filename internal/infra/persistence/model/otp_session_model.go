package model

import (
	"time"

	"github.com/google/uuid"
)

// OtpSessionModel mirrors the 'otp_sessions' table. Version is the
// compare-and-swap guard for every update.
type OtpSessionModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Identifier     string    `gorm:"type:varchar(320);not null;index"`
	IdentifierKind string    `gorm:"type:varchar(16);not null"`
	Channel        string    `gorm:"type:varchar(16);not null"`
	CodeHash       string    `gorm:"type:varchar(255);not null"`
	Attempts       int       `gorm:"not null;default:0"`
	MaxAttempts    int       `gorm:"not null"`
	ResendCount    int       `gorm:"not null;default:0"`
	Status         string    `gorm:"type:varchar(16);not null;index"`
	Version        int64     `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
	ExpiresAt      time.Time `gorm:"not null;index"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OtpSessionModel) TableName() string {
	return "otp_sessions"
}

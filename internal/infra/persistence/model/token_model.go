package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenModel mirrors the 'refresh_tokens' table. Rows sharing a
// family_id form one rotation chain linked through parent_id.
type RefreshTokenModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	FamilyID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ParentID      *uuid.UUID `gorm:"type:uuid"`
	TokenHash     string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	ExpiresAt     time.Time  `gorm:"not null;index"`
	SupersededAt  *time.Time
	RevokedAt     *time.Time
	RevokedReason string    `gorm:"type:varchar(32)"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// OnboardingTokenModel mirrors the 'onboarding_tokens' table.
type OnboardingTokenModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	ConsumedAt *time.Time
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OnboardingTokenModel) TableName() string {
	return "onboarding_tokens"
}

// All lists every model for migrations.
func All() []any {
	return []any{
		&UserModel{},
		&OtpSessionModel{},
		&RefreshTokenModel{},
		&OnboardingTokenModel{},
	}
}

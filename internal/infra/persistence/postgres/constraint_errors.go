package postgres

import (
	"strings"

	"otpauth/internal/errors"

	"gorm.io/gorm"
)

// isUniqueConstraintViolation recognizes duplicate keys from GORM's error
// translator and, when translation is off, from PostgreSQL and SQLite text.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "sqlstate 23505") ||
		strings.Contains(msg, "unique constraint failed")
}

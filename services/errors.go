package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateErr reports whether err is a unique-constraint violation.
// Gorm's error translation covers the postgres driver; the sqlite driver
// used in tests surfaces the raw constraint message, hence the fallback.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicateKey is returned when an insert violates a unique index.
var ErrDuplicateKey = errors.New("duplicate key")

// IsNotFoundError reports whether err means the requested row does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKeyError reports whether err is a unique-constraint violation.
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey)
}

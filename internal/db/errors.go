package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrDuplicate marks a unique-constraint violation (CPF, username or
	// client+reference collision). Callers surface it as a validation
	// message, never as a crash.
	ErrDuplicate = errors.New("unique constraint violation")

	// ErrStoreBlocked means another session holds an incompatible lock on
	// the database file. Fatal to startup; the user must close the other
	// session, data recovery is not the answer.
	ErrStoreBlocked = errors.New("database locked by another session")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func isLockedError(err error) bool {
	if err == nil {
		return false
	}
	message := err.Error()
	return strings.Contains(message, "database is locked") ||
		strings.Contains(message, "SQLITE_BUSY") ||
		strings.Contains(message, "locking protocol")
}

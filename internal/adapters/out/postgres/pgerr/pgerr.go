// Package pgerr classifies PostgreSQL errors returned through gorm, whichever
// driver produced them.
package pgerr

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "unique_violation"

// Lock failures: the transaction lost a race for a row lock and may be retried.
const (
	deadlockDetected     = "deadlock_detected"
	lockNotAvailable     = "lock_not_available"
	serializationFailure = "serialization_failure"
)

// IsUniqueViolation reports whether err is SQLSTATE 23505. It recognizes
// gorm's translated gorm.ErrDuplicatedKey as well as a raw *pq.Error.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == uniqueViolation
}

// IsLockFailure reports whether err is SQLSTATE 40P01, 55P03 or 40001. The
// server has already aborted the statement, so the whole transaction has to be
// rolled back and retried.
func IsLockFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code.Name() {
	case deadlockDetected, lockNotAvailable, serializationFailure:
		return true
	default:
		return false
	}
}

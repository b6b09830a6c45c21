package errs

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden         = errors.New("action is forbidden")
	ErrInvalidTransition = errors.New("transition is invalid")
	ErrConflict          = errors.New("concurrent modification")
)

// ForbiddenError reports that the acting identity has no capability for Action.
// Reason is a stable machine-readable code suitable for rendering.
type ForbiddenError struct {
	Action string
	Reason string
}

func NewForbiddenError(action, reason string) *ForbiddenError {
	return &ForbiddenError{Action: action, Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s (reason: %s)", ErrForbidden, e.Action, e.Reason)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidTransitionError reports that the current state of the record does not
// satisfy the preconditions of Action.
type InvalidTransitionError struct {
	Action string
	From   string
	Reason string
}

func NewInvalidTransitionError(action, from, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{Action: action, From: from, Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s from %s (reason: %s)", ErrInvalidTransition, e.Action, e.From, e.Reason)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConflictError reports a compare-and-set miss: the record changed after it was read.
// It is the only lifecycle error that is safe to retry with fresh state.
type ConflictError struct {
	Entity  string
	ID      any
	Version int64
	Cause   error
}

func NewConflictError(entity string, id any, version int64) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Version: version}
}

func NewConflictErrorWithCause(entity string, id any, version int64, cause error) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Version: version, Cause: cause}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %v changed since version %d", ErrConflict, e.Entity, e.ID, e.Version)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// IsRetryable reports whether err is worth retrying with fresh state.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}

// Package errs provides standardized error types for the donation application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - ForbiddenError: For when the actor may not perform an action
//   - InvalidTransitionError: For when the current state does not allow an action
//   - ConflictError: For when an optimistic write lost against a concurrent change
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The lifecycle errors (Forbidden, InvalidTransition, Conflict) are the taxonomy the
// presentation layer renders from, so they are never collapsed into one another.
package errs

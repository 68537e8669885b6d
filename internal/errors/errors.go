package errors

import (
	"errors"
)

// Marker errors for the error kinds the core distinguishes. Every error
// returned by a service or repository is marked with exactly one of these.
var (
	// ErrValidation indicates malformed or missing required input
	ErrValidation = errors.New("validation_error")

	// ErrNotFound indicates a referenced entity does not exist
	ErrNotFound = errors.New("not_found")

	// ErrAlreadyExists indicates a uniqueness or state conflict
	ErrAlreadyExists = errors.New("already_exists")

	// ErrInvalidOperation indicates an operation not permitted from the
	// entity's current state
	ErrInvalidOperation = errors.New("invalid_operation")

	// ErrDatabase indicates a storage layer failure
	ErrDatabase = errors.New("database_error")

	// ErrInternal indicates an unexpected internal failure
	ErrInternal = errors.New("internal_error")
)

// IsNotFound returns true if the error is marked as a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation returns true if the error is marked as a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsAlreadyExists returns true if the error is marked as a conflict error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalidOperation returns true if the error is marked as an
// invalid-state error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsDatabase returns true if the error is marked as a database error
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

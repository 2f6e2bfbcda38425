// ============================================================================
// internal/shared/errors.go
// Error taxonomy shared across services and mapped to HTTP at the boundary
// ============================================================================

package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input the caller must fix and resubmit.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateSeatNumber marks a seat number that already exists.
	ErrDuplicateSeatNumber = errors.New("seat number already exists")

	// ErrAuthenticationFailed is reported for every credential mismatch.
	// It deliberately never says which factor failed, so valid seat numbers
	// and usernames cannot be enumerated.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrNotFound marks a stale identifier, e.g. editing a deleted record.
	ErrNotFound = errors.New("record not found")

	// ErrRepositoryUnavailable marks a transient storage failure.
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)

// Validationf wraps ErrValidation with a caller-facing detail message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// RepositoryErr wraps a storage driver error as ErrRepositoryUnavailable,
// keeping the operation name for logs while the caller sees a generic failure.
func RepositoryErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrRepositoryUnavailable, op, err)
}

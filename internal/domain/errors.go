// Package domain defines the entities and error taxonomy for the course
// registration system. It contains only pure Go with standard library
// imports; infrastructure concerns live elsewhere.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the registration service. All errors are local,
// synchronous, and non-fatal; none aborts the process.
var (
	// ErrPermissionDenied indicates a role or authentication check failed.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a duplicate key on create.
	ErrAlreadyExists = errors.New("already exists")

	// ErrAlreadyEnrolled indicates a duplicate (user, course) enrollment.
	ErrAlreadyEnrolled = errors.New("already enrolled")

	// ErrNoSeats indicates the course has no available seats.
	ErrNoSeats = errors.New("no seats available")

	// ErrNothingToUndo indicates the undo log holds no entry for the
	// current session.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrCircular indicates a direct reciprocal prerequisite edge.
	ErrCircular = errors.New("circular prerequisite")
)

// ValidationError reports a rejected input field. The operation aborts
// without mutating any state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// PrereqError reports an enrollment rejected because direct prerequisites
// are missing. Missing lists the prerequisite codes the user has no
// enrollment record for.
type PrereqError struct {
	Course  string
	Missing []string
}

func (e *PrereqError) Error() string {
	return fmt.Sprintf("prerequisites not met for %s: missing %s",
		e.Course, strings.Join(e.Missing, ", "))
}

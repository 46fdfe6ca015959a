package model

import (
	"errors"
	"fmt"
)

// Error kinds shared by every layer.  Repositories and services return
// errors that satisfy errors.Is against exactly one of these; the HTTP
// layer maps each kind to a status code.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

// kindError carries a user-facing message while reporting its kind
// through errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string        { return e.msg }
func (e *kindError) Is(target error) bool { return target == e.kind }

func notFound(msg string) error { return &kindError{kind: ErrNotFound, msg: msg} }
func conflict(msg string) error { return &kindError{kind: ErrConflict, msg: msg} }

// Not-found errors.  A record owned by another user produces the same
// error as a record that does not exist.
var (
	ErrUserNotFound       = notFound("User not found")
	ErrCaregiverNotFound  = notFound("Caregiver not found")
	ErrElderlyNotFound    = notFound("Elderly not found")
	ErrTaskNotFound       = notFound("Task not found")
	ErrMedicationNotFound = notFound("Medication not found")
	ErrAssignmentNotFound = notFound("Assignment not found")
)

// Conflict errors.
var (
	ErrEmailExists      = conflict("User with this email already exists")
	ErrCaregiverExists  = conflict("Caregiver with this custom id already exists for this user")
	ErrElderlyExists    = conflict("Elderly with this custom id already exists for this user")
	ErrAssignmentExists = conflict("Assignment between this caregiver and elderly already exists")
)

// Invalid wraps a validation failure so that it reports ErrInvalidInput
// while keeping the underlying error (for example a field map) reachable
// through errors.As.
func Invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// Unauthorized returns an ErrUnauthorized-kind error with msg.
func Unauthorized(msg string) error { return &kindError{kind: ErrUnauthorized, msg: msg} }

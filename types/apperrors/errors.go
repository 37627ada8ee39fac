package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError is malformed or missing input, rejected before any store
// interaction.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
	}
	return "validation failed: " + e.Reason
}

func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError is a business overlap: the requested window collides with an
// active reservation. It names the contending resource so the caller can
// pick another date or room.
type ConflictError struct {
	ResourceKind          string // evento | habitacion | masaje
	ResourceLabel         string // room letter, venue date, massage type name
	CompetingConfirmation string
}

func (e *ConflictError) Error() string {
	if e.CompetingConfirmation != "" {
		return fmt.Sprintf("%s %s is not available for the requested dates (conflicts with %s)",
			e.ResourceKind, e.ResourceLabel, e.CompetingConfirmation)
	}
	return fmt.Sprintf("%s %s is not available for the requested dates", e.ResourceKind, e.ResourceLabel)
}

// NotFoundError targets a reservation or resource id that does not exist.
type NotFoundError struct {
	Entity string
	Ref    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Ref)
}

// InvalidTransitionError is a status change with no edge in the lifecycle
// graph.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

// ErrBadSignature rejects a webhook whose signature does not verify. Logged
// as a security event, distinct from business errors.
var ErrBadSignature = errors.New("payment webhook signature verification failed")

// TransientStorageError is an infrastructure-level commit failure
// (serialization conflict, deadlock, timeout). The whole operation is safe
// to retry; nothing partial was applied.
type TransientStorageError struct {
	Op  string
	Err error
}

func (e *TransientStorageError) Error() string {
	return fmt.Sprintf("transient storage failure during %s: %v", e.Op, e.Err)
}

func (e *TransientStorageError) Unwrap() error { return e.Err }

// Helpers for controllers mapping errors to HTTP statuses.

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}

func IsInvalidTransition(err error) bool {
	var t *InvalidTransitionError
	return errors.As(err, &t)
}

func IsTransient(err error) bool {
	var t *TransientStorageError
	return errors.As(err, &t)
}

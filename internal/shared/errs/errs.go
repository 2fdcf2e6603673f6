// Package errs defines the error taxonomy shared by the storage, service
// and API layers.
//
// Taxonomy:
//   - ValidationError: malformed geometry/enum/shape, rejected at the boundary
//   - NotFoundError: operation on a window or aggregate that does not exist
//   - ConflictError: stale expected version on a full-state save
//   - DatabaseError: durable-storage failure, fatal to the request
//
// Cache failures are deliberately absent: they are never surfaced to callers,
// only logged and treated as a miss.
package errs

import (
	"errors"
	"fmt"
)

// ValidationError rejects a malformed request before any state mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// Invalid creates a ValidationError for a field.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError marks an operation against a missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NotFound creates a NotFoundError for a resource instance.
func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError rejects a write whose expected version is stale. The caller
// must re-read and retry; no server-side merge is attempted.
type ConflictError struct {
	Expected int64
	Actual   int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict: expected %d, stored %d", e.Expected, e.Actual)
}

// Conflict creates a ConflictError from the supplied and stored versions.
func Conflict(expected, actual int64) *ConflictError {
	return &ConflictError{Expected: expected, Actual: actual}
}

// DatabaseError wraps a durable-storage failure with the operation name.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error in %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// Database wraps err as a DatabaseError for operation op.
func Database(op string, err error) *DatabaseError {
	return &DatabaseError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

// IsDatabase reports whether err is a DatabaseError.
func IsDatabase(err error) bool {
	var e *DatabaseError
	return errors.As(err, &e)
}

// Kind returns the taxonomy name for err, for metric labels.
func Kind(err error) string {
	switch {
	case IsValidation(err):
		return "validation"
	case IsNotFound(err):
		return "not_found"
	case IsConflict(err):
		return "conflict"
	case IsDatabase(err):
		return "database"
	default:
		return "unknown"
	}
}

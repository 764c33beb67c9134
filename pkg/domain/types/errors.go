package types

import "errors"

// Error taxonomy shared by every workflow operation. Use cases wrap these
// with goerr for context; the HTTP controller maps them to status codes.
var (
	// ErrValidation indicates malformed or missing input. Surfaced as
	// field-level errors, HTTP 422.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an unresolvable public ID. HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates a role or ownership mismatch. Returned before
	// entity resolution so existence is never leaked. HTTP 403.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition indicates the current status does not permit the
	// requested target status. HTTP 422.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrCapabilityMismatch indicates an assignment to an agent whose
	// specialization does not cover the required category. HTTP 422.
	ErrCapabilityMismatch = errors.New("agent specialization mismatch")

	// ErrConflict indicates a concurrent update lost the revision check.
	ErrConflict = errors.New("concurrent update conflict")
)

package domain

import "errors"

// Stable failure kinds surfaced by the repository and the rotation engine.
// Handlers translate these into the response envelope; anything that does not
// match one of them is treated as an internal error.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrConflict           = errors.New("conflict")
	ErrTransient          = errors.New("transient storage failure")
)

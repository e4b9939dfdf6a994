package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)

	// Fit errors (recovered inside the evaluator, never surfaced past it)
	ErrInsufficientData = errors.New("insufficient data for fit")
	ErrSingularDesign   = errors.New("design matrix is singular")
	ErrNonFiniteFit     = errors.New("fit produced non-finite values")
	ErrUnknownVariable  = errors.New("unknown variable key")

	// Determinism errors
	ErrSeedMismatch = errors.New("seed mismatch")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewFitError(sentinel error, detail string) error {
	return fmt.Errorf("%w: %s", sentinel, detail)
}

// IsFitError reports whether an error belongs to the recoverable fit family.
// The evaluator downgrades exactly these to a NotSignificant decision.
func IsFitError(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrSingularDesign) ||
		errors.Is(err, ErrNonFiniteFit) ||
		errors.Is(err, ErrUnknownVariable)
}

// IsNotFoundError checks if an error is a not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

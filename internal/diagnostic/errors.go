package diagnostic

import (
	"errors"
	"fmt"
)

var (
	// ErrLookupFailure reports an id or uid that is absent from a registry.
	ErrLookupFailure = errors.New("lookup failure")
	// ErrTypeMismatch reports an entity kind with no matching dispatch case.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvariantViolation reports a broken correspondence invariant.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrUnsupportedFeature reports a constraint kind the translator does not handle yet.
	ErrUnsupportedFeature = errors.New("unsupported feature")
)

// LookupFailure wraps ErrLookupFailure with the missing key.
func LookupFailure(what string, key any) error {
	return fmt.Errorf("%w: %s %v", ErrLookupFailure, what, key)
}

// TypeMismatch wraps ErrTypeMismatch with the offending kind.
func TypeMismatch(where string, kind any) error {
	return fmt.Errorf("%w: %s cannot handle %v", ErrTypeMismatch, where, kind)
}

// InvariantViolation wraps ErrInvariantViolation with a formatted reason.
func InvariantViolation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}

// UnsupportedFeature wraps ErrUnsupportedFeature with a formatted reason.
func UnsupportedFeature(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFeature, fmt.Sprintf(format, args...))
}

// Code returns the diagnostic code for a taxonomy error, or "error".
func Code(err error) string {
	switch {
	case errors.Is(err, ErrLookupFailure):
		return "lookup_failure"
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, ErrInvariantViolation):
		return "invariant_violation"
	case errors.Is(err, ErrUnsupportedFeature):
		return "unsupported_feature"
	default:
		return "error"
	}
}

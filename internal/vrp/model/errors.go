package model

import "fmt"

// ValidationError signals that a ProblemInstance is infeasible at
// construction time. It is returned, never panicked, and names the
// offending entity so the caller can surface a precise diagnostic.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid problem instance: %s", e.Reason)
}

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

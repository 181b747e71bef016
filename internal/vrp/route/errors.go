package route

import "fmt"

// InvariantError signals that a cache rebuild or probe produced an
// inconsistent state — earliest[k] > latest[k] in a route that the caller
// believed was feasible, or a mutation applied without a preceding
// successful probe. This is fatal to the descent it occurs in: it
// indicates a bug in the engine, not a user error.
type InvariantError struct {
	Vehicle  int
	Position int
	Reason   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("route invariant violated: vehicle %d position %d: %s", e.Vehicle, e.Position, e.Reason)
}

func newInvariantError(vehicle, position int, format string, args ...any) *InvariantError {
	return &InvariantError{Vehicle: vehicle, Position: position, Reason: fmt.Sprintf(format, args...)}
}

package depgraph

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for graph operations.
var (
	// ErrUnknownVertex indicates an edge endpoint that was never registered.
	ErrUnknownVertex = errors.New("depgraph: unknown vertex")
	// ErrCycle indicates that the edge set contains a dependency cycle.
	ErrCycle = errors.New("depgraph: dependency cycle")
)

// UnknownVertexError is returned by AddEdge when an endpoint was never
// registered with AddVertex.
type UnknownVertexError struct {
	ID string
}

// Error implements the error interface.
func (e *UnknownVertexError) Error() string {
	return fmt.Sprintf("depgraph: unknown vertex %q", e.ID)
}

// Is reports whether the target matches the sentinel error for UnknownVertexError.
func (e *UnknownVertexError) Is(target error) bool {
	return target == ErrUnknownVertex
}

// CycleError is returned by ordering operations when no valid order
// exists. It carries the offending cycle when one was reconstructed:
// vertex ids with the first and last elements equal.
type CycleError struct {
	Cycle []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	if len(e.Cycle) == 0 {
		return "depgraph: dependency cycle detected"
	}
	return fmt.Sprintf("depgraph: dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// Is reports whether the target matches the sentinel error for CycleError.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// IsCycleError reports whether the error is a CycleError.
func IsCycleError(err error) bool {
	var cycleErr *CycleError
	return errors.As(err, &cycleErr)
}

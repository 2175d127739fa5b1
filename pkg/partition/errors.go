package partition

import (
	"errors"
	"fmt"
)

// ErrInvalidHierarchy matches every [InvalidHierarchyError] via errors.Is.
var ErrInvalidHierarchy = errors.New("invalid hierarchy")

// Reasons reported by [InvalidHierarchyError].
const (
	ReasonCycle       = "cycle"
	ReasonSharedChild = "shared child"
)

// InvalidHierarchyError reports input that is not a tree: a node reachable
// from itself, or a node listed as a child of two different parents.
type InvalidHierarchyError struct {
	Node   string // name of the offending node
	Parent string // name of the parent that reached it a second time
	Reason string // ReasonCycle or ReasonSharedChild
}

func (e *InvalidHierarchyError) Error() string {
	return fmt.Sprintf("invalid hierarchy: %s at node %q (via %q)", e.Reason, e.Node, e.Parent)
}

// Is reports whether target is ErrInvalidHierarchy.
func (e *InvalidHierarchyError) Is(target error) bool {
	return target == ErrInvalidHierarchy
}

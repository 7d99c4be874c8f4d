package lattice

import "fmt"

// OrderViolationError reports a breach of the partial order or bound invariants.
// It always indicates a defect; the mutation that caused it is not committed.
type OrderViolationError struct {
	Handle Handle
	Other  Handle
	Reason string
}

func (e *OrderViolationError) Error() string {
	if e.Other == NoHandle {
		return fmt.Sprintf("lattice: order violation at %d: %s", e.Handle, e.Reason)
	}
	return fmt.Sprintf("lattice: order violation between %d and %d: %s", e.Handle, e.Other, e.Reason)
}

// InvalidHandleError is returned when a handle is not a member of the snapshot.
type InvalidHandleError struct {
	Handles []Handle
}

func (e *InvalidHandleError) Error() string {
	return fmt.Sprintf("lattice: invalid handle in %v", e.Handles)
}

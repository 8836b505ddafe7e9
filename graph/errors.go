package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrPositionOutOfRange is returned when an argument position is not in
	// [0, arity) for the target node.
	ErrPositionOutOfRange = errors.New("argument position out of range")

	// ErrPositionBound is returned when a typed edge already feeds the
	// argument position.
	ErrPositionBound = errors.New("argument position already bound")

	// ErrPositionFed is returned when Feed is called twice on the same
	// position within one run.
	ErrPositionFed = errors.New("argument position already fed")

	// ErrTypeMismatch is returned when a produced value cannot be assigned
	// to the argument slot it is wired or fed into.
	ErrTypeMismatch = errors.New("value type does not match argument slot")

	// ErrExclusiveFanOut is returned when a second consumer is attached to a
	// task whose result is exclusive (handed off, not copied).
	ErrExclusiveFanOut = errors.New("exclusive result cannot feed more than one consumer")

	// ErrExclusiveOutput is returned when an exclusive result is both marked
	// as output and wired to a consumer; the single value cannot go to both.
	ErrExclusiveOutput = errors.New("exclusive result cannot be both an output and a consumer input")

	// ErrNoResult is returned by Collect when the result slot is empty:
	// never produced, handed off to a consumer, dropped after delivery, or
	// cleared by Reset.
	ErrNoResult = errors.New("no result available")

	// ErrAlreadyExecuted is returned by Execute when the graph has already
	// run and Reset has not been called since.
	ErrAlreadyExecuted = errors.New("graph already executed, call Reset first")

	// ErrClosed is returned by Execute after Close.
	ErrClosed = errors.New("graph is closed")
)

// PanicError carries a recovered panic out of a task callable. It is latched
// on the failing node, inherited by every descendant, and returned by
// Execute.
type PanicError struct {
	// Node is the name of the task whose callable panicked.
	Node string
	// Value is the recovered panic value.
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task %s panicked: %v", e.Node, e.Value)
}

// SkipError reports that a node did not run because an ancestor failed or
// the run was cancelled before the node became ready.
type SkipError struct {
	// Node is the name of the skipped task.
	Node string
	// Cause is the ancestor failure or context error.
	Cause error
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("task %s skipped: %v", e.Node, e.Cause)
}

func (e *SkipError) Unwrap() error { return e.Cause }

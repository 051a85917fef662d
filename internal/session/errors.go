package session

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every contract breach reported by Start and
// Apply. These are programming errors in the caller, not user mistakes.
var ErrInvariant = errors.New("session invariant violated")

// InvariantError describes an event that is not valid in the current state.
type InvariantError struct {
	Op    string
	Stage Stage
	Msg   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("session: %s in stage %s: %s", e.Op, e.Stage, e.Msg)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

func violation(op string, s State, msg string) *InvariantError {
	return &InvariantError{Op: op, Stage: s.Stage, Msg: msg}
}

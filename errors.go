package store

import (
	"errors"
	"fmt"

	"github.com/AnatoleLucet/store/internal"
	"go.uber.org/multierr"
)

var (
	// ErrReentrantDispatch is returned when Dispatch is called from a reducer
	// or a listener while the same store is already dispatching.
	ErrReentrantDispatch = internal.ErrReentrant

	// ErrInvalidAction matches every *InvalidActionError.
	ErrInvalidAction = errors.New("store: invalid action")

	// ErrListenerPanic matches every *ListenerError.
	ErrListenerPanic = errors.New("store: listener panicked")

	// ErrNilReducer is returned by New when no reducer is given.
	ErrNilReducer = errors.New("store: reducer is nil")
)

// ReducerError reports a panic raised by the reducer.
// The state is left at its last committed value.
type ReducerError struct {
	// Kind of the action being reduced
	Kind string
	// Cause is the panic value, unchanged when it was an error
	Cause error
}

func (e *ReducerError) Error() string {
	return fmt.Sprintf("store: reducer failed on %q: %v", e.Kind, e.Cause)
}

func (e *ReducerError) Unwrap() error { return e.Cause }

// InvalidActionError reports an action rejected before reduction.
type InvalidActionError struct {
	Action Action
	Reason string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("store: invalid action %#v: %s", e.Action, e.Reason)
}

func (e *InvalidActionError) Is(target error) bool { return target == ErrInvalidAction }

// ListenerError reports listener panics during a notification pass.
// The transition that triggered the pass is committed.
type ListenerError struct {
	// Kind of the dispatched action
	Kind string
	Err  error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("store: %d listener(s) panicked after %q: %v", len(e.Errors()), e.Kind, e.Err)
}

// Errors returns one error per panicking listener, in call order.
func (e *ListenerError) Errors() []error { return multierr.Errors(e.Err) }

func (e *ListenerError) Unwrap() []error { return e.Errors() }

func (e *ListenerError) Is(target error) bool { return target == ErrListenerPanic }

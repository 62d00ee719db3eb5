package internal

import (
	"errors"
	"sync"

	"go.uber.org/atomic"
)

// ErrReentrant is returned when a goroutine tries to dispatch while it is
// already running a dispatch on the same Dispatcher.
var ErrReentrant = errors.New("store: dispatch called while a dispatch is in progress")

// Dispatcher serializes dispatches across goroutines and rejects the ones
// issued from inside a running dispatch (from a reducer or a listener).
type Dispatcher struct {
	mu sync.Mutex

	// id of the goroutine currently holding mu, 0 when idle
	active atomic.Int64
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Reentrant reports whether the calling goroutine is inside Run.
func (d *Dispatcher) Reentrant() bool {
	return d.active.Load() == getGID()
}

// Run executes fn while holding the dispatch lock.
// Callers from other goroutines wait their turn, the goroutine already inside Run gets ErrReentrant.
func (d *Dispatcher) Run(fn func()) error {
	gid := getGID()

	// only this goroutine can have stored its own id, so the check is race free
	if d.active.Load() == gid {
		return ErrReentrant
	}

	d.mu.Lock()
	d.active.Store(gid)
	defer func() {
		d.active.Store(0)
		d.mu.Unlock()
	}()

	fn()
	return nil
}

package internal

import (
	"slices"
	"sync"

	"go.uber.org/atomic"
)

type Listener struct {
	fn func()

	// false once the listener has been removed from its registry
	active *atomic.Bool
}

func (l *Listener) Active() bool {
	return l.active.Load()
}

func (l *Listener) Call() {
	l.fn()
}

// Registry holds listeners in registration order.
// The backing slice is copy-on-write: a snapshot taken before a mutation never sees it.
type Registry struct {
	mu sync.Mutex

	listeners []*Listener
}

func NewRegistry() *Registry {
	return &Registry{
		listeners: make([]*Listener, 0),
	}
}

func (r *Registry) Add(fn func()) *Listener {
	l := &Listener{fn: fn, active: atomic.NewBool(true)}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Listener, len(r.listeners), len(r.listeners)+1)
	copy(next, r.listeners)
	r.listeners = append(next, l)

	return l
}

// Remove deactivates the listener and drops it from the registry.
// It returns false when the listener was already removed.
func (r *Registry) Remove(l *Listener) bool {
	if !l.active.CompareAndSwap(true, false) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.listeners = slices.DeleteFunc(slices.Clone(r.listeners), func(other *Listener) bool {
		return other == l
	})

	return true
}

// Snapshot returns the listeners registered right now.
// The returned slice must not be modified.
func (r *Registry) Snapshot() []*Listener {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.listeners
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.listeners)
}

package store

import "fmt"

// Creator builds actions of one kind carrying a payload of type P.
type Creator[P any] struct {
	kind string
}

// NewCreator returns a creator for actions of the given kind.
func NewCreator[P any](kind string) Creator[P] {
	return Creator[P]{kind: kind}
}

func (c Creator[P]) Kind() string { return c.kind }

// New returns an action of this creator's kind carrying payload.
func (c Creator[P]) New(payload P) Plain {
	return Plain{Type: c.kind, Payload: payload}
}

// Match reports whether a was built by this creator (or has the same kind).
func (c Creator[P]) Match(a Action) bool {
	return a != nil && a.Kind() == c.kind
}

// Slice groups the case reducers of one field of the state.
// Cases are registered up front, before the slice's reducer is used.
type Slice[S any] struct {
	name    string
	initial S
	cases   map[string]func(S, Action) S
}

// NewSlice creates an empty slice. Its own action kinds are prefixed with "name/".
func NewSlice[S any](name string, initial S) *Slice[S] {
	return &Slice[S]{
		name:    name,
		initial: initial,
		cases:   make(map[string]func(S, Action) S),
	}
}

// On registers a case reducer for the kind "<slice>/<name>" and returns its creator.
// The reducer panics (and so the dispatch fails) if an action of that kind
// carries a payload that is not a P.
func On[S, P any](s *Slice[S], name string, fn func(state S, payload P) S) Creator[P] {
	creator := NewCreator[P](s.name + "/" + name)

	s.Handle(creator.Kind(), func(state S, action Action) S {
		return fn(state, payloadOf[P](action))
	})

	return creator
}

// Handle registers a case reducer for an arbitrary action kind, usually one
// owned by another slice. It panics if the kind already has a case.
func (s *Slice[S]) Handle(kind string, fn func(state S, action Action) S) {
	if _, ok := s.cases[kind]; ok {
		panic(fmt.Sprintf("store: slice %q already handles %q", s.name, kind))
	}

	s.cases[kind] = fn
}

func (s *Slice[S]) Name() string { return s.name }

func (s *Slice[S]) Initial() S { return s.initial }

// Reducer returns a reducer dispatching on action kind. Unknown kinds leave the state as is.
func (s *Slice[S]) Reducer() Reducer[S, Action] {
	return func(state S, action Action) S {
		if fn, ok := s.cases[action.Kind()]; ok {
			return fn(state, action)
		}

		return state
	}
}

// Field makes the slice a field of a Combination, named after the slice.
func (s *Slice[S]) Field() Entry[Action] {
	return Field(s.name, s.initial, s.Reducer())
}

func payloadOf[P any](a Action) P {
	if pa, ok := a.(PayloadAction); ok {
		return as[P](pa.Data())
	}

	var zero P
	return zero
}

package store

import (
	"fmt"
	"slices"

	"github.com/AnatoleLucet/store/internal"
	mapset "github.com/deckarep/golang-set/v2"
)

// Entry is one named field of a Combination.
type Entry[A Action] struct {
	name    string
	initial any
	reduce  func(state any, action A) any
}

// Field binds a reducer over T to a named field of a combined state tree.
func Field[T any, A Action](name string, initial T, reducer Reducer[T, A]) Entry[A] {
	e := Entry[A]{name: name, initial: initial}

	if reducer != nil {
		e.reduce = func(state any, action A) any {
			return reducer(as[T](state), action)
		}
	}

	return e
}

// Tree is the immutable state produced by a Combination's reducer.
type Tree struct {
	keys   []string
	values map[string]any
}

// Get returns the value of a field.
func (t *Tree) Get(name string) (any, bool) {
	if t == nil {
		return nil, false
	}

	v, ok := t.values[name]
	return v, ok
}

// Keys returns the field names in declaration order.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}

	return slices.Clone(t.keys)
}

func (t *Tree) Len() int {
	if t == nil {
		return 0
	}

	return len(t.keys)
}

// Select returns the value of a field as T, or T's zero value when the field is absent.
// It panics if the field holds another type.
func Select[T any](t *Tree, name string) T {
	v, _ := t.Get(name)
	return as[T](v)
}

// Combination builds a single reducer out of independent field reducers.
type Combination[A Action] struct {
	entries []Entry[A]
	initial *Tree
}

// Combine creates a Combination from entries. Field order is kept.
// It panics when a name is empty or duplicated, or when a reducer is nil.
func Combine[A Action](entries ...Entry[A]) *Combination[A] {
	seen := mapset.NewThreadUnsafeSet[string]()

	initial := &Tree{
		keys:   make([]string, 0, len(entries)),
		values: make(map[string]any, len(entries)),
	}

	for _, e := range entries {
		if e.name == "" {
			panic("store: combined field with an empty name")
		}
		if e.reduce == nil {
			panic(fmt.Sprintf("store: combined field %q has no reducer", e.name))
		}
		if !seen.Add(e.name) {
			panic(fmt.Sprintf("store: duplicate combined field %q", e.name))
		}

		initial.keys = append(initial.keys, e.name)
		initial.values[e.name] = e.initial
	}

	return &Combination[A]{
		entries: slices.Clone(entries),
		initial: initial,
	}
}

// Initial returns the tree holding every field's initial value.
func (c *Combination[A]) Initial() *Tree {
	return c.initial
}

// Reducer returns the combined reducer. Each field reducer only sees its own
// field. The input tree is returned as is when no field changed.
func (c *Combination[A]) Reducer() Reducer[*Tree, A] {
	return func(state *Tree, action A) *Tree {
		if state == nil {
			state = c.initial
		}

		// a tree carrying other fields is rebuilt with ours only
		changed := state.Len() != len(c.entries)
		values := make(map[string]any, len(c.entries))

		for _, e := range c.entries {
			prev, ok := state.Get(e.name)
			if !ok {
				prev = e.initial
				changed = true
			}

			next := e.reduce(prev, action)
			if !internal.Same(prev, next) {
				changed = true
			}

			values[e.name] = next
		}

		if !changed {
			return state
		}

		return &Tree{keys: c.initial.keys, values: values}
	}
}

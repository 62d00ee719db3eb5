package store

import (
	"sync"

	"github.com/AnatoleLucet/store/internal"
)

// Selector derives a value from the state.
type Selector[S, R any] func(state S) R

// Same is the equality used by memoized selectors and Combine to decide
// whether a value changed: reference identity for pointers, maps, slices and
// channels, == for comparable values, deep equality otherwise.
func Same(a, b any) bool {
	return internal.Same(a, b)
}

// memo caches the last output together with the inputs it was computed from.
type memo[R any] struct {
	mu sync.Mutex

	valid  bool
	inputs []any
	value  R
}

func (m *memo[R]) get(inputs []any, compute func() R) R {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && sameInputs(m.inputs, inputs) {
		return m.value
	}

	m.value = compute()
	m.inputs = inputs
	m.valid = true

	return m.value
}

func sameInputs(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !Same(a[i], b[i]) {
			return false
		}
	}

	return true
}

// Memo wraps fn so it only recomputes when called with a state that is not
// Same as the previous one.
func Memo[S, R any](fn func(S) R) Selector[S, R] {
	m := &memo[R]{}

	return func(state S) R {
		return m.get([]any{state}, func() R { return fn(state) })
	}
}

// NewSelector composes an input selector with a result function that only
// re-runs when the input value changed.
func NewSelector[S, I1, R any](in1 func(S) I1, result func(I1) R) Selector[S, R] {
	m := &memo[R]{}

	return func(state S) R {
		a := in1(state)
		return m.get([]any{a}, func() R { return result(a) })
	}
}

// NewSelector2 is NewSelector with two inputs.
func NewSelector2[S, I1, I2, R any](in1 func(S) I1, in2 func(S) I2, result func(I1, I2) R) Selector[S, R] {
	m := &memo[R]{}

	return func(state S) R {
		a, b := in1(state), in2(state)
		return m.get([]any{a, b}, func() R { return result(a, b) })
	}
}

// NewSelector3 is NewSelector with three inputs.
func NewSelector3[S, I1, I2, I3, R any](
	in1 func(S) I1,
	in2 func(S) I2,
	in3 func(S) I3,
	result func(I1, I2, I3) R,
) Selector[S, R] {
	m := &memo[R]{}

	return func(state S) R {
		a, b, c := in1(state), in2(state), in3(state)
		return m.get([]any{a, b, c}, func() R { return result(a, b, c) })
	}
}

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendTodo(state []string, action Plain) []string {
	if action.Type != "ADD_TODO" {
		return state
	}

	next := make([]string, 0, len(state)+1)
	next = append(next, state...)
	return append(next, action.Payload.(string))
}

func TestCombine(t *testing.T) {
	t.Run("initial tree", func(t *testing.T) {
		c := Combine(
			Field("count", 0, counter),
			Field("todos", []string(nil), appendTodo),
		)

		tree := c.Initial()
		assert.Equal(t, []string{"count", "todos"}, tree.Keys())
		assert.Equal(t, 2, tree.Len())
		assert.Equal(t, 0, Select[int](tree, "count"))
		assert.Nil(t, Select[[]string](tree, "todos"))
	})

	t.Run("only the handled field changes", func(t *testing.T) {
		todos := []string{"write tests"}
		c := Combine(
			Field("count", 0, counter),
			Field("todos", todos, appendTodo),
		)
		reduce := c.Reducer()

		before := c.Initial()
		after := reduce(before, increment)

		assert.NotSame(t, before, after)
		assert.Equal(t, 1, Select[int](after, "count"))
		assert.True(t, Same(todos, Select[[]string](after, "todos")))

		// the previous tree is never mutated
		assert.Equal(t, 0, Select[int](before, "count"))
	})

	t.Run("unchanged tree is returned as is", func(t *testing.T) {
		c := Combine(
			Field("count", 0, counter),
			Field("todos", []string{}, appendTodo),
		)

		tree := c.Initial()
		assert.Same(t, tree, c.Reducer()(tree, Plain{Type: "UNKNOWN"}))
	})

	t.Run("nil tree starts from the initial values", func(t *testing.T) {
		c := Combine(Field("count", 10, counter))

		tree := c.Reducer()(nil, increment)
		assert.Equal(t, 11, Select[int](tree, "count"))
	})

	t.Run("nested combinations", func(t *testing.T) {
		inner := Combine(Field("count", 0, counter))
		outer := Combine(
			Field("inner", inner.Initial(), inner.Reducer()),
			Field("todos", []string{}, appendTodo),
		)

		tree := outer.Reducer()(outer.Initial(), increment)
		assert.Equal(t, 1, Select[int](Select[*Tree](tree, "inner"), "count"))

		same := outer.Reducer()(tree, Plain{Type: "UNKNOWN"})
		assert.Same(t, tree, same)
	})

	t.Run("with a store", func(t *testing.T) {
		c := Combine(
			Field("count", 0, counter),
			Field("todos", []string{}, appendTodo),
		)

		s, err := New(c.Initial(), c.Reducer())
		require.NoError(t, err)

		_, err = s.Dispatch(Plain{Type: "ADD_TODO", Payload: "ship it"})
		require.NoError(t, err)
		_, err = s.Dispatch(increment)
		require.NoError(t, err)

		assert.Equal(t, 1, Select[int](s.GetState(), "count"))
		assert.Equal(t, []string{"ship it"}, Select[[]string](s.GetState(), "todos"))
	})

	t.Run("invalid fields", func(t *testing.T) {
		assert.Panics(t, func() { Combine(Field("", 0, counter)) })
		assert.Panics(t, func() { Combine(Field[int, Plain]("count", 0, nil)) })
		assert.Panics(t, func() {
			Combine(Field("count", 0, counter), Field("count", 0, counter))
		})
	})

	t.Run("missing field", func(t *testing.T) {
		var tree *Tree
		_, ok := tree.Get("count")
		assert.False(t, ok)
		assert.Equal(t, 0, Select[int](tree, "count"))
	})
}

package internal

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher(t *testing.T) {
	t.Run("runs fn", func(t *testing.T) {
		d := NewDispatcher()
		ran := false

		assert.NoError(t, d.Run(func() { ran = true }))
		assert.True(t, ran)
		assert.False(t, d.Reentrant())
	})

	t.Run("rejects nested runs on the same goroutine", func(t *testing.T) {
		d := NewDispatcher()
		var nested error

		err := d.Run(func() {
			assert.True(t, d.Reentrant())
			nested = d.Run(func() { t.Fatal("nested run executed") })
		})

		assert.NoError(t, err)
		assert.ErrorIs(t, nested, ErrReentrant)
		assert.False(t, d.Reentrant())
	})

	t.Run("serializes other goroutines", func(t *testing.T) {
		d := NewDispatcher()
		inside := 0
		count := 0

		var wg sync.WaitGroup
		for range 50 {
			wg.Go(func() {
				err := d.Run(func() {
					inside++
					assert.Equal(t, 1, inside)
					count++
					inside--
				})
				assert.NoError(t, err)
			})
		}
		wg.Wait()

		assert.Equal(t, 50, count)
	})

	t.Run("a goroutine waits while another is parked inside", func(t *testing.T) {
		d := NewDispatcher()
		entered := make(chan struct{})
		release := make(chan struct{})
		done := make(chan error)

		go func() {
			_ = d.Run(func() {
				close(entered)
				<-release
			})
		}()
		<-entered

		go func() {
			done <- d.Run(func() {})
		}()

		select {
		case err := <-done:
			t.Fatalf("second run returned before the first finished: %v", err)
		case <-time.After(50 * time.Millisecond):
		}

		close(release)
		assert.NoError(t, <-done)
	})

	t.Run("releases the lock after a panic", func(t *testing.T) {
		d := NewDispatcher()

		assert.Panics(t, func() {
			_ = d.Run(func() { panic("boom") })
		})
		assert.False(t, d.Reentrant())
		assert.NoError(t, d.Run(func() {}))
	})
}

// Package store implements a predictable state container: one immutable state
// value, changed only by dispatching actions through a pure reducer, with
// listeners notified after every committed transition.
package store

import (
	"time"

	"github.com/AnatoleLucet/store/internal"
	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Reducer computes the next state from the current one and an action.
// It must be pure: no dispatching, no mutation of state or of anything outside it.
type Reducer[S any, A Action] func(state S, action A) S

// Store holds the state of an application.
// It is safe for concurrent use; dispatches are applied one at a time.
type Store[S any, A Action] struct {
	id      uuid.UUID
	cfg     *config
	logger  *zap.Logger
	metrics *metrics

	reducer Reducer[S, A]
	state   *atomic.Pointer[S]

	dispatcher *internal.Dispatcher
	listeners  *internal.Registry
}

// New creates a store holding initial and reducing actions with reducer.
func New[S any, A Action](initial S, reducer Reducer[S, A], opts ...Option) (*Store[S, A], error) {
	if reducer == nil {
		return nil, ErrNilReducer
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	m, err := newMetrics(cfg.meterProvider, cfg.name)
	if err != nil {
		return nil, err
	}

	id := uuid.New()

	return &Store[S, A]{
		id:      id,
		cfg:     cfg,
		logger:  cfg.logger.With(zap.String("store", cfg.name), zap.Stringer("store_id", id)),
		metrics: m,

		reducer: reducer,
		state:   atomic.NewPointer(&initial),

		dispatcher: internal.NewDispatcher(),
		listeners:  internal.NewRegistry(),
	}, nil
}

// Name returns the name given with WithName.
func (s *Store[S, A]) Name() string { return s.cfg.name }

// ID returns the identifier generated for this store.
func (s *Store[S, A]) ID() uuid.UUID { return s.id }

// GetState returns the latest committed state. It never blocks.
func (s *Store[S, A]) GetState() S {
	return *s.state.Load()
}

// Dispatch reduces action against the current state, commits the result and
// notifies every listener in registration order before returning the new state.
//
// Dispatch fails with ErrReentrantDispatch when called from a reducer or
// listener of this store, with an *InvalidActionError when the action is
// rejected, and with a *ReducerError when the reducer panics. In those cases
// the state is unchanged and the returned state is the current one.
// A *ListenerError means the state was committed but some listeners panicked.
func (s *Store[S, A]) Dispatch(action A) (S, error) {
	if s.dispatcher.Reentrant() {
		s.logger.Warn("reentrant dispatch rejected")
		return s.GetState(), ErrReentrantDispatch
	}

	kind, err := s.validate(action)
	if err != nil {
		s.logger.Warn("action rejected", zap.Error(err))
		return s.GetState(), err
	}

	logger := s.logger.With(zap.String("action", kind))

	var (
		next        S
		reduceErr   error
		listenerErr error
		listeners   int
	)

	start := time.Now()
	err = s.dispatcher.Run(func() {
		next, reduceErr = reduce(s.reducer, s.GetState(), action)
		if reduceErr != nil {
			return
		}

		s.state.Store(&next)
		listeners, listenerErr = s.notify(logger, kind)
	})

	switch {
	case err != nil:
		logger.Warn("reentrant dispatch rejected")
		return s.GetState(), err
	case reduceErr != nil:
		logger.Error("reducer panicked", zap.Error(reduceErr))
		s.metrics.reducerFailed(kind)
		return s.GetState(), reduceErr
	}

	s.metrics.committed(kind, time.Since(start))
	logger.Debug("dispatch committed", zap.Int("listeners", listeners))

	return next, listenerErr
}

// Subscribe registers listener to be called after every committed dispatch,
// even when the state did not change. Registering the same function twice
// registers it twice.
//
// The returned function removes this registration only. It is safe to call
// more than once and from inside a listener: a listener removed during a
// notification pass is not called later in that pass. Listeners added during
// a pass are first called on the next dispatch.
func (s *Store[S, A]) Subscribe(listener func()) (unsubscribe func()) {
	if listener == nil {
		panic("store: nil listener")
	}

	l := s.listeners.Add(listener)
	return func() { s.listeners.Remove(l) }
}

// validate returns the action kind, or an *InvalidActionError when the action
// is nil, its Kind panics (a nil pointer with a value receiver), or the kind
// is empty while validation is enabled.
func (s *Store[S, A]) validate(action A) (string, error) {
	if isNil(action) {
		return "", &InvalidActionError{Reason: "action is nil"}
	}

	var kind string
	if err := internal.Catch(func() { kind = action.Kind() }); err != nil {
		return "", &InvalidActionError{Action: action, Reason: err.Error()}
	}

	if s.cfg.validate && kind == "" {
		return "", &InvalidActionError{Action: action, Reason: "missing kind"}
	}

	return kind, nil
}

// notify calls the listeners registered when the pass starts and returns how many ran.
func (s *Store[S, A]) notify(logger *zap.Logger, kind string) (int, error) {
	var (
		errs  error
		calls int
	)

	for _, l := range s.listeners.Snapshot() {
		if !l.Active() {
			continue
		}

		calls++
		if err := internal.Catch(l.Call); err != nil {
			logger.Error("listener panicked", zap.Error(err))
			s.metrics.listenerFailed(kind)
			errs = multierr.Append(errs, err)

			if s.cfg.policy == ListenerFailFast {
				break
			}
		}
	}

	if errs == nil {
		return calls, nil
	}

	return calls, &ListenerError{Kind: kind, Err: errs}
}

func reduce[S any, A Action](reducer Reducer[S, A], state S, action A) (next S, err error) {
	if err := internal.Catch(func() { next = reducer(state, action) }); err != nil {
		return state, &ReducerError{Kind: kindOf(action), Cause: err}
	}

	return next, nil
}

func kindOf(a Action) (kind string) {
	if isNil(a) {
		return ""
	}

	_ = internal.Catch(func() { kind = a.Kind() })
	return kind
}

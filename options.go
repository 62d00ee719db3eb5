package store

import (
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const defaultName = "store"

// ListenerPolicy decides what a notification pass does when a listener panics.
type ListenerPolicy int

const (
	// ListenerIsolate recovers the panic, keeps notifying the remaining
	// listeners and reports every failure once the pass is over.
	ListenerIsolate ListenerPolicy = iota
	// ListenerFailFast stops the pass at the first panic.
	ListenerFailFast
)

func (p ListenerPolicy) String() string {
	switch p {
	case ListenerIsolate:
		return "isolate"
	case ListenerFailFast:
		return "fail-fast"
	default:
		return fmt.Sprintf("ListenerPolicy(%d)", int(p))
	}
}

// ParseListenerPolicy parses "isolate" or "fail-fast". An empty string is ListenerIsolate.
func ParseListenerPolicy(s string) (ListenerPolicy, error) {
	switch s {
	case "", "isolate":
		return ListenerIsolate, nil
	case "fail-fast":
		return ListenerFailFast, nil
	default:
		return 0, fmt.Errorf("store: unknown listener policy %q", s)
	}
}

type config struct {
	name          string
	logger        *zap.Logger
	meterProvider metric.MeterProvider
	validate      bool
	policy        ListenerPolicy
}

func defaultConfig() *config {
	return &config{
		name:          defaultName,
		logger:        zap.NewNop(),
		meterProvider: otel.GetMeterProvider(),
		policy:        ListenerIsolate,
	}
}

// Option configures a Store during New. It returns an error when its value is invalid.
type Option func(*config) error

// WithName names the store in logs and metrics. Defaults to "store".
func WithName(name string) Option {
	return func(cfg *config) error {
		if name == "" {
			return errors.New("store: name cannot be empty")
		}
		cfg.name = name
		return nil
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return errors.New("store: logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithMeterProvider sets the provider used for dispatch metrics.
// If none is specified, the global provider is used.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *config) error {
		if provider == nil {
			return errors.New("store: meter provider cannot be nil")
		}
		cfg.meterProvider = provider
		return nil
	}
}

// WithActionValidation rejects actions with an empty Kind before they reach the reducer.
func WithActionValidation(enabled bool) Option {
	return func(cfg *config) error {
		cfg.validate = enabled
		return nil
	}
}

// WithListenerPolicy sets how listener panics are handled. Defaults to ListenerIsolate.
func WithListenerPolicy(policy ListenerPolicy) Option {
	return func(cfg *config) error {
		if policy != ListenerIsolate && policy != ListenerFailFast {
			return fmt.Errorf("store: invalid listener policy %s", policy)
		}
		cfg.policy = policy
		return nil
	}
}

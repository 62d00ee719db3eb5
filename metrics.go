package store

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/AnatoleLucet/store"

type metrics struct {
	store attribute.KeyValue

	dispatches       metric.Int64Counter
	duration         metric.Float64Histogram
	reducerFailures  metric.Int64Counter
	listenerFailures metric.Int64Counter
}

func newMetrics(provider metric.MeterProvider, name string) (*metrics, error) {
	meter := provider.Meter(instrumentationName)
	m := &metrics{store: attribute.String("store", name)}

	var err error
	if m.dispatches, err = meter.Int64Counter(
		"store.dispatch.count",
		metric.WithDescription("Number of committed dispatches"),
	); err != nil {
		return nil, err
	}

	if m.duration, err = meter.Float64Histogram(
		"store.dispatch.duration",
		metric.WithDescription("Time spent reducing and notifying listeners"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}

	if m.reducerFailures, err = meter.Int64Counter(
		"store.reducer.failures",
		metric.WithDescription("Number of reducer panics"),
	); err != nil {
		return nil, err
	}

	if m.listenerFailures, err = meter.Int64Counter(
		"store.listener.failures",
		metric.WithDescription("Number of listener panics"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *metrics) attrs(kind string) metric.MeasurementOption {
	return metric.WithAttributes(m.store, attribute.String("action", kind))
}

func (m *metrics) committed(kind string, elapsed time.Duration) {
	ctx := context.Background()
	m.dispatches.Add(ctx, 1, m.attrs(kind))
	m.duration.Record(ctx, float64(elapsed)/float64(time.Millisecond), m.attrs(kind))
}

func (m *metrics) reducerFailed(kind string) {
	m.reducerFailures.Add(context.Background(), 1, m.attrs(kind))
}

func (m *metrics) listenerFailed(kind string) {
	m.listenerFailures.Add(context.Background(), 1, m.attrs(kind))
}

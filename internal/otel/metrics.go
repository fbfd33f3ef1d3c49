package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "pane-relay"

// Metrics holds all OTEL metric instruments for pane-relay.
// All counters are cumulative (monotonic) and safe for concurrent use.
type Metrics struct {
	// Mirror counters (partitioned by result: changed, unchanged, error)
	CaptureCycles metric.Int64Counter
	// Stream events pushed to subscribers
	StreamEvents metric.Int64Counter
	// Injection counters (partitioned by kind: text, key; result: ok, error)
	Injections metric.Int64Counter
	// Catalog builds and the number of commands each produced
	CatalogBuilds   metric.Int64Counter
	CatalogCommands metric.Int64Histogram
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.CaptureCycles, err = meter.Int64Counter("mirror.capture_cycles",
		metric.WithDescription("Pane capture cycles partitioned by result (changed, unchanged, error)"))
	if err != nil {
		return nil, err
	}

	m.StreamEvents, err = meter.Int64Counter("mirror.stream_events",
		metric.WithDescription("Full-snapshot events pushed to stream subscribers"))
	if err != nil {
		return nil, err
	}

	m.Injections, err = meter.Int64Counter("injector.sends",
		metric.WithDescription("Key-sequence injections partitioned by kind (text, key) and result (ok, error)"))
	if err != nil {
		return nil, err
	}

	m.CatalogBuilds, err = meter.Int64Counter("catalog.builds",
		metric.WithDescription("Command catalog builds"))
	if err != nil {
		return nil, err
	}

	m.CatalogCommands, err = meter.Int64Histogram("catalog.commands",
		metric.WithDescription("Number of commands per catalog build"),
		metric.WithUnit("{command}"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordCaptureCycle records one mirror poll cycle with its result.
func (m *Metrics) RecordCaptureCycle(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.CaptureCycles.Add(ctx, 1, metric.WithAttributes(
		attribute.String("capture.result", result),
	))
}

// RecordStreamEvent records one snapshot event pushed to a subscriber.
func (m *Metrics) RecordStreamEvent(ctx context.Context) {
	if m == nil {
		return
	}
	m.StreamEvents.Add(ctx, 1)
}

// RecordInjection records one send_text/send_key call and its outcome.
func (m *Metrics) RecordInjection(ctx context.Context, kind, result string) {
	if m == nil {
		return
	}
	m.Injections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("injection.kind", kind),
		attribute.String("injection.result", result),
	))
}

// RecordCatalogBuild records one catalog build and its size.
func (m *Metrics) RecordCatalogBuild(ctx context.Context, commands int) {
	if m == nil {
		return
	}
	m.CatalogBuilds.Add(ctx, 1)
	m.CatalogCommands.Record(ctx, int64(commands))
}

package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Status labels used by Observe.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// BusinessMetrics records the outcome and latency of use case operations.
type BusinessMetrics interface {
	// Observe counts one operation and records its duration since started. The status
	// label is derived from err.
	// Domain examples: "auth", "shopify", "user"
	// Operation examples: "login", "settings_save", "sync"
	Observe(ctx context.Context, domain, operation string, started time.Time, err error)
}

// StatusOf maps an operation error to its status label.
func StatusOf(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
}

// NewBusinessMetrics creates BusinessMetrics on the given meter provider, prefixing
// metric names with namespace.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
	}, nil
}

func (b *businessMetrics) Observe(
	ctx context.Context,
	domain, operation string,
	started time.Time,
	err error,
) {
	attrs := metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", StatusOf(err)),
	)
	b.operationCounter.Add(ctx, 1, attrs)
	b.durationHisto.Record(ctx, time.Since(started).Seconds(), attrs)
}

// NoOpBusinessMetrics is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

// Observe does nothing.
func (n *NoOpBusinessMetrics) Observe(context.Context, string, string, time.Time, error) {}

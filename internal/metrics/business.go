package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics defines the interface for recording business operation metrics.
// Implementations track operation counts for observability across different
// business domains (session, share, capability, folder).
type BusinessMetrics interface {
	// RecordOperation records a business operation with its status.
	// Domain examples: "session", "share", "capability"
	// Operation examples: "save", "issue", "resolve", "sweep"
	// Status examples: "success", "error"
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordSweep records the number of capability records removed by a sweep run.
	RecordSweep(ctx context.Context, removed int64)
}

// businessMetrics implements BusinessMetrics using OpenTelemetry metrics.
type businessMetrics struct {
	operationCounter metric.Int64Counter
	sweepCounter     metric.Int64Counter
}

// NewBusinessMetrics creates a new BusinessMetrics implementation using the provided meter provider.
// The namespace parameter is used as a prefix for all metric names (e.g., "minidrive").
// Returns error if meters cannot be initialized.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	// Create counter for total operations
	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	// Create counter for swept capability records
	sweepCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_capabilities_swept_total", namespace),
		metric.WithDescription("Total number of expired capability records removed by sweeps"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sweep counter: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		sweepCounter:     sweepCounter,
	}, nil
}

// RecordOperation increments the operation counter with domain, operation, and status labels.
func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// RecordSweep adds the number of removed records to the sweep counter.
func (b *businessMetrics) RecordSweep(ctx context.Context, removed int64) {
	b.sweepCounter.Add(ctx, removed)
}

// NoOpBusinessMetrics is a no-op implementation of BusinessMetrics for when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

// RecordOperation does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	// No-op
}

// RecordSweep does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordSweep(ctx context.Context, removed int64) {
	// No-op
}

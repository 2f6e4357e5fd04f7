package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records business-level counters and durations: login
// attempts and write operations on students, classes, and enrollments.
// A nil *BusinessMetrics is valid and records nothing, so handlers never
// need to branch on whether metrics are enabled.
type BusinessMetrics struct {
	loginCounter     metric.Int64Counter
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
}

// NewBusinessMetrics creates a BusinessMetrics backed by the provided meter provider.
// The namespace parameter is used as a prefix for all metric names (e.g., "school").
// Returns error if meters cannot be initialized.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (*BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	loginCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_login_attempts_total", namespace),
		metric.WithDescription("Total number of login attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create login counter: %w", err)
	}

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

	return &BusinessMetrics{
		loginCounter:     loginCounter,
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
	}, nil
}

// RecordLogin increments the login attempt counter with a success/failure status label.
func (b *BusinessMetrics) RecordLogin(ctx context.Context, success bool) {
	if b == nil {
		return
	}
	status := "failure"
	if success {
		status = "success"
	}
	b.loginCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", status)),
	)
}

// RecordOperation increments the operation counter with entity, operation, and status labels.
// Entity examples: "student", "class", "enrollment"
// Operation examples: "create", "update", "delete"
// Status examples: "success", "error"
func (b *BusinessMetrics) RecordOperation(ctx context.Context, entity, operation, status string) {
	if b == nil {
		return
	}
	b.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("entity", entity),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// RecordDuration records the operation duration in seconds with entity, operation, and status labels.
func (b *BusinessMetrics) RecordDuration(
	ctx context.Context,
	entity, operation string,
	duration time.Duration,
	status string,
) {
	if b == nil {
		return
	}
	b.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("entity", entity),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

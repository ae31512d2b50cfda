package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Operation names a recorded business operation and the domain it belongs to.
type Operation struct {
	Domain string
	Name   string
}

// Business operations recorded by the use case decorators.
var (
	SecretResolve  = Operation{Domain: "secrets", Name: "secret_resolve"}
	SecretSet      = Operation{Domain: "secrets", Name: "secret_set"}
	SecretList     = Operation{Domain: "secrets", Name: "secret_list"}
	SecretDescribe = Operation{Domain: "secrets", Name: "secret_describe"}

	AdminAuthenticate     = Operation{Domain: "auth", Name: "admin_authenticate"}
	AdminCredentialCreate = Operation{Domain: "auth", Name: "admin_credential_create"}
)

// Status is the outcome label of a recorded operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// StatusOf maps an operation error to its status label.
// Absent secrets are not errors, so a resolve that finds nothing is a success.
func StatusOf(err error) Status {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// BusinessMetrics records counts and durations of secret and admin operations.
type BusinessMetrics interface {
	// RecordOperation counts one completed operation.
	RecordOperation(ctx context.Context, op Operation, status Status)

	// RecordDuration records how long an operation took, in seconds, as a histogram.
	RecordDuration(ctx context.Context, op Operation, duration time.Duration, status Status)
}

// Observe records both the count and the duration of op, started at start and finished with err.
func Observe(ctx context.Context, m BusinessMetrics, op Operation, start time.Time, err error) {
	status := StatusOf(err)
	m.RecordOperation(ctx, op, status)
	m.RecordDuration(ctx, op, time.Since(start), status)
}

// businessMetrics implements BusinessMetrics using OpenTelemetry metrics.
type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
}

// NewBusinessMetrics creates BusinessMetrics on meterProvider. Metric names are prefixed
// with namespace, e.g. secretkeeper_operations_total.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of secret and admin operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of secret and admin operations in seconds"),
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

func attributes(op Operation, status Status) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("domain", op.Domain),
		attribute.String("operation", op.Name),
		attribute.String("status", string(status)),
	)
}

func (b *businessMetrics) RecordOperation(ctx context.Context, op Operation, status Status) {
	b.operationCounter.Add(ctx, 1, attributes(op, status))
}

func (b *businessMetrics) RecordDuration(ctx context.Context, op Operation, duration time.Duration, status Status) {
	b.durationHisto.Record(ctx, duration.Seconds(), attributes(op, status))
}

// NoOpBusinessMetrics discards everything. The container uses it when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(context.Context, Operation, Status) {}

func (n *NoOpBusinessMetrics) RecordDuration(context.Context, Operation, time.Duration, Status) {}

package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const vaultMeterName = "vault.service"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

type VaultMetrics struct {
	itemOperations     metric.Int64Counter
	statsDuration      metric.Float64Histogram
	upcomingSelected   metric.Int64Histogram
	alertsProcessed    metric.Int64Counter
	dispatchDuration   metric.Float64Histogram
	presignRequests    metric.Int64Counter
	classifyDateErrors metric.Int64Counter
}

func NewVaultMetrics() (*VaultMetrics, error) {
	meter := otel.Meter(vaultMeterName)

	itemOperations, err := meter.Int64Counter(
		"vault_item_operations_total",
		metric.WithDescription("Item create, update and delete operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	statsDuration, err := meter.Float64Histogram(
		"vault_stats_build_duration_seconds",
		metric.WithDescription("Time spent loading and aggregating dashboard statistics"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
		),
	)
	if err != nil {
		return nil, err
	}

	upcomingSelected, err := meter.Int64Histogram(
		"vault_upcoming_selected_items",
		metric.WithDescription("Number of items returned by the upcoming selector"),
		metric.WithUnit("{item}"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 4, 8, 16, 32),
	)
	if err != nil {
		return nil, err
	}

	alertsProcessed, err := meter.Int64Counter(
		"vault_alerts_total",
		metric.WithDescription("Alert candidates processed by the dispatcher"),
		metric.WithUnit("{alert}"),
	)
	if err != nil {
		return nil, err
	}

	dispatchDuration, err := meter.Float64Histogram(
		"vault_alert_dispatch_duration_seconds",
		metric.WithDescription("Alert dispatch run duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
		),
	)
	if err != nil {
		return nil, err
	}

	presignRequests, err := meter.Int64Counter(
		"vault_presign_requests_total",
		metric.WithDescription("Presigned attachment URL requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	classifyDateErrors, err := meter.Int64Counter(
		"vault_invalid_dates_total",
		metric.WithDescription("Items skipped because a stored date could not be classified"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, err
	}

	return &VaultMetrics{
		itemOperations:     itemOperations,
		statsDuration:      statsDuration,
		upcomingSelected:   upcomingSelected,
		alertsProcessed:    alertsProcessed,
		dispatchDuration:   dispatchDuration,
		presignRequests:    presignRequests,
		classifyDateErrors: classifyDateErrors,
	}, nil
}

func (m *VaultMetrics) RecordItemOperation(ctx context.Context, operation, outcome string) {
	m.itemOperations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func (m *VaultMetrics) RecordStatsDuration(ctx context.Context, itemCount int, duration time.Duration) {
	m.statsDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("size_bucket", sizeBucket(itemCount)),
	))
}

func (m *VaultMetrics) RecordUpcomingSelected(ctx context.Context, count int) {
	m.upcomingSelected.Record(ctx, int64(count))
}

func (m *VaultMetrics) RecordAlert(ctx context.Context, urgency, outcome string) {
	m.alertsProcessed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("urgency", urgency),
		attribute.String("outcome", outcome),
	))
}

func (m *VaultMetrics) RecordDispatchDuration(ctx context.Context, duration time.Duration) {
	m.dispatchDuration.Record(ctx, duration.Seconds())
}

func (m *VaultMetrics) RecordPresign(ctx context.Context, operation, outcome string) {
	m.presignRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func (m *VaultMetrics) RecordInvalidDates(ctx context.Context, source string, count int) {
	if count <= 0 {
		return
	}
	m.classifyDateErrors.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("source", source),
	))
}

func sizeBucket(n int) string {
	switch {
	case n <= 10:
		return "small"
	case n <= 100:
		return "medium"
	default:
		return "large"
	}
}

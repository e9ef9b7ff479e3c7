package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	reminderMeterName = "reminder.service"
)

type ReminderMetrics struct {
	triggers            metric.Int64Counter
	notifications       metric.Int64Counter
	ticks               metric.Int64Counter
	occurrencesResolved metric.Int64Counter
	planningDuration    metric.Float64Histogram
	resolutionDuration  metric.Float64Histogram
}

func NewReminderMetrics() (*ReminderMetrics, error) {
	meter := otel.Meter(reminderMeterName)

	triggers, err := meter.Int64Counter(
		"reminder_triggers_total",
		metric.WithDescription("Total number of trigger outcomes by kind"),
		metric.WithUnit("{trigger}"),
	)
	if err != nil {
		return nil, err
	}

	notifications, err := meter.Int64Counter(
		"reminder_notifications_total",
		metric.WithDescription("Total number of notifications by channel and outcome"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	ticks, err := meter.Int64Counter(
		"reminder_progress_ticks_total",
		metric.WithDescription("Total number of progress ticks handled"),
		metric.WithUnit("{tick}"),
	)
	if err != nil {
		return nil, err
	}

	occurrencesResolved, err := meter.Int64Counter(
		"reminder_occurrences_resolved_total",
		metric.WithDescription("Total number of occurrences resolved for planning"),
		metric.WithUnit("{occurrence}"),
	)
	if err != nil {
		return nil, err
	}

	planningDuration, err := meter.Float64Histogram(
		"reminder_planning_duration_seconds",
		metric.WithDescription("Planning run duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	resolutionDuration, err := meter.Float64Histogram(
		"reminder_resolution_duration_seconds",
		metric.WithDescription("Time spent resolving occurrences"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5,
		),
	)
	if err != nil {
		return nil, err
	}

	return &ReminderMetrics{
		triggers:            triggers,
		notifications:       notifications,
		ticks:               ticks,
		occurrencesResolved: occurrencesResolved,
		planningDuration:    planningDuration,
		resolutionDuration:  resolutionDuration,
	}, nil
}

func (m *ReminderMetrics) RecordTrigger(ctx context.Context, kind, outcome string) {
	m.triggers.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

func (m *ReminderMetrics) RecordNotification(ctx context.Context, channel, outcome string) {
	m.notifications.Add(ctx, 1, metric.WithAttributes(
		attribute.String("channel", channel),
		attribute.String("outcome", outcome),
	))
}

func (m *ReminderMetrics) RecordTick(ctx context.Context, status string, terminated bool) {
	m.ticks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
		attribute.Bool("terminated", terminated),
	))
}

func (m *ReminderMetrics) RecordOccurrencesResolved(ctx context.Context, count int) {
	m.occurrencesResolved.Add(ctx, int64(count))
}

func (m *ReminderMetrics) RecordPlanningDuration(ctx context.Context, duration time.Duration) {
	m.planningDuration.Record(ctx, duration.Seconds())
}

func (m *ReminderMetrics) RecordResolutionDuration(ctx context.Context, duration time.Duration) {
	m.resolutionDuration.Record(ctx, duration.Seconds())
}

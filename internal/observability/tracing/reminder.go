package tracing

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const reminderTracerName = "github.com/KasumiMercury/primind-timetable-reminder/internal/service/reminder"

func ReminderTracer() trace.Tracer {
	return otel.Tracer(reminderTracerName)
}

func StartPlanningRunSpan(ctx context.Context, timetableID int64, from, to string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.planning_run",
		trace.WithAttributes(
			attribute.Int64("timetable.id", timetableID),
			attribute.String("window.from", from),
			attribute.String("window.to", to),
		),
	)
}

func StartResolutionSpan(ctx context.Context, slotCount, periodCount int) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.resolve_occurrences",
		trace.WithAttributes(
			attribute.Int("slots.count", slotCount),
			attribute.Int("periods.count", periodCount),
		),
	)
}

func StartTriggerFireSpan(ctx context.Context, key, kind string, firesAt time.Time) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.trigger_fire",
		trace.WithAttributes(
			attribute.String("occurrence.key", key),
			attribute.String("trigger.kind", kind),
			attribute.String("trigger.fires_at", firesAt.Format(time.RFC3339)),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordPlanningRunResult(span trace.Span, occurrenceCount, scheduledCount, droppedCount, failedCount int, err error) {
	span.SetAttributes(
		attribute.Int("planning.occurrence_count", occurrenceCount),
		attribute.Int("planning.scheduled_count", scheduledCount),
		attribute.Int("planning.dropped_count", droppedCount),
		attribute.Int("planning.failed_count", failedCount),
	)
	if err != nil {
		RecordError(span, err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// InjectToHTTPRequest propagates the span context of ctx on an outgoing request.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

// ExtractFromHTTPRequest restores an incoming span context.
func ExtractFromHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.HeaderCarrier(req.Header))
}

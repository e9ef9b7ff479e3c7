//go:build !gcloud

package runrecorder

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

const (
	planningMeasurement = "planning_run"
	tickMeasurement     = "progress_tick"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.RunRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "run recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, run recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "run recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
	}, nil
}

func planningPoint(record domain.PlanningRunRecord) *write.Point {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	return influxdb2.NewPoint(
		planningMeasurement,
		map[string]string{
			"run_id":       runID,
			"timetable_id": strconv.FormatInt(record.TimetableID, 10),
		},
		map[string]any{
			"window_from":      record.WindowFrom.String(),
			"window_to":        record.WindowTo.String(),
			"occurrence_count": record.OccurrenceCount,
			"scheduled_count":  record.ScheduledCount,
			"overdue_count":    record.OverdueCount,
			"dropped_count":    record.DroppedCount,
			"replaced_count":   record.ReplacedCount,
			"failed_count":     record.FailedCount,
		},
		record.RanAt,
	)
}

func tickPoint(record domain.TickRecord) *write.Point {
	return influxdb2.NewPoint(
		tickMeasurement,
		map[string]string{
			"occurrence_key": record.Key,
			"status":         record.Status,
		},
		map[string]any{
			"trigger_id": record.TriggerID,
			"rearmed":    record.Rearmed,
			"terminated": record.Terminated,
		},
		record.FiredAt,
	)
}

func (r *influxDBRecorder) RecordPlanningRun(ctx context.Context, record domain.PlanningRunRecord) error {
	if record.RanAt.IsZero() {
		record.RanAt = time.Now()
	}

	if err := r.writeAPI.WritePoint(ctx, planningPoint(record)); err != nil {
		slog.WarnContext(ctx, "failed to write planning run to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}
	return nil
}

func (r *influxDBRecorder) RecordTicks(ctx context.Context, records []domain.TickRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*write.Point, 0, len(records))
	for _, record := range records {
		points = append(points, tickPoint(record))
	}

	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		slog.WarnContext(ctx, "failed to write progress ticks to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}
	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}

//go:build gcloud

package runrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

type bigQueryPlanningRow struct {
	RecordedAt      time.Time  `bigquery:"recorded_at"`
	RunID           string     `bigquery:"run_id"`
	TimetableID     int64      `bigquery:"timetable_id"`
	RanAt           time.Time  `bigquery:"ran_at"`
	WindowFrom      civil.Date `bigquery:"window_from"`
	WindowTo        civil.Date `bigquery:"window_to"`
	OccurrenceCount int64      `bigquery:"occurrence_count"`
	ScheduledCount  int64      `bigquery:"scheduled_count"`
	OverdueCount    int64      `bigquery:"overdue_count"`
	DroppedCount    int64      `bigquery:"dropped_count"`
	ReplacedCount   int64      `bigquery:"replaced_count"`
	FailedCount     int64      `bigquery:"failed_count"`
}

type bigQueryTickRow struct {
	RecordedAt    time.Time `bigquery:"recorded_at"`
	TriggerID     string    `bigquery:"trigger_id"`
	OccurrenceKey string    `bigquery:"occurrence_key"`
	Status        string    `bigquery:"status"`
	FiredAt       time.Time `bigquery:"fired_at"`
	Rearmed       bool      `bigquery:"rearmed"`
	Terminated    bool      `bigquery:"terminated"`
}

type bigQueryRecorder struct {
	client           *bigquery.Client
	planningInserter *bigquery.Inserter
	tickInserter     *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.RunRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "run recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, run recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, run recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	dataset := client.Dataset(cfg.BigQueryDataset)

	slog.InfoContext(ctx, "run recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
	)

	return &bigQueryRecorder{
		client:           client,
		planningInserter: dataset.Table(cfg.BigQueryPlanningTable).Inserter(),
		tickInserter:     dataset.Table(cfg.BigQueryTickTable).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) RecordPlanningRun(ctx context.Context, record domain.PlanningRunRecord) error {
	row := &bigQueryPlanningRow{
		RecordedAt:      time.Now(),
		RunID:           record.RunID,
		TimetableID:     record.TimetableID,
		RanAt:           record.RanAt,
		WindowFrom:      record.WindowFrom,
		WindowTo:        record.WindowTo,
		OccurrenceCount: int64(record.OccurrenceCount),
		ScheduledCount:  int64(record.ScheduledCount),
		OverdueCount:    int64(record.OverdueCount),
		DroppedCount:    int64(record.DroppedCount),
		ReplacedCount:   int64(record.ReplacedCount),
		FailedCount:     int64(record.FailedCount),
	}

	if err := r.planningInserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert planning run to BigQuery",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}
	return nil
}

func (r *bigQueryRecorder) RecordTicks(ctx context.Context, records []domain.TickRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]*bigQueryTickRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, &bigQueryTickRow{
			RecordedAt:    now,
			TriggerID:     record.TriggerID,
			OccurrenceKey: record.Key,
			Status:        record.Status,
			FiredAt:       record.FiredAt,
			Rearmed:       record.Rearmed,
			Terminated:    record.Terminated,
		})
	}

	if err := r.tickInserter.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert progress ticks to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}
	return nil
}

func (r *bigQueryRecorder) Flush(context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

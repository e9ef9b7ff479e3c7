package domain

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
)

type PlanningRunRecord struct {
	RunID           string
	TimetableID     int64
	RanAt           time.Time
	WindowFrom      civil.Date
	WindowTo        civil.Date
	OccurrenceCount int
	ScheduledCount  int
	OverdueCount    int
	DroppedCount    int
	ReplacedCount   int
	FailedCount     int
}

type TickRecord struct {
	TriggerID  string
	Key        string
	Status     string
	FiredAt    time.Time
	Rearmed    bool
	Terminated bool
}

type RunRecorder interface {
	RecordPlanningRun(ctx context.Context, record PlanningRunRecord) error
	RecordTicks(ctx context.Context, records []TickRecord) error
	Flush(ctx context.Context) error
	Close() error
}

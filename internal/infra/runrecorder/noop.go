package runrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.RunRecorder {
	return noopRecorder{}
}

func (noopRecorder) RecordPlanningRun(context.Context, domain.PlanningRunRecord) error {
	return nil
}

func (noopRecorder) RecordTicks(context.Context, []domain.TickRecord) error {
	return nil
}

func (noopRecorder) Flush(context.Context) error {
	return nil
}

func (noopRecorder) Close() error {
	return nil
}

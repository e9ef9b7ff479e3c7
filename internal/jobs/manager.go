package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/plan"
)

const replanTimeout = 2 * time.Minute

type DefaultPlanner interface {
	PlanDefault(ctx context.Context, now time.Time, runID string) (*plan.Response, error)
}

// Manager runs the periodic replanning that keeps the lookahead batch fresh.
type Manager struct {
	cron     *cron.Cron
	planner  DefaultPlanner
	schedule string
	now      func() time.Time
}

func NewManager(planner DefaultPlanner, schedule string, loc *time.Location) *Manager {
	return &Manager{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		planner:  planner,
		schedule: schedule,
		now:      time.Now,
	}
}

func (m *Manager) Start(ctx context.Context) error {
	if _, err := m.cron.AddFunc(m.schedule, func() { m.Replan(ctx) }); err != nil {
		return fmt.Errorf("invalid replan schedule %q: %w", m.schedule, err)
	}

	m.cron.Start()

	slog.InfoContext(ctx, "cron jobs started",
		slog.String("replan_schedule", m.schedule),
	)
	return nil
}

func (m *Manager) Stop(ctx context.Context) {
	done := m.cron.Stop()
	select {
	case <-done.Done():
		slog.InfoContext(ctx, "cron jobs stopped")
	case <-ctx.Done():
		slog.WarnContext(ctx, "cron jobs did not stop before shutdown deadline")
	}
}

// Replan plans the default timetable once. Missing timetables are not an error.
func (m *Manager) Replan(ctx context.Context) {
	runID := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, replanTimeout)
	defer cancel()

	start := time.Now()
	slog.InfoContext(ctx, "replan job started",
		slog.String("job", "replan_default"),
		slog.String("run_id", runID),
	)

	resp, err := m.planner.PlanDefault(ctx, m.now(), runID)
	if err != nil {
		if errors.Is(err, domain.ErrNoTimetable) {
			slog.InfoContext(ctx, "replan job skipped, no timetable",
				slog.String("run_id", runID),
			)
			return
		}
		slog.ErrorContext(ctx, "replan job failed",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		return
	}

	attrs := []any{
		slog.String("run_id", runID),
		slog.Int64("timetable_id", resp.TimetableID),
		slog.Bool("skipped", resp.Skipped),
		slog.Duration("duration", time.Since(start)),
	}
	if resp.Result != nil {
		attrs = append(attrs,
			slog.Int("scheduled_count", resp.ScheduledCount),
			slog.Int("failed_count", resp.FailedCount),
		)
	}
	slog.InfoContext(ctx, "replan job completed", attrs...)
}

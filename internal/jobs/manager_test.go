package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/plan"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/reminder"
)

type fakePlanner struct {
	calls  int
	runIDs []string
	now    time.Time
	err    error
}

func (f *fakePlanner) PlanDefault(_ context.Context, now time.Time, runID string) (*plan.Response, error) {
	f.calls++
	f.now = now
	f.runIDs = append(f.runIDs, runID)
	if f.err != nil {
		return nil, f.err
	}
	return &plan.Response{RunID: runID, TimetableID: 1, Result: &reminder.Result{ScheduledCount: 3}}, nil
}

func TestReplan(t *testing.T) {
	fixed := time.Date(2025, time.September, 15, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		err  error
	}{
		{name: "plans default timetable"},
		{name: "no timetable is tolerated", err: domain.ErrNoTimetable},
		{name: "failure is logged", err: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner := &fakePlanner{err: tt.err}
			m := NewManager(planner, "0 */30 * * * *", time.UTC)
			m.now = func() time.Time { return fixed }

			m.Replan(context.Background())

			if planner.calls != 1 {
				t.Fatalf("expected 1 call, got %d", planner.calls)
			}
			if !planner.now.Equal(fixed) {
				t.Errorf("expected now %v, got %v", fixed, planner.now)
			}
			if planner.runIDs[0] == "" {
				t.Error("expected a run id")
			}
		})
	}
}

func TestReplanUsesFreshRunIDs(t *testing.T) {
	planner := &fakePlanner{}
	m := NewManager(planner, "0 */30 * * * *", time.UTC)

	m.Replan(context.Background())
	m.Replan(context.Background())

	if planner.runIDs[0] == planner.runIDs[1] {
		t.Errorf("expected distinct run ids, got %q twice", planner.runIDs[0])
	}
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	m := NewManager(&fakePlanner{}, "every now and then", time.UTC)
	if err := m.Start(context.Background()); err == nil {
		t.Fatal("expected an error for an invalid schedule")
	}
}

func TestStartAndStop(t *testing.T) {
	m := NewManager(&fakePlanner{}, "0 0 3 * * *", time.UTC)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	m.Stop(ctx)
}

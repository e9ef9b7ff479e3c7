package reminder

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

var classDate = civil.Date{Year: 2025, Month: time.September, Day: 16}

func at(h, m int) time.Time {
	return time.Date(2025, time.September, 16, h, m, 0, 0, time.UTC)
}

// occurrenceAt builds a two period class starting at h:m.
func occurrenceAt(slotID int64, h, m int) domain.Occurrence {
	start := civil.Time{Hour: h, Minute: m}
	firstEnd := civil.Time{Hour: h, Minute: m + 45}
	if firstEnd.Minute >= 60 {
		firstEnd.Hour++
		firstEnd.Minute -= 60
	}
	secondStart := civil.Time{Hour: firstEnd.Hour, Minute: firstEnd.Minute + 10}
	if secondStart.Minute >= 60 {
		secondStart.Hour++
		secondStart.Minute -= 60
	}
	end := civil.Time{Hour: secondStart.Hour, Minute: secondStart.Minute + 45}
	if end.Minute >= 60 {
		end.Hour++
		end.Minute -= 60
	}

	return domain.Occurrence{
		CourseID:    100 + slotID,
		CourseName:  "Algebra",
		SlotID:      slotID,
		Date:        classDate,
		Start:       start,
		End:         end,
		StartPeriod: 1,
		EndPeriod:   2,
		Periods: []domain.PeriodWindow{
			{Number: 1, Start: start, End: firstEnd},
			{Number: 2, Start: secondStart, End: end},
		},
		Location: "Main 101",
	}
}

func TestPlanReminders(t *testing.T) {
	planner := NewPlanner(15*time.Minute, time.UTC)
	occ := occurrenceAt(1, 9, 0)

	tests := []struct {
		name        string
		now         time.Time
		wantKept    bool
		wantOverdue bool
	}{
		{name: "future reminder", now: at(7, 0), wantKept: true, wantOverdue: false},
		{name: "due exactly now", now: at(8, 45), wantKept: true, wantOverdue: true},
		{name: "inside race window", now: at(8, 50), wantKept: true, wantOverdue: true},
		{name: "on race window boundary", now: at(9, 0), wantKept: false},
		{name: "outside race window", now: at(9, 20), wantKept: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := planner.PlanReminders([]domain.Occurrence{occ}, tt.now)

			if !tt.wantKept {
				if len(plan.Triggers) != 0 {
					t.Fatalf("expected no triggers, got %d", len(plan.Triggers))
				}
				if len(plan.Dropped) != 1 {
					t.Fatalf("expected 1 dropped occurrence, got %d", len(plan.Dropped))
				}
				return
			}

			if len(plan.Triggers) != 1 {
				t.Fatalf("expected 1 trigger, got %d", len(plan.Triggers))
			}
			trigger := plan.Triggers[0]
			if !trigger.FiresAt.Equal(at(8, 45)) {
				t.Errorf("expected fires at 08:45, got %v", trigger.FiresAt)
			}
			if trigger.Overdue != tt.wantOverdue {
				t.Errorf("expected overdue %v, got %v", tt.wantOverdue, trigger.Overdue)
			}
			if trigger.Kind != domain.TriggerPreClass {
				t.Errorf("expected pre_class trigger, got %s", trigger.Kind)
			}
			if trigger.Key != occ.Key() {
				t.Errorf("expected key %v, got %v", occ.Key(), trigger.Key)
			}
			if trigger.ID != "" {
				t.Errorf("planner must not assign trigger ids, got %q", trigger.ID)
			}
		})
	}
}

func TestPlanRemindersOneTriggerPerOccurrence(t *testing.T) {
	planner := NewPlanner(15*time.Minute, time.UTC)
	occs := []domain.Occurrence{occurrenceAt(1, 8, 0), occurrenceAt(2, 10, 0), occurrenceAt(3, 14, 0)}

	plan := planner.PlanReminders(occs, at(6, 0))

	if len(plan.Triggers) != len(occs) {
		t.Fatalf("expected %d triggers, got %d", len(occs), len(plan.Triggers))
	}
	for i, trigger := range plan.Triggers {
		want := occs[i].StartAt(time.UTC).Add(-15 * time.Minute)
		if !trigger.FiresAt.Equal(want) {
			t.Errorf("trigger %d: expected %v, got %v", i, want, trigger.FiresAt)
		}
	}
}

func TestPlannerDefaults(t *testing.T) {
	planner := NewPlannerWithWindow(-time.Minute, -time.Minute, nil)

	if planner.Lead() != DefaultLead {
		t.Errorf("expected default lead %v, got %v", DefaultLead, planner.Lead())
	}
	if planner.Location() != time.Local {
		t.Errorf("expected local location, got %v", planner.Location())
	}
}

func TestTriggerScheduleTime(t *testing.T) {
	trigger := domain.NewTrigger("id", domain.TriggerPreClass, at(8, 45), occurrenceAt(1, 9, 0))

	if got := trigger.ScheduleTime(at(8, 50)); !got.Equal(at(8, 50)) {
		t.Errorf("overdue trigger should fire now, got %v", got)
	}
	if got := trigger.ScheduleTime(at(8, 0)); !got.Equal(at(8, 45)) {
		t.Errorf("future trigger should keep its time, got %v", got)
	}
}

func TestNextTick(t *testing.T) {
	planner := NewPlanner(15*time.Minute, time.UTC)
	occ := occurrenceAt(1, 8, 0)
	interval := 5 * time.Minute

	tests := []struct {
		name       string
		status     domain.Status
		now        time.Time
		wantRearm  bool
		wantNextAt time.Time
	}{
		{name: "in progress", status: domain.StatusInProgress, now: at(8, 20), wantRearm: true, wantNextAt: at(8, 25)},
		{name: "between", status: domain.StatusBetween, now: at(8, 50), wantRearm: true, wantNextAt: at(8, 55)},
		{name: "upcoming waits for start", status: domain.StatusUpcoming, now: at(7, 30), wantRearm: true, wantNextAt: at(8, 0)},
		{name: "upcoming capped at start", status: domain.StatusUpcoming, now: at(7, 58), wantRearm: true, wantNextAt: at(8, 0)},
		{name: "ended", status: domain.StatusEnded, now: at(10, 0), wantRearm: false},
		{name: "unknown", status: domain.StatusUnknown, now: at(8, 20), wantRearm: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, rearm := planner.NextTick(occ, tt.status, tt.now, interval)
			if rearm != tt.wantRearm {
				t.Fatalf("expected rearm %v, got %v", tt.wantRearm, rearm)
			}
			if rearm && !next.Equal(tt.wantNextAt) {
				t.Errorf("expected next tick %v, got %v", tt.wantNextAt, next)
			}
		})
	}
}

package reminder

import (
	"time"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

const DefaultLead = 15 * time.Minute

// Planner turns occurrences into trigger times. It is pure.
type Planner struct {
	lead       time.Duration
	raceWindow time.Duration
	loc        *time.Location
}

// NewPlanner builds a planner whose race window equals the lead time.
func NewPlanner(lead time.Duration, loc *time.Location) *Planner {
	return NewPlannerWithWindow(lead, lead, loc)
}

func NewPlannerWithWindow(lead, raceWindow time.Duration, loc *time.Location) *Planner {
	if lead < 0 {
		lead = DefaultLead
	}
	if raceWindow < 0 {
		raceWindow = lead
	}
	if loc == nil {
		loc = time.Local
	}
	return &Planner{lead: lead, raceWindow: raceWindow, loc: loc}
}

func (p *Planner) Lead() time.Duration {
	return p.lead
}

func (p *Planner) Location() *time.Location {
	return p.loc
}

type Plan struct {
	Triggers []domain.Trigger
	Dropped  []domain.Occurrence
}

// PlanReminders emits one PRE_CLASS trigger per occurrence at start - lead.
// Triggers already due are kept while they are inside the race window
// (strictly later than now - window) and flagged Overdue; older ones are dropped.
func (p *Planner) PlanReminders(occurrences []domain.Occurrence, now time.Time) Plan {
	plan := Plan{
		Triggers: make([]domain.Trigger, 0, len(occurrences)),
		Dropped:  make([]domain.Occurrence, 0),
	}

	windowStart := now.Add(-p.raceWindow)
	for _, occ := range occurrences {
		firesAt := p.PreClassTime(occ)

		if firesAt.Before(now) && !firesAt.After(windowStart) {
			plan.Dropped = append(plan.Dropped, occ)
			continue
		}

		trigger := domain.NewTrigger("", domain.TriggerPreClass, firesAt, occ)
		trigger.Overdue = !firesAt.After(now)
		plan.Triggers = append(plan.Triggers, trigger)
	}

	return plan
}

func (p *Planner) PreClassTime(occ domain.Occurrence) time.Time {
	return occ.StartAt(p.loc).Add(-p.lead)
}

// NextTick returns when a progress chain in status should tick again.
// In-session chains tick every interval. A chain started before the class
// waits once for its start.
func (p *Planner) NextTick(occ domain.Occurrence, status domain.Status, now time.Time, interval time.Duration) (time.Time, bool) {
	switch status {
	case domain.StatusInProgress, domain.StatusBetween:
		return now.Add(interval), true
	case domain.StatusUpcoming:
		if start := occ.StartAt(p.loc); start.After(now) {
			return start, true
		}
		return now.Add(interval), true
	default:
		return time.Time{}, false
	}
}

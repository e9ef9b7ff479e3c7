package domain

import (
	"time"
)

type TriggerKind string

const (
	TriggerPreClass     TriggerKind = "pre_class"
	TriggerProgressTick TriggerKind = "progress_tick"
)

func (k TriggerKind) String() string {
	return string(k)
}

func (k TriggerKind) Valid() bool {
	return k == TriggerPreClass || k == TriggerProgressTick
}

// Trigger is a one-shot callback the timer sink fires at FiresAt.
type Trigger struct {
	ID         string        `json:"trigger_id"`
	Key        OccurrenceKey `json:"key"`
	Kind       TriggerKind   `json:"kind"`
	FiresAt    time.Time     `json:"fires_at"`
	Overdue    bool          `json:"overdue,omitempty"`
	Occurrence Occurrence    `json:"occurrence"`
}

func NewTrigger(id string, kind TriggerKind, firesAt time.Time, occ Occurrence) Trigger {
	return Trigger{
		ID:         id,
		Key:        occ.Key(),
		Kind:       kind,
		FiresAt:    firesAt,
		Occurrence: occ,
	}
}

// ScheduleTime is when the timer sink should fire: overdue triggers fire now.
func (t Trigger) ScheduleTime(now time.Time) time.Time {
	if t.FiresAt.Before(now) {
		return now
	}
	return t.FiresAt
}

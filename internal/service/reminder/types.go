package reminder

import (
	"time"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

type ResultItem struct {
	Key         string    `json:"key"`
	CourseName  string    `json:"course_name"`
	TriggerID   string    `json:"trigger_id,omitempty"`
	FiresAt     time.Time `json:"fires_at"`
	ScheduledAt time.Time `json:"scheduled_at,omitempty"`
	Overdue     bool      `json:"overdue"`
	Dropped     bool      `json:"dropped"`
	Replaced    bool      `json:"replaced"`
	Kept        bool      `json:"kept"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
}

type Result struct {
	OccurrenceCount int          `json:"occurrence_count"`
	ScheduledCount  int          `json:"scheduled_count"`
	OverdueCount    int          `json:"overdue_count"`
	DroppedCount    int          `json:"dropped_count"`
	ReplacedCount   int          `json:"replaced_count"`
	KeptCount       int          `json:"kept_count"`
	FailedCount     int          `json:"failed_count"`
	Items           []ResultItem `json:"items"`
}

// FireOutcome reports what handling one fired trigger did.
type FireOutcome struct {
	Key          string                    `json:"key"`
	Kind         domain.TriggerKind        `json:"kind"`
	Status       domain.Status             `json:"status,omitempty"`
	Posted       bool                      `json:"posted"`
	Rearmed      bool                      `json:"rearmed"`
	NextTickAt   *time.Time                `json:"next_tick_at,omitempty"`
	Terminated   bool                      `json:"terminated"`
	Interruption domain.InterruptionFilter `json:"interruption,omitempty"`
}

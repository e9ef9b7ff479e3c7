package plan

import (
	"cloud.google.com/go/civil"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/reminder"
)

type Response struct {
	RunID       string     `json:"run_id"`
	TimetableID int64      `json:"timetable_id"`
	WindowFrom  civil.Date `json:"window_from"`
	WindowTo    civil.Date `json:"window_to"`
	Skipped     bool       `json:"skipped"`
	SkipReason  string     `json:"skip_reason,omitempty"`

	*reminder.Result
}

type OccurrenceStatus struct {
	Occurrence domain.Occurrence `json:"occurrence"`
	Evaluation domain.Evaluation `json:"evaluation"`
}

type StatusResponse struct {
	TimetableID int64              `json:"timetable_id"`
	Date        civil.Date         `json:"date"`
	Week        int                `json:"week"`
	InSemester  bool               `json:"in_semester"`
	Current     *OccurrenceStatus  `json:"current,omitempty"`
	Items       []OccurrenceStatus `json:"items"`
}

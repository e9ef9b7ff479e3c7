package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// OccurrenceKey identifies one dated materialization of a slot.
type OccurrenceKey struct {
	CourseID int64      `json:"course_id"`
	SlotID   int64      `json:"slot_id"`
	Date     civil.Date `json:"date"`
}

func (k OccurrenceKey) String() string {
	return fmt.Sprintf("%d:%d:%s", k.CourseID, k.SlotID, k.Date)
}

func ParseOccurrenceKey(s string) (OccurrenceKey, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return OccurrenceKey{}, fmt.Errorf("%w: %q", ErrInvalidOccurrenceKey, s)
	}

	courseID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return OccurrenceKey{}, fmt.Errorf("%w: course id: %w", ErrInvalidOccurrenceKey, err)
	}
	slotID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return OccurrenceKey{}, fmt.Errorf("%w: slot id: %w", ErrInvalidOccurrenceKey, err)
	}
	date, err := civil.ParseDate(parts[2])
	if err != nil {
		return OccurrenceKey{}, fmt.Errorf("%w: date: %w", ErrInvalidOccurrenceKey, err)
	}

	return OccurrenceKey{CourseID: courseID, SlotID: slotID, Date: date}, nil
}

// PeriodWindow is one bell-schedule window of an occurrence.
type PeriodWindow struct {
	Number int        `json:"number"`
	Start  civil.Time `json:"start"`
	End    civil.Time `json:"end"`
}

type Occurrence struct {
	CourseID    int64          `json:"course_id"`
	CourseName  string         `json:"course_name"`
	SlotID      int64          `json:"slot_id"`
	Date        civil.Date     `json:"date"`
	Start       civil.Time     `json:"start"`
	End         civil.Time     `json:"end"`
	StartPeriod int            `json:"start_period"`
	EndPeriod   int            `json:"end_period"`
	Periods     []PeriodWindow `json:"periods"`
	Location    string         `json:"location,omitempty"`
	Teacher     string         `json:"teacher,omitempty"`
	Adjusted    bool           `json:"adjusted,omitempty"`
}

func (o Occurrence) Key() OccurrenceKey {
	return OccurrenceKey{CourseID: o.CourseID, SlotID: o.SlotID, Date: o.Date}
}

func (o Occurrence) StartAt(loc *time.Location) time.Time {
	return At(o.Date, o.Start, loc)
}

func (o Occurrence) EndAt(loc *time.Location) time.Time {
	return At(o.Date, o.End, loc)
}

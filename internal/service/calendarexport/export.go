package calendarexport

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

const (
	productID = "-//primind//timetable-reminder//EN"
	uidDomain = "timetable-reminder.primind"
)

type Exporter struct {
	loc *time.Location
}

func NewExporter(loc *time.Location) *Exporter {
	if loc == nil {
		loc = time.Local
	}
	return &Exporter{loc: loc}
}

// Write renders occurrences as a VCALENDAR with one VEVENT per occurrence.
// Event UIDs derive from the occurrence key, so re-exports update events in
// place in subscribing calendars.
func (e *Exporter) Write(w io.Writer, name string, occurrences []domain.Occurrence, now time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)
	cal.SetXWRTimezone(e.loc.String())

	stamp := now.UTC()
	for _, occ := range occurrences {
		event := cal.AddEvent(EventUID(occ.Key()))
		event.SetDtStampTime(stamp)
		event.SetStartAt(occ.StartAt(e.loc))
		event.SetEndAt(occ.EndAt(e.loc))
		event.SetSummary(summary(occ))
		if occ.Location != "" {
			event.SetLocation(occ.Location)
		}
		event.SetDescription(description(occ))
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("failed to serialize calendar: %w", err)
	}
	return nil
}

func EventUID(key domain.OccurrenceKey) string {
	return strings.ReplaceAll(key.String(), ":", "-") + "@" + uidDomain
}

func summary(occ domain.Occurrence) string {
	if occ.CourseName == "" {
		return "Class"
	}
	return occ.CourseName
}

func description(occ domain.Occurrence) string {
	var b strings.Builder
	if occ.StartPeriod == occ.EndPeriod {
		fmt.Fprintf(&b, "Period %d", occ.StartPeriod)
	} else {
		fmt.Fprintf(&b, "Periods %d-%d", occ.StartPeriod, occ.EndPeriod)
	}
	if occ.Teacher != "" {
		fmt.Fprintf(&b, ", %s", occ.Teacher)
	}
	if occ.Adjusted {
		b.WriteString(" (rescheduled)")
	}
	return b.String()
}

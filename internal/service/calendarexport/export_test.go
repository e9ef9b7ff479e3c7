package calendarexport

import (
	"bytes"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	ics "github.com/arran4/golang-ical"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

func sampleOccurrences() []domain.Occurrence {
	date := civil.Date{Year: 2025, Month: time.September, Day: 15}
	return []domain.Occurrence{
		{
			CourseID:    1,
			CourseName:  "Linear Algebra",
			SlotID:      10,
			Date:        date,
			Start:       civil.Time{Hour: 8},
			End:         civil.Time{Hour: 9, Minute: 40},
			StartPeriod: 1,
			EndPeriod:   2,
			Location:    "Main A101",
			Teacher:     "Dr. Lee",
		},
		{
			CourseID:    2,
			SlotID:      11,
			Date:        date,
			Start:       civil.Time{Hour: 14},
			End:         civil.Time{Hour: 14, Minute: 45},
			StartPeriod: 5,
			EndPeriod:   5,
			Adjusted:    true,
		},
	}
}

func TestWrite(t *testing.T) {
	loc := time.FixedZone("CST", 8*60*60)
	exporter := NewExporter(loc)
	occs := sampleOccurrences()

	var buf bytes.Buffer
	if err := exporter.Write(&buf, "Autumn 2025", occs, time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cal, err := ics.ParseCalendar(&buf)
	if err != nil {
		t.Fatalf("exported calendar does not parse: %v", err)
	}

	events := cal.Events()
	if len(events) != len(occs) {
		t.Fatalf("expected %d events, got %d", len(occs), len(events))
	}

	first := events[0]
	if got := first.Id(); got != EventUID(occs[0].Key()) {
		t.Errorf("expected uid %s, got %s", EventUID(occs[0].Key()), got)
	}
	start, err := first.GetStartAt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !start.Equal(occs[0].StartAt(loc)) {
		t.Errorf("expected start %v, got %v", occs[0].StartAt(loc), start)
	}
	if p := first.GetProperty(ics.ComponentPropertySummary); p == nil || p.Value != "Linear Algebra" {
		t.Errorf("unexpected summary: %v", p)
	}
	if p := first.GetProperty(ics.ComponentPropertyLocation); p == nil || p.Value != "Main A101" {
		t.Errorf("unexpected location: %v", p)
	}

	second := events[1]
	if p := second.GetProperty(ics.ComponentPropertySummary); p == nil || p.Value != "Class" {
		t.Errorf("expected fallback summary, got %v", p)
	}
	if p := second.GetProperty(ics.ComponentPropertyLocation); p != nil {
		t.Errorf("expected no location, got %v", p.Value)
	}
}

func TestDescription(t *testing.T) {
	occs := sampleOccurrences()

	if got, want := description(occs[0]), "Periods 1-2, Dr. Lee"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got, want := description(occs[1]), "Period 5 (rescheduled)"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestEventUIDIsStable(t *testing.T) {
	key := sampleOccurrences()[0].Key()

	if got, want := EventUID(key), "1-10-2025-09-15@timetable-reminder.primind"; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

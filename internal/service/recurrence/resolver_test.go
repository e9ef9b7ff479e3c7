package recurrence

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"cloud.google.com/go/civil"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

var semesterStart = civil.Date{Year: 2025, Month: 9, Day: 1} // Monday

func clock(h, m int) civil.Time {
	return civil.Time{Hour: h, Minute: m}
}

func testPeriods() []domain.Period {
	return []domain.Period{
		{ID: 1, SortOrder: 1, Start: clock(8, 0), End: clock(8, 45)},
		{ID: 2, SortOrder: 2, Start: clock(8, 55), End: clock(9, 40)},
		{ID: 3, SortOrder: 3, Start: clock(10, 0), End: clock(10, 45)},
		{ID: 4, SortOrder: 4, Start: clock(10, 55), End: clock(11, 40)},
	}
}

func TestOccurrencesInRange_SingleWeek(t *testing.T) {
	slot := domain.CourseSlot{ID: 1, CourseID: 10, Weeks: []int{3}, DayOfWeek: 2, StartPeriod: 1, EndPeriod: 2}

	got, err := NewResolver().OccurrencesInRange(context.Background(), Request{
		Slots:         []domain.CourseSlot{slot},
		Periods:       testPeriods(),
		From:          semesterStart,
		To:            semesterStart.AddDays(27),
		SemesterStart: semesterStart,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(got))
	}
	occ := got[0]
	wantDate := civil.Date{Year: 2025, Month: 9, Day: 16}
	if occ.Date != wantDate {
		t.Errorf("Date: got %s, want %s", occ.Date, wantDate)
	}
	if occ.Start != clock(8, 0) || occ.End != clock(9, 40) {
		t.Errorf("window: got %s-%s, want 08:00-09:40", occ.Start, occ.End)
	}
	if len(occ.Periods) != 2 {
		t.Errorf("Periods: got %d, want 2", len(occ.Periods))
	}
	if occ.Key() != (domain.OccurrenceKey{CourseID: 10, SlotID: 1, Date: wantDate}) {
		t.Errorf("unexpected key %v", occ.Key())
	}
}

func TestOccurrencesInRange_BrokenSlotIsolated(t *testing.T) {
	slots := []domain.CourseSlot{
		{ID: 1, CourseID: 10, Weeks: []int{1}, DayOfWeek: 1, StartPeriod: 1, EndPeriod: 2},
		{ID: 2, CourseID: 11, Weeks: []int{1}, DayOfWeek: 1, StartPeriod: 3, EndPeriod: 9},
		{ID: 3, CourseID: 12, Weeks: []int{1}, DayOfWeek: 3, StartPeriod: 3, EndPeriod: 4},
	}

	got, err := NewResolver().OccurrencesInRange(context.Background(), Request{
		Slots:         slots,
		Periods:       testPeriods(),
		From:          semesterStart,
		To:            semesterStart.AddDays(6),
		SemesterStart: semesterStart,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d occurrences, want 2", len(got))
	}
	for _, occ := range got {
		if occ.SlotID == 2 {
			t.Errorf("broken slot produced an occurrence on %s", occ.Date)
		}
	}
}

func TestOccurrencesInRange_Ordering(t *testing.T) {
	slots := []domain.CourseSlot{
		{ID: 7, CourseID: 1, Weeks: []int{1}, DayOfWeek: 2, StartPeriod: 3, EndPeriod: 3},
		{ID: 5, CourseID: 2, Weeks: []int{1}, DayOfWeek: 1, StartPeriod: 3, EndPeriod: 4},
		{ID: 9, CourseID: 3, Weeks: []int{1}, DayOfWeek: 1, StartPeriod: 1, EndPeriod: 1},
		{ID: 4, CourseID: 4, Weeks: []int{1}, DayOfWeek: 1, StartPeriod: 3, EndPeriod: 3},
	}

	got, err := NewResolver().OccurrencesInRange(context.Background(), Request{
		Slots:         slots,
		Periods:       testPeriods(),
		From:          semesterStart,
		To:            semesterStart.AddDays(6),
		SemesterStart: semesterStart,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSlots := []int64{9, 4, 5, 7}
	if len(got) != len(wantSlots) {
		t.Fatalf("got %d occurrences, want %d", len(got), len(wantSlots))
	}
	for i, id := range wantSlots {
		if got[i].SlotID != id {
			t.Errorf("position %d: got slot %d, want %d", i, got[i].SlotID, id)
		}
	}
}

func TestOccurrencesInRange_Idempotent(t *testing.T) {
	req := Request{
		Slots: []domain.CourseSlot{
			{ID: 1, CourseID: 1, Weeks: domain.WeekRange(1, 16), DayOfWeek: 1, StartPeriod: 1, EndPeriod: 2},
			{ID: 2, CourseID: 2, Weeks: domain.WeekRange(1, 16), DayOfWeek: 1, StartPeriod: 1, EndPeriod: 1},
			{ID: 3, CourseID: 3, Weeks: []int{2, 4, 6}, DayOfWeek: 5, StartPeriod: 3, EndPeriod: 4},
		},
		Periods:       testPeriods(),
		From:          semesterStart,
		To:            semesterStart.AddDays(41),
		SemesterStart: semesterStart,
		Courses:       []domain.Course{{ID: 1, Name: "Algebra"}, {ID: 2, Name: "Physics"}},
	}

	r := NewResolver()
	first, err := r.OccurrencesInRange(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.OccurrencesInRange(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated resolution produced different output")
	}
	if len(first) != 6+6+3 {
		t.Errorf("got %d occurrences, want 15", len(first))
	}
}

func TestOccurrencesInRange_DuplicatePeriodNumber(t *testing.T) {
	periods := append(testPeriods(), domain.Period{ID: 99, SortOrder: 2, Start: clock(13, 0), End: clock(13, 45)})

	_, err := NewResolver().OccurrencesInRange(context.Background(), Request{
		Periods:       periods,
		From:          semesterStart,
		To:            semesterStart,
		SemesterStart: semesterStart,
	})
	if !errors.Is(err, domain.ErrDuplicatePeriodNumber) {
		t.Errorf("expected ErrDuplicatePeriodNumber, got %v", err)
	}
}

func TestOccurrencesInRange_EmptyAndReversedRange(t *testing.T) {
	slot := domain.CourseSlot{ID: 1, CourseID: 1, Weeks: []int{1}, DayOfWeek: 1, StartPeriod: 1, EndPeriod: 1}

	got, err := NewResolver().OccurrencesInRange(context.Background(), Request{
		Slots:         []domain.CourseSlot{slot},
		Periods:       testPeriods(),
		From:          semesterStart.AddDays(3),
		To:            semesterStart,
		SemesterStart: semesterStart,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d occurrences for reversed range, want 0", len(got))
	}
}

func TestOccurrencesInRange_BeforeSemesterCountsAsWeekOne(t *testing.T) {
	slot := domain.CourseSlot{ID: 1, CourseID: 1, Weeks: []int{1}, DayOfWeek: 1, StartPeriod: 1, EndPeriod: 1}
	from := semesterStart.AddDays(-14)

	got, err := NewResolver().OccurrencesInRange(context.Background(), Request{
		Slots:         []domain.CourseSlot{slot},
		Periods:       testPeriods(),
		From:          from,
		To:            semesterStart,
		SemesterStart: semesterStart,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both Mondays before the start fall into week 1, as does the start itself.
	if len(got) != 3 {
		t.Errorf("got %d occurrences, want 3", len(got))
	}
}

func TestOccurrencesInRange_Decoration(t *testing.T) {
	slot := domain.CourseSlot{ID: 1, CourseID: 1, Weeks: []int{1}, DayOfWeek: 1, StartPeriod: 1, EndPeriod: 1, LocationID: 3, TeacherID: 4}

	got, err := NewResolver().OccurrencesInRange(context.Background(), Request{
		Slots:         []domain.CourseSlot{slot},
		Periods:       testPeriods(),
		From:          semesterStart,
		To:            semesterStart,
		SemesterStart: semesterStart,
		Courses:       []domain.Course{{ID: 1, Name: "Linear Algebra"}},
		Locations:     []domain.Location{{ID: 3, Campus: "North", Building: "B2", Classroom: "301"}},
		Teachers:      []domain.Teacher{{ID: 4, Name: "Dr. Chen"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(got))
	}
	if got[0].CourseName != "Linear Algebra" {
		t.Errorf("CourseName: got %q", got[0].CourseName)
	}
	if got[0].Location != "North B2 301" {
		t.Errorf("Location: got %q", got[0].Location)
	}
	if got[0].Teacher != "Dr. Chen" {
		t.Errorf("Teacher: got %q", got[0].Teacher)
	}
}

func TestOccurrencesInRange_Adjustments(t *testing.T) {
	slot := domain.CourseSlot{ID: 1, CourseID: 1, Weeks: []int{1, 2}, DayOfWeek: 1, StartPeriod: 1, EndPeriod: 2}
	movedFrom := semesterStart
	movedTo := semesterStart.AddDays(3)

	tests := []struct {
		name        string
		adjustment  domain.Adjustment
		wantDates   []civil.Date
		wantAdjDate civil.Date
	}{
		{
			name: "moves occurrence to another day",
			adjustment: domain.Adjustment{
				ID: 1, SlotID: 1, Date: movedFrom, TargetDate: movedTo,
				Start: clock(14, 0), End: clock(15, 30),
			},
			wantDates:   []civil.Date{movedTo, semesterStart.AddDays(7)},
			wantAdjDate: movedTo,
		},
		{
			name: "adjustment for a date the slot does not run is ignored",
			adjustment: domain.Adjustment{
				ID: 2, SlotID: 1, Date: semesterStart.AddDays(1), TargetDate: movedTo,
				Start: clock(14, 0), End: clock(15, 30),
			},
			wantDates: []civil.Date{semesterStart, semesterStart.AddDays(7)},
		},
		{
			name: "invalid adjustment window is ignored",
			adjustment: domain.Adjustment{
				ID: 3, SlotID: 1, Date: movedFrom, TargetDate: movedTo,
				Start: clock(15, 30), End: clock(14, 0),
			},
			wantDates: []civil.Date{semesterStart, semesterStart.AddDays(7)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewResolver().OccurrencesInRange(context.Background(), Request{
				Slots:         []domain.CourseSlot{slot},
				Periods:       testPeriods(),
				From:          semesterStart,
				To:            semesterStart.AddDays(13),
				SemesterStart: semesterStart,
				Adjustments:   []domain.Adjustment{tt.adjustment},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(got) != len(tt.wantDates) {
				t.Fatalf("got %d occurrences, want %d", len(got), len(tt.wantDates))
			}
			for i, want := range tt.wantDates {
				if got[i].Date != want {
					t.Errorf("occurrence %d: got %s, want %s", i, got[i].Date, want)
				}
				wantAdjusted := want == tt.wantAdjDate
				if got[i].Adjusted != wantAdjusted {
					t.Errorf("occurrence %d: Adjusted got %v, want %v", i, got[i].Adjusted, wantAdjusted)
				}
				if wantAdjusted && (got[i].Start != clock(14, 0) || len(got[i].Periods) != 1) {
					t.Errorf("occurrence %d: unexpected adjusted window %s, %d periods", i, got[i].Start, len(got[i].Periods))
				}
			}
		})
	}
}

func TestPeriodIndexWindows(t *testing.T) {
	periods := append(testPeriods(), domain.Period{ID: 5, SortOrder: 5, Start: clock(12, 0), End: clock(11, 0)})

	index, err := NewPeriodIndex(periods)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if index.Len() != 4 {
		t.Errorf("Len: got %d, want 4 (invalid period excluded)", index.Len())
	}

	if _, err := index.Windows(4, 5); !errors.Is(err, domain.ErrPeriodNotFound) {
		t.Errorf("expected ErrPeriodNotFound for invalid period, got %v", err)
	}
	if _, err := index.Windows(3, 2); !errors.Is(err, domain.ErrPeriodNotFound) {
		t.Errorf("expected ErrPeriodNotFound for reversed range, got %v", err)
	}

	windows, err := index.Windows(2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 2 || windows[0].Number != 2 || windows[1].Number != 3 {
		t.Errorf("unexpected windows %+v", windows)
	}
}

func TestOccurrencesInRange_OutOfRangePeriods(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
	}{
		{name: "huge end period", start: 1, end: math.MaxInt},
		{name: "negative start", start: math.MinInt, end: math.MaxInt},
		{name: "range longer than table", start: 1, end: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broken := domain.CourseSlot{ID: 1, CourseID: 10, Weeks: []int{1}, DayOfWeek: 1, StartPeriod: tt.start, EndPeriod: tt.end}
			healthy := domain.CourseSlot{ID: 2, CourseID: 11, Weeks: []int{1}, DayOfWeek: 1, StartPeriod: 3, EndPeriod: 4}

			got, err := NewResolver().OccurrencesInRange(context.Background(), Request{
				Slots:         []domain.CourseSlot{broken, healthy},
				Periods:       testPeriods(),
				From:          semesterStart,
				To:            semesterStart,
				SemesterStart: semesterStart,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 1 || got[0].SlotID != 2 {
				t.Errorf("expected only the healthy slot, got %+v", got)
			}
		})
	}
}

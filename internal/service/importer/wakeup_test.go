package importer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

var today = civil.Date{Year: 2025, Month: time.October, Day: 1}

const sampleExport = `{"courseLen":45,"id":1,"name":"Default","sameBreakLen":false,"sameLen":true,"theBreakLen":10}
[{"endTime":"08:45","node":1,"startTime":"08:00","timeTable":1}]
{"background":"","courseTextColor":-1,"id":1,"maxWeek":18,"nodes":9,"showSat":true,"showSun":false,"startDate":"2025-9-1"}
[{"color":"#ff9e9e","courseName":"Linear Algebra","credit":0.0,"id":0,"note":"","tableId":1},{"color":"#ff9e9e","courseName":"Physics","credit":0.0,"id":1,"note":"","tableId":1}]
[{"day":1,"endTime":"","endWeek":16,"id":0,"level":0,"ownTime":false,"room":"A101","startNode":1,"startTime":"","startWeek":1,"step":2,"tableId":1,"teacher":"Dr. Lee","type":0},{"day":3,"endTime":"","endWeek":8,"id":1,"level":0,"ownTime":false,"room":"B204","startNode":3,"startTime":"","startWeek":1,"step":3,"tableId":1,"teacher":"","type":0},{"day":5,"endTime":"","endWeek":16,"id":0,"level":0,"ownTime":false,"room":"A101","startNode":5,"startTime":"","startWeek":9,"step":2,"tableId":1,"teacher":"Dr. Lee","type":0}]`

func TestParseWakeUp(t *testing.T) {
	parsed, err := ParseWakeUp(strings.NewReader(sampleExport), today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := civil.Date{Year: 2025, Month: time.September, Day: 1}
	if parsed.Settings.SemesterStartDate != wantStart {
		t.Errorf("expected start %v, got %v", wantStart, parsed.Settings.SemesterStartDate)
	}
	if parsed.Settings.TotalWeeks != 18 {
		t.Errorf("expected 18 weeks, got %d", parsed.Settings.TotalWeeks)
	}
	if !parsed.Settings.ShowWeekends {
		t.Error("expected weekends shown when saturday is shown")
	}
	if parsed.Settings.NumberOfPeriods != domain.DefaultNumberOfPeriods {
		t.Errorf("expected default period count, got %d", parsed.Settings.NumberOfPeriods)
	}

	if len(parsed.Courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(parsed.Courses))
	}

	algebra := parsed.Courses[0]
	if algebra.Course.Name != "Linear Algebra" || len(algebra.Slots) != 2 {
		t.Fatalf("expected Linear Algebra with 2 slots, got %s with %d", algebra.Course.Name, len(algebra.Slots))
	}
	first := algebra.Slots[0]
	if first.Slot.DayOfWeek != 1 || first.Slot.StartPeriod != 1 || first.Slot.EndPeriod != 2 {
		t.Errorf("unexpected first slot: %+v", first.Slot)
	}
	if len(first.Slot.Weeks) != 16 || first.Teacher != "Dr. Lee" || first.Classroom != "A101" {
		t.Errorf("unexpected first slot details: %+v", first)
	}

	physics := parsed.Courses[1].Slots[0]
	if physics.Slot.StartPeriod != 3 || physics.Slot.EndPeriod != 5 {
		t.Errorf("expected periods 3-5, got %d-%d", physics.Slot.StartPeriod, physics.Slot.EndPeriod)
	}
}

func TestParseWakeUpSettingsFallback(t *testing.T) {
	tests := []struct {
		name      string
		settings  string
		wantStart civil.Date
		wantWeeks int
	}{
		{
			name:      "malformed start date",
			settings:  `{"startDate":"first monday","maxWeek":20}`,
			wantStart: civil.Date{Year: 2024, Month: time.October, Day: 1},
			wantWeeks: 20,
		},
		{
			name:      "missing fields",
			settings:  `{}`,
			wantStart: civil.Date{Year: 2024, Month: time.October, Day: 1},
			wantWeeks: domain.DefaultTotalWeeks,
		},
		{
			name:      "padded iso date",
			settings:  `{"startDate":"2025-02-17"}`,
			wantStart: civil.Date{Year: 2025, Month: time.February, Day: 17},
			wantWeeks: domain.DefaultTotalWeeks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "{}\n[]\n" + tt.settings + "\n[]\n[]"
			parsed, err := ParseWakeUp(strings.NewReader(input), today)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if parsed.Settings.SemesterStartDate != tt.wantStart {
				t.Errorf("expected start %v, got %v", tt.wantStart, parsed.Settings.SemesterStartDate)
			}
			if parsed.Settings.TotalWeeks != tt.wantWeeks {
				t.Errorf("expected %d weeks, got %d", tt.wantWeeks, parsed.Settings.TotalWeeks)
			}
		})
	}
}

func TestParseWakeUpOversizedRanges(t *testing.T) {
	input := "{}\n[]\n" +
		`{"startDate":"2025-9-1","maxWeek":4611686018427387904}` + "\n" +
		`[{"courseName":"Chemistry","id":0}]` + "\n" +
		`[{"day":2,"id":0,"startNode":1,"step":2,"startWeek":1,"endWeek":4611686018427387904},` +
		`{"day":4,"id":0,"startNode":1,"step":4611686018427387904,"startWeek":1,"endWeek":4},` +
		`{"day":5,"id":0,"startNode":4611686018427387904,"step":2,"startWeek":1,"endWeek":4}]`

	parsed, err := ParseWakeUp(strings.NewReader(input), today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Settings.TotalWeeks != domain.MaxWeekNumber {
		t.Errorf("expected weeks clamped to %d, got %d", domain.MaxWeekNumber, parsed.Settings.TotalWeeks)
	}

	slots := parsed.Courses[0].Slots
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	if weeks := slots[0].Slot.Weeks; len(weeks) != domain.MaxWeekNumber {
		t.Errorf("expected weeks clipped to %d, got %d", domain.MaxWeekNumber, len(weeks))
	}
	if slots[1].Slot.Valid() {
		t.Errorf("expected oversized step to leave an invalid slot, got %+v", slots[1].Slot)
	}
	if slots[2].Slot.Valid() {
		t.Errorf("expected oversized start node to leave an invalid slot, got %+v", slots[2].Slot)
	}
}

func TestParseWakeUpInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "too few lines", input: "{}\n[]\n{}"},
		{name: "settings not json", input: "{}\n[]\nnot json\n[]\n[]"},
		{name: "slots not a list", input: "{}\n[]\n{}\n[]\n{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWakeUp(strings.NewReader(tt.input), today)
			if !errors.Is(err, ErrInvalidImport) {
				t.Errorf("expected ErrInvalidImport, got %v", err)
			}
		})
	}
}

func TestServiceImport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := domain.NewMockTimetableWriter(ctrl)
	writer.EXPECT().SaveSettings(gomock.Any(), gomock.Any()).Return(nil)
	writer.EXPECT().FindCourseByName(gomock.Any(), int64(1), "Linear Algebra").Return(&domain.Course{ID: 10}, nil)
	writer.EXPECT().FindCourseByName(gomock.Any(), int64(1), "Physics").Return(nil, domain.ErrCourseNotFound)
	writer.EXPECT().CreateCourse(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, course *domain.Course) error {
			course.ID = 11
			return nil
		})
	writer.EXPECT().EnsureTeacher(gomock.Any(), "Dr. Lee").Return(int64(1), nil).Times(2)
	writer.EXPECT().EnsureLocation(gomock.Any(), gomock.Any()).Return(int64(2), nil).Times(3)
	writer.EXPECT().AddSlots(gomock.Any(), int64(10), gomock.Len(2)).Return(nil)
	writer.EXPECT().AddSlots(gomock.Any(), int64(11), gomock.Len(1)).Return(errors.New("constraint violation"))

	result, err := NewService(writer).Import(context.Background(), 1, strings.NewReader(sampleExport), today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.CourseCount != 1 || result.MergedCount != 1 || result.FailedCount != 1 {
		t.Errorf("unexpected counts: %+v", result)
	}
	if result.SlotCount != 2 {
		t.Errorf("expected 2 slots imported, got %d", result.SlotCount)
	}
}

func TestServiceImportRejectsMalformedFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := domain.NewMockTimetableWriter(ctrl)
	writer.EXPECT().SaveSettings(gomock.Any(), gomock.Any()).Times(0)

	_, err := NewService(writer).Import(context.Background(), 1, strings.NewReader("garbage"), today)
	if !errors.Is(err, ErrInvalidImport) {
		t.Errorf("expected ErrInvalidImport, got %v", err)
	}
}

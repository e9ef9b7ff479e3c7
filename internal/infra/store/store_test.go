package store

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/testutil"
)

func TestClockColumns(t *testing.T) {
	tests := []struct {
		name  string
		clock civil.Time
		want  string
	}{
		{name: "morning", clock: civil.Time{Hour: 8}, want: "08:00:00"},
		{name: "with minutes", clock: civil.Time{Hour: 14, Minute: 55}, want: "14:55:00"},
		{name: "with seconds", clock: civil.Time{Hour: 19, Minute: 45, Second: 30}, want: "19:45:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clockToColumn(tt.clock)
			if got != tt.want {
				t.Errorf("clockToColumn() = %q, want %q", got, tt.want)
			}

			back, err := clockFromColumn(got)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if back != tt.clock {
				t.Errorf("clockFromColumn() = %v, want %v", back, tt.clock)
			}
		})
	}
}

func TestClockFromColumnInvalid(t *testing.T) {
	_, err := clockFromColumn("8 o'clock")
	if !errors.Is(err, ErrInvalidRow) {
		t.Errorf("expected ErrInvalidRow, got %v", err)
	}
}

func TestSlotRowWithBrokenWeeks(t *testing.T) {
	row := courseSlotModel{ID: 4, Weeks: "1,x,3", DayOfWeek: 1, StartPeriod: 1, EndPeriod: 2}
	if _, err := row.toDomain(); !errors.Is(err, ErrInvalidRow) {
		t.Errorf("expected ErrInvalidRow, got %v", err)
	}
}

func TestDateColumnKeepsCalendarDay(t *testing.T) {
	d := civil.Date{Year: 2025, Month: time.September, Day: 1}
	if got := dateFromColumn(dateToColumn(d)); got != d {
		t.Errorf("date round trip = %v, want %v", got, d)
	}
}

func TestCourseFromDomainDefaultsType(t *testing.T) {
	row := courseFromDomain(&domain.Course{Name: "Algebra"})
	if row.Type != "required" {
		t.Errorf("expected default type required, got %q", row.Type)
	}
}

func setupStore(t *testing.T) (*Store, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	dsn, cleanupContainer := testutil.SetupPostgresContainer(ctx, t)

	db, err := Open(ctx, dsn, Options{})
	if err != nil {
		cleanupContainer()
		t.Fatalf("failed to open database: %v", err)
	}

	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		cleanupContainer()
		t.Fatalf("failed to migrate: %v", err)
	}

	return s, func() {
		if err := s.Close(); err != nil {
			t.Logf("failed to close store: %v", err)
		}
		cleanupContainer()
	}
}

func TestStoreIntegration(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	ctx := context.Background()
	today := civil.Date{Year: 2025, Month: time.September, Day: 1}

	t.Run("settings not found before bootstrap", func(t *testing.T) {
		_, err := s.GetSettings(ctx)
		if !errors.Is(err, domain.ErrSettingsNotFound) {
			t.Errorf("expected ErrSettingsNotFound, got %v", err)
		}
	})

	t.Run("bootstrap seeds defaults and sample", func(t *testing.T) {
		if err := s.Bootstrap(ctx, BootstrapOptions{Today: today, SeedSample: true}); err != nil {
			t.Fatalf("bootstrap failed: %v", err)
		}
		// second run must not duplicate anything
		if err := s.Bootstrap(ctx, BootstrapOptions{Today: today, SeedSample: true}); err != nil {
			t.Fatalf("second bootstrap failed: %v", err)
		}

		periods, err := s.ListPeriods(ctx)
		if err != nil {
			t.Fatalf("list periods: %v", err)
		}
		if len(periods) != domain.DefaultNumberOfPeriods {
			t.Errorf("expected %d periods, got %d", domain.DefaultNumberOfPeriods, len(periods))
		}
		if periods[0].Start != (civil.Time{Hour: 8}) {
			t.Errorf("expected first period at 08:00, got %v", periods[0].Start)
		}

		settings, err := s.GetSettings(ctx)
		if err != nil {
			t.Fatalf("get settings: %v", err)
		}
		if settings.SemesterStartDate != today {
			t.Errorf("expected semester start %v, got %v", today, settings.SemesterStartDate)
		}

		timetables, err := s.ListTimetables(ctx)
		if err != nil {
			t.Fatalf("list timetables: %v", err)
		}
		if len(timetables) != 1 {
			t.Fatalf("expected 1 timetable, got %d", len(timetables))
		}

		slots, err := s.ListSlotsForTimetable(ctx, timetables[0].ID)
		if err != nil {
			t.Fatalf("list slots: %v", err)
		}
		if len(slots) != 1 {
			t.Fatalf("expected 1 sample slot, got %d", len(slots))
		}
		if !slices.Equal(slots[0].Weeks, []int{1, 2, 3, 4, 5}) {
			t.Errorf("unexpected sample weeks %v", slots[0].Weeks)
		}
		if slots[0].DayOfWeek != 1 || slots[0].StartPeriod != 1 || slots[0].EndPeriod != 2 {
			t.Errorf("unexpected sample slot %+v", slots[0])
		}
	})

	t.Run("save settings overwrites", func(t *testing.T) {
		settings := domain.DefaultSettings(today)
		settings.TotalWeeks = 18
		settings.NotificationEnabled = false
		if err := s.SaveSettings(ctx, settings); err != nil {
			t.Fatalf("save settings: %v", err)
		}

		got, err := s.GetSettings(ctx)
		if err != nil {
			t.Fatalf("get settings: %v", err)
		}
		if got.TotalWeeks != 18 || got.NotificationEnabled {
			t.Errorf("settings not updated: %+v", got)
		}
	})

	t.Run("courses and slots", func(t *testing.T) {
		timetable := domain.Timetable{Name: "Second"}
		if err := s.CreateTimetable(ctx, &timetable); err != nil {
			t.Fatalf("create timetable: %v", err)
		}

		_, err := s.FindCourseByName(ctx, timetable.ID, "Physics")
		if !errors.Is(err, domain.ErrCourseNotFound) {
			t.Fatalf("expected ErrCourseNotFound, got %v", err)
		}

		course := domain.Course{TimetableID: timetable.ID, Name: "Physics"}
		if err := s.CreateCourse(ctx, &course); err != nil {
			t.Fatalf("create course: %v", err)
		}
		if course.ID == 0 {
			t.Fatal("expected course ID to be assigned")
		}

		found, err := s.FindCourseByName(ctx, timetable.ID, "Physics")
		if err != nil {
			t.Fatalf("find course: %v", err)
		}
		if found.ID != course.ID {
			t.Errorf("expected course %d, got %d", course.ID, found.ID)
		}

		err = s.AddSlots(ctx, course.ID, []domain.CourseSlot{
			{Weeks: []int{3, 1, 2}, DayOfWeek: 3, StartPeriod: 5, EndPeriod: 6},
		})
		if err != nil {
			t.Fatalf("add slots: %v", err)
		}

		slots, err := s.ListSlotsForTimetable(ctx, timetable.ID)
		if err != nil {
			t.Fatalf("list slots: %v", err)
		}
		if len(slots) != 1 || !slices.Equal(slots[0].Weeks, []int{1, 2, 3}) {
			t.Errorf("unexpected slots %+v", slots)
		}

		adjustment := domain.Adjustment{
			SlotID:     slots[0].ID,
			Date:       civil.Date{Year: 2025, Month: time.September, Day: 3},
			TargetDate: civil.Date{Year: 2025, Month: time.September, Day: 4},
			Start:      civil.Time{Hour: 10},
			End:        civil.Time{Hour: 11, Minute: 40},
		}
		if err := s.AddAdjustment(ctx, &adjustment); err != nil {
			t.Fatalf("add adjustment: %v", err)
		}

		adjustments, err := s.ListAdjustments(ctx, timetable.ID)
		if err != nil {
			t.Fatalf("list adjustments: %v", err)
		}
		if len(adjustments) != 1 {
			t.Fatalf("expected 1 adjustment, got %d", len(adjustments))
		}
		if adjustments[0].TargetDate != adjustment.TargetDate || adjustments[0].End != adjustment.End {
			t.Errorf("unexpected adjustment %+v", adjustments[0])
		}
	})

	t.Run("ensure teacher and location are idempotent", func(t *testing.T) {
		first, err := s.EnsureTeacher(ctx, "Dr. Sato")
		if err != nil {
			t.Fatalf("ensure teacher: %v", err)
		}
		second, err := s.EnsureTeacher(ctx, " Dr. Sato ")
		if err != nil {
			t.Fatalf("ensure teacher: %v", err)
		}
		if first != second || first == 0 {
			t.Errorf("expected same teacher id, got %d and %d", first, second)
		}

		loc1, err := s.EnsureLocation(ctx, "B202")
		if err != nil {
			t.Fatalf("ensure location: %v", err)
		}
		loc2, err := s.EnsureLocation(ctx, "B202")
		if err != nil {
			t.Fatalf("ensure location: %v", err)
		}
		if loc1 != loc2 || loc1 == 0 {
			t.Errorf("expected same location id, got %d and %d", loc1, loc2)
		}

		blank, err := s.EnsureTeacher(ctx, "  ")
		if err != nil || blank != 0 {
			t.Errorf("expected blank teacher to be skipped, got %d, %v", blank, err)
		}
	})

	t.Run("ping", func(t *testing.T) {
		if err := s.Ping(ctx); err != nil {
			t.Errorf("ping failed: %v", err)
		}
	})
}

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/civil"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/timetable"
)

const (
	defaultTimetableName = "My timetable"
	sampleCourseName     = "Sample course"
	sampleClassroom      = "A101"
	sampleTeacher        = "Sample teacher"
)

type BootstrapOptions struct {
	Today civil.Date
	// SeedSample adds one demo course to an empty default timetable.
	SeedSample bool
}

// Bootstrap prepares a fresh database: default periods, a default timetable,
// default settings and optionally sample data. Existing rows are left alone.
func (s *Store) Bootstrap(ctx context.Context, opts BootstrapOptions) error {
	if err := s.InitializeDefaultPeriods(ctx); err != nil {
		return err
	}

	if _, err := s.GetSettings(ctx); err != nil {
		if !errors.Is(err, domain.ErrSettingsNotFound) {
			return err
		}
		if err := s.SaveSettings(ctx, domain.DefaultSettings(opts.Today)); err != nil {
			return err
		}
		slog.InfoContext(ctx, "default settings initialized",
			slog.String("semester_start", opts.Today.String()),
		)
	}

	timetables, err := s.ListTimetables(ctx)
	if err != nil {
		return err
	}

	var timetableID int64
	if id, ok := timetable.SelectDefaultTimetable(timetables); ok {
		timetableID = id
	} else {
		created := domain.Timetable{Name: defaultTimetableName}
		if err := s.CreateTimetable(ctx, &created); err != nil {
			return err
		}
		timetableID = created.ID
		slog.InfoContext(ctx, "default timetable created",
			slog.Int64("timetable_id", timetableID),
		)
	}

	if opts.SeedSample {
		return s.seedSample(ctx, timetableID)
	}
	return nil
}

func (s *Store) seedSample(ctx context.Context, timetableID int64) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&courseModel{}).
		Where("timetable_id = ?", timetableID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("count courses: %w", err)
	}
	if count > 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txStore := New(tx)

		course := domain.Course{TimetableID: timetableID, Name: sampleCourseName, Type: "required", Credit: 2}
		if err := txStore.CreateCourse(ctx, &course); err != nil {
			return err
		}

		locationID, err := txStore.EnsureLocation(ctx, sampleClassroom)
		if err != nil {
			return err
		}
		teacherID, err := txStore.EnsureTeacher(ctx, sampleTeacher)
		if err != nil {
			return err
		}

		slot := domain.CourseSlot{
			Weeks:       domain.WeekRange(1, 5),
			DayOfWeek:   1,
			StartPeriod: 1,
			EndPeriod:   2,
			LocationID:  locationID,
			TeacherID:   teacherID,
		}
		if err := txStore.AddSlots(ctx, course.ID, []domain.CourseSlot{slot}); err != nil {
			return err
		}

		slog.InfoContext(ctx, "sample course seeded",
			slog.Int64("timetable_id", timetableID),
			slog.Int64("course_id", course.ID),
		)
		return nil
	})
}

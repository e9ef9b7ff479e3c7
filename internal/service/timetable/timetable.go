package timetable

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

var ErrEmptyCourseName = errors.New("course name is required")

// SelectDefaultTimetable returns the timetable with the lowest ID, which is
// the first one ever created.
func SelectDefaultTimetable(timetables []domain.Timetable) (int64, bool) {
	if len(timetables) == 0 {
		return 0, false
	}

	selected := timetables[0].ID
	for _, tt := range timetables[1:] {
		if tt.ID < selected {
			selected = tt.ID
		}
	}
	return selected, true
}

// SlotInput is a slot together with the teacher and classroom names it
// should be linked to.
type SlotInput struct {
	Slot      domain.CourseSlot
	Teacher   string
	Classroom string
}

type MergeResult struct {
	CourseID     int64 `json:"course_id"`
	Merged       bool  `json:"merged"`
	AddedSlots   int   `json:"added_slots"`
	SkippedSlots int   `json:"skipped_slots"`
}

type Merger struct {
	writer domain.TimetableWriter
}

func NewMerger(writer domain.TimetableWriter) *Merger {
	return &Merger{writer: writer}
}

// MergeCourse stores course and its slots in the timetable. Course names are
// unique per timetable: when a course with the same name already exists the
// slots are appended to it and the incoming course attributes are ignored.
func (m *Merger) MergeCourse(ctx context.Context, timetableID int64, course domain.Course, slots []SlotInput) (*MergeResult, error) {
	name := strings.TrimSpace(course.Name)
	if name == "" {
		return nil, ErrEmptyCourseName
	}

	result := &MergeResult{}

	existing, err := m.writer.FindCourseByName(ctx, timetableID, name)
	switch {
	case err == nil:
		result.CourseID = existing.ID
		result.Merged = true
	case errors.Is(err, domain.ErrCourseNotFound):
		course.Name = name
		course.TimetableID = timetableID
		if err := m.writer.CreateCourse(ctx, &course); err != nil {
			return nil, fmt.Errorf("failed to create course %q: %w", name, err)
		}
		result.CourseID = course.ID
	default:
		return nil, fmt.Errorf("failed to look up course %q: %w", name, err)
	}

	toAdd := make([]domain.CourseSlot, 0, len(slots))
	for _, in := range slots {
		slot := in.Slot
		if !slot.Valid() {
			slog.WarnContext(ctx, "skipping invalid slot",
				slog.String("course", name),
				slog.Int("day_of_week", slot.DayOfWeek),
				slog.Int("start_period", slot.StartPeriod),
				slog.Int("end_period", slot.EndPeriod),
			)
			result.SkippedSlots++
			continue
		}

		slot.CourseID = result.CourseID
		if teacher := strings.TrimSpace(in.Teacher); teacher != "" {
			id, err := m.writer.EnsureTeacher(ctx, teacher)
			if err != nil {
				return nil, fmt.Errorf("failed to ensure teacher %q: %w", teacher, err)
			}
			slot.TeacherID = id
		}
		if room := strings.TrimSpace(in.Classroom); room != "" {
			id, err := m.writer.EnsureLocation(ctx, room)
			if err != nil {
				return nil, fmt.Errorf("failed to ensure location %q: %w", room, err)
			}
			slot.LocationID = id
		}
		toAdd = append(toAdd, slot)
	}

	if len(toAdd) > 0 {
		if err := m.writer.AddSlots(ctx, result.CourseID, toAdd); err != nil {
			return nil, fmt.Errorf("failed to add slots to course %q: %w", name, err)
		}
	}
	result.AddedSlots = len(toAdd)

	slog.DebugContext(ctx, "course merged",
		slog.String("course", name),
		slog.Int64("course_id", result.CourseID),
		slog.Bool("merged", result.Merged),
		slog.Int("added_slots", result.AddedSlots),
	)

	return result, nil
}

package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"cloud.google.com/go/civil"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/timetable"
)

type Result struct {
	CourseCount  int                      `json:"course_count"`
	MergedCount  int                      `json:"merged_count"`
	SlotCount    int                      `json:"slot_count"`
	SkippedSlots int                      `json:"skipped_slots"`
	FailedCount  int                      `json:"failed_count"`
	Settings     domain.Settings          `json:"-"`
	Courses      []*timetable.MergeResult `json:"courses"`
}

type Service struct {
	writer domain.TimetableWriter
	merger *timetable.Merger
}

func NewService(writer domain.TimetableWriter) *Service {
	return &Service{
		writer: writer,
		merger: timetable.NewMerger(writer),
	}
}

// Import applies a WakeUp export to the timetable: the settings are saved
// and every course goes through the name merge. A course that fails to
// store does not stop the others.
func (s *Service) Import(ctx context.Context, timetableID int64, r io.Reader, today civil.Date) (*Result, error) {
	parsed, err := ParseWakeUp(r, today)
	if err != nil {
		slog.WarnContext(ctx, "failed to parse schedule import",
			slog.Int64("timetable_id", timetableID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := s.writer.SaveSettings(ctx, parsed.Settings); err != nil {
		return nil, fmt.Errorf("failed to save imported settings: %w", err)
	}

	result := &Result{
		Settings: parsed.Settings,
		Courses:  make([]*timetable.MergeResult, 0, len(parsed.Courses)),
	}

	for _, c := range parsed.Courses {
		merged, err := s.merger.MergeCourse(ctx, timetableID, c.Course, c.Slots)
		if err != nil {
			slog.WarnContext(ctx, "failed to import course",
				slog.String("course", c.Course.Name),
				slog.String("error", err.Error()),
			)
			result.FailedCount++
			continue
		}

		result.CourseCount++
		if merged.Merged {
			result.MergedCount++
		}
		result.SlotCount += merged.AddedSlots
		result.SkippedSlots += merged.SkippedSlots
		result.Courses = append(result.Courses, merged)
	}

	slog.InfoContext(ctx, "schedule import completed",
		slog.Int64("timetable_id", timetableID),
		slog.Int("course_count", result.CourseCount),
		slog.Int("slot_count", result.SlotCount),
		slog.Int("failed_count", result.FailedCount),
	)

	return result, nil
}

package recurrence

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"cloud.google.com/go/civil"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/weekcal"
)

type Request struct {
	Slots         []domain.CourseSlot
	Periods       []domain.Period
	From          civil.Date
	To            civil.Date
	SemesterStart civil.Date

	// Optional detail used to decorate occurrences.
	Courses     []domain.Course
	Locations   []domain.Location
	Teachers    []domain.Teacher
	Adjustments []domain.Adjustment
}

type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

type slotDate struct {
	slotID int64
	date   civil.Date
}

// OccurrencesInRange expands weekly slots into dated occurrences for every
// day in [From, To]. Slots referencing unknown periods are skipped; the only
// error is a period table with duplicate numbers.
func (r *Resolver) OccurrencesInRange(ctx context.Context, req Request) ([]domain.Occurrence, error) {
	index, err := NewPeriodIndex(req.Periods)
	if err != nil {
		return nil, err
	}

	if req.To.Before(req.From) {
		return []domain.Occurrence{}, nil
	}

	courses := make(map[int64]domain.Course, len(req.Courses))
	for _, c := range req.Courses {
		courses[c.ID] = c
	}
	locations := make(map[int64]string, len(req.Locations))
	for _, l := range req.Locations {
		locations[l.ID] = l.String()
	}
	teachers := make(map[int64]string, len(req.Teachers))
	for _, t := range req.Teachers {
		teachers[t.ID] = t.Name
	}
	slotsByID := make(map[int64]domain.CourseSlot, len(req.Slots))
	for _, s := range req.Slots {
		slotsByID[s.ID] = s
	}

	movedAway := make(map[slotDate]struct{})
	movedIn := make(map[civil.Date][]domain.Adjustment)
	for _, adj := range req.Adjustments {
		if !adj.Valid() {
			slog.DebugContext(ctx, "ignoring invalid adjustment",
				slog.Int64("adjustment_id", adj.ID),
				slog.Int64("slot_id", adj.SlotID),
			)
			continue
		}
		movedAway[slotDate{slotID: adj.SlotID, date: adj.Date}] = struct{}{}
		movedIn[adj.TargetDate] = append(movedIn[adj.TargetDate], adj)
	}

	decorate := func(occ *domain.Occurrence, slot domain.CourseSlot) {
		if c, ok := courses[slot.CourseID]; ok {
			occ.CourseName = c.Name
		}
		occ.Location = locations[slot.LocationID]
		occ.Teacher = teachers[slot.TeacherID]
	}

	occurrences := make([]domain.Occurrence, 0)
	for d := req.From; !d.After(req.To); d = d.AddDays(1) {
		week := weekcal.WeekNumber(d, req.SemesterStart)
		dow := weekcal.ISOWeekday(d)

		day := make([]domain.Occurrence, 0)
		for _, slot := range req.Slots {
			if slot.DayOfWeek != dow || !slot.HasWeek(week) {
				continue
			}
			if _, moved := movedAway[slotDate{slotID: slot.ID, date: d}]; moved {
				continue
			}

			windows, err := index.Windows(slot.StartPeriod, slot.EndPeriod)
			if err != nil {
				slog.DebugContext(ctx, "skipping slot with unresolvable periods",
					slog.Int64("slot_id", slot.ID),
					slog.Int64("course_id", slot.CourseID),
					slog.String("date", d.String()),
					slog.String("error", err.Error()),
				)
				continue
			}

			occ := domain.Occurrence{
				CourseID:    slot.CourseID,
				SlotID:      slot.ID,
				Date:        d,
				Start:       windows[0].Start,
				End:         windows[len(windows)-1].End,
				StartPeriod: slot.StartPeriod,
				EndPeriod:   slot.EndPeriod,
				Periods:     windows,
			}
			decorate(&occ, slot)
			day = append(day, occ)
		}

		for _, adj := range movedIn[d] {
			slot, ok := slotsByID[adj.SlotID]
			if !ok || !recursOn(slot, adj.Date, req.SemesterStart) {
				continue
			}

			occ := domain.Occurrence{
				CourseID:    slot.CourseID,
				SlotID:      slot.ID,
				Date:        d,
				Start:       adj.Start,
				End:         adj.End,
				StartPeriod: slot.StartPeriod,
				EndPeriod:   slot.EndPeriod,
				Periods: []domain.PeriodWindow{
					{Number: slot.StartPeriod, Start: adj.Start, End: adj.End},
				},
				Adjusted: true,
			}
			decorate(&occ, slot)
			day = append(day, occ)
		}

		slices.SortStableFunc(day, compareOccurrences)
		occurrences = append(occurrences, day...)
	}

	return occurrences, nil
}

func recursOn(slot domain.CourseSlot, d, semesterStart civil.Date) bool {
	return slot.DayOfWeek == weekcal.ISOWeekday(d) && slot.HasWeek(weekcal.WeekNumber(d, semesterStart))
}

func compareOccurrences(a, b domain.Occurrence) int {
	if c := cmp.Compare(a.StartPeriod, b.StartPeriod); c != 0 {
		return c
	}
	if c := cmp.Compare(a.SlotID, b.SlotID); c != 0 {
		return c
	}
	if a.Adjusted != b.Adjusted {
		if !a.Adjusted {
			return -1
		}
		return 1
	}
	return domain.CompareClock(a.Start, b.Start)
}

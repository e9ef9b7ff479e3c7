package store

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

func dateToColumn(d civil.Date) time.Time {
	return d.In(time.UTC)
}

func dateFromColumn(t time.Time) civil.Date {
	return civil.DateOf(t.UTC())
}

func clockToColumn(t civil.Time) string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func clockFromColumn(s string) (civil.Time, error) {
	t, err := civil.ParseTime(s)
	if err != nil {
		return civil.Time{}, fmt.Errorf("%w: clock %q", ErrInvalidRow, s)
	}
	return t, nil
}

func (m timetableModel) toDomain() domain.Timetable {
	return domain.Timetable{
		ID:        m.ID,
		Name:      m.Name,
		Semester:  m.Semester,
		ClassID:   m.ClassID,
		CreatedAt: m.CreatedAt,
		Note:      m.Note,
	}
}

func (m courseModel) toDomain() domain.Course {
	return domain.Course{
		ID:          m.ID,
		TimetableID: m.TimetableID,
		Name:        m.Name,
		Type:        m.Type,
		Credit:      m.Credit,
		ExamTime:    m.ExamTime,
		Note:        m.Note,
	}
}

func courseFromDomain(c *domain.Course) courseModel {
	courseType := c.Type
	if courseType == "" {
		courseType = "required"
	}
	return courseModel{
		ID:          c.ID,
		TimetableID: c.TimetableID,
		Name:        c.Name,
		Type:        courseType,
		Credit:      c.Credit,
		ExamTime:    c.ExamTime,
		Note:        c.Note,
	}
}

func (m courseSlotModel) toDomain() (domain.CourseSlot, error) {
	weeks, err := domain.ParseWeeks(m.Weeks)
	if err != nil {
		return domain.CourseSlot{}, fmt.Errorf("%w: slot %d: %v", ErrInvalidRow, m.ID, err)
	}
	return domain.CourseSlot{
		ID:          m.ID,
		CourseID:    m.CourseID,
		Weeks:       weeks,
		DayOfWeek:   m.DayOfWeek,
		StartPeriod: m.StartPeriod,
		EndPeriod:   m.EndPeriod,
		LocationID:  m.LocationID,
		TeacherID:   m.TeacherID,
	}, nil
}

func slotFromDomain(courseID int64, s domain.CourseSlot) courseSlotModel {
	return courseSlotModel{
		CourseID:    courseID,
		Weeks:       domain.FormatWeeks(s.Weeks),
		DayOfWeek:   s.DayOfWeek,
		StartPeriod: s.StartPeriod,
		EndPeriod:   s.EndPeriod,
		LocationID:  s.LocationID,
		TeacherID:   s.TeacherID,
	}
}

func (m periodModel) toDomain() (domain.Period, error) {
	start, err := clockFromColumn(m.StartTime)
	if err != nil {
		return domain.Period{}, err
	}
	end, err := clockFromColumn(m.EndTime)
	if err != nil {
		return domain.Period{}, err
	}
	return domain.Period{
		ID:         m.ID,
		Name:       m.Name,
		Start:      start,
		End:        end,
		PeriodType: m.PeriodType,
		SortOrder:  m.SortOrder,
		Note:       m.Note,
	}, nil
}

func periodFromDomain(p domain.Period) periodModel {
	return periodModel{
		ID:         p.ID,
		Name:       p.Name,
		StartTime:  clockToColumn(p.Start),
		EndTime:    clockToColumn(p.End),
		PeriodType: p.PeriodType,
		SortOrder:  p.SortOrder,
		Note:       p.Note,
	}
}

func (m adjustmentModel) toDomain() (domain.Adjustment, error) {
	start, err := clockFromColumn(m.StartTime)
	if err != nil {
		return domain.Adjustment{}, err
	}
	end, err := clockFromColumn(m.EndTime)
	if err != nil {
		return domain.Adjustment{}, err
	}
	return domain.Adjustment{
		ID:               m.ID,
		SlotID:           m.SlotID,
		Date:             dateFromColumn(m.Date),
		TargetDate:       dateFromColumn(m.TargetDate),
		Start:            start,
		End:              end,
		OriginalPeriodID: m.OriginalPeriodID,
		AdjustType:       m.AdjustType,
		Note:             m.Note,
	}, nil
}

func adjustmentFromDomain(a domain.Adjustment) adjustmentModel {
	adjustType := a.AdjustType
	if adjustType == "" {
		adjustType = "reschedule"
	}
	return adjustmentModel{
		ID:               a.ID,
		SlotID:           a.SlotID,
		Date:             dateToColumn(a.Date),
		TargetDate:       dateToColumn(a.TargetDate),
		StartTime:        clockToColumn(a.Start),
		EndTime:          clockToColumn(a.End),
		OriginalPeriodID: a.OriginalPeriodID,
		AdjustType:       adjustType,
		Note:             a.Note,
	}
}

func (m settingsModel) toDomain() domain.Settings {
	return domain.Settings{
		SemesterStartDate:   dateFromColumn(m.SemesterStartDate),
		TotalWeeks:          m.TotalWeeks,
		NumberOfPeriods:     m.NumberOfPeriods,
		ShowWeekends:        m.ShowWeekends,
		DoNotDisturbEnabled: m.DoNotDisturbEnabled,
		NotificationEnabled: m.NotificationEnabled,
		Theme:               m.Theme,
	}
}

func settingsFromDomain(s domain.Settings) settingsModel {
	return settingsModel{
		ID:                  settingsRow,
		SemesterStartDate:   dateToColumn(s.SemesterStartDate),
		TotalWeeks:          s.TotalWeeks,
		NumberOfPeriods:     s.NumberOfPeriods,
		ShowWeekends:        s.ShowWeekends,
		DoNotDisturbEnabled: s.DoNotDisturbEnabled,
		NotificationEnabled: s.NotificationEnabled,
		Theme:               s.Theme,
	}
}

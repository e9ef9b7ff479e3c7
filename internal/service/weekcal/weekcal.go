package weekcal

import (
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

// WeekNumber returns the 1-based week of date counted from semesterStart.
// Dates before the semester start belong to week 1.
func WeekNumber(date, semesterStart civil.Date) int {
	days := date.DaysSince(semesterStart)
	if days < 0 {
		return 1
	}
	return days/7 + 1
}

// DateOf returns the date of the ISO weekday inside the given week.
// Weeks below 1 are treated as week 1.
func DateOf(week, dayOfWeek int, semesterStart civil.Date) civil.Date {
	if week < 1 {
		week = 1
	}
	offset := (dayOfWeek - ISOWeekday(semesterStart) + 7) % 7
	return semesterStart.AddDays(7*(week-1) + offset)
}

// ClampWeek bounds a week number to [1, totalWeeks]. A non-positive
// totalWeeks leaves the upper bound open.
func ClampWeek(week, totalWeeks int) int {
	if week < 1 {
		return 1
	}
	if totalWeeks > 0 && week > totalWeeks {
		return totalWeeks
	}
	return week
}

// ISOWeekday maps Monday to 1 and Sunday to 7.
func ISOWeekday(d civil.Date) int {
	wd := d.Weekday()
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// Calendar binds week arithmetic to one semester.
type Calendar struct {
	SemesterStart civil.Date
	TotalWeeks    int
}

func New(settings domain.Settings) Calendar {
	return Calendar{
		SemesterStart: settings.SemesterStartDate,
		TotalWeeks:    settings.TotalWeeks,
	}
}

func (c Calendar) Week(date civil.Date) int {
	return WeekNumber(date, c.SemesterStart)
}

// DisplayWeek is the clamped week shown to users.
func (c Calendar) DisplayWeek(date civil.Date) int {
	return ClampWeek(c.Week(date), c.TotalWeeks)
}

func (c Calendar) DateOf(week, dayOfWeek int) civil.Date {
	return DateOf(week, dayOfWeek, c.SemesterStart)
}

// ParseDate accepts ISO dates as well as unpadded forms like "2025-9-1".
// Anything else yields fallback.
func ParseDate(s string, fallback civil.Date) civil.Date {
	s = strings.TrimSpace(s)
	if d, err := civil.ParseDate(s); err == nil {
		return d
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return fallback
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return fallback
		}
		nums[i] = n
	}

	d := civil.Date{Year: nums[0], Month: time.Month(nums[1]), Day: nums[2]}
	if !d.IsValid() {
		return fallback
	}
	return d
}

// ParseTime accepts "15:04" and "15:04:05" times of day, else fallback.
func ParseTime(s string, fallback civil.Time) civil.Time {
	s = strings.TrimSpace(s)
	if strings.Count(s, ":") == 1 {
		s += ":00"
	}
	t, err := civil.ParseTime(s)
	if err != nil || !t.IsValid() {
		return fallback
	}
	return t
}

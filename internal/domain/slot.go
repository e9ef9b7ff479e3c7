package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	MaxWeekNumber   = 64
	MaxPeriodNumber = 32
)

// CourseSlot is a weekly recurring block binding a course to a weekday,
// an inclusive period range and the set of week numbers it runs in.
type CourseSlot struct {
	ID          int64
	CourseID    int64
	Weeks       []int
	DayOfWeek   int
	StartPeriod int
	EndPeriod   int
	LocationID  int64
	TeacherID   int64
}

func (s CourseSlot) HasWeek(week int) bool {
	return slices.Contains(s.Weeks, week)
}

// Valid reports whether the slot can ever produce an occurrence.
func (s CourseSlot) Valid() bool {
	return s.DayOfWeek >= 1 && s.DayOfWeek <= 7 &&
		len(s.Weeks) > 0 &&
		s.StartPeriod >= 1 && s.StartPeriod <= s.EndPeriod &&
		s.EndPeriod <= MaxPeriodNumber
}

// WeekRange returns the weeks from first to last inclusive, clipped to
// [1, MaxWeekNumber].
func WeekRange(first, last int) []int {
	first = max(first, 1)
	last = min(last, MaxWeekNumber)
	if last < first {
		return nil
	}
	weeks := make([]int, 0, last-first+1)
	for w := first; w <= last; w++ {
		weeks = append(weeks, w)
	}
	return weeks
}

// FormatWeeks encodes a week set as a sorted comma separated list.
func FormatWeeks(weeks []int) string {
	sorted := slices.Clone(weeks)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	parts := make([]string, len(sorted))
	for i, w := range sorted {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, ",")
}

// ParseWeeks decodes the FormatWeeks encoding. Empty input yields an empty set.
func ParseWeeks(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}

	fields := strings.Split(s, ",")
	weeks := make([]int, 0, len(fields))
	for _, f := range fields {
		w, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("parse week %q: %w", f, err)
		}
		if w < 1 || w > MaxWeekNumber {
			return nil, fmt.Errorf("week %d out of range", w)
		}
		weeks = append(weeks, w)
	}
	slices.Sort(weeks)
	return slices.Compact(weeks), nil
}

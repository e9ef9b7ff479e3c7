package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

// ClockSeconds returns the number of seconds elapsed since midnight.
func ClockSeconds(t civil.Time) int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// CompareClock returns -1, 0 or 1 ordering a and b by time of day.
func CompareClock(a, b civil.Time) int {
	sa, sb := ClockSeconds(a), ClockSeconds(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

// MinutesBetween counts whole minutes from one time of day to another, truncated toward zero.
func MinutesBetween(from, to civil.Time) int {
	return (ClockSeconds(to) - ClockSeconds(from)) / 60
}

// ClockOf drops the date and sub-second parts of t in its own location.
func ClockOf(t time.Time) civil.Time {
	ct := civil.TimeOf(t)
	ct.Nanosecond = 0
	return ct
}

// At combines a calendar date and a time of day into an instant in loc.
func At(d civil.Date, t civil.Time, loc *time.Location) time.Time {
	return civil.DateTime{Date: d, Time: t}.In(loc)
}

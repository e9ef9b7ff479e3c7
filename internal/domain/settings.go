package domain

import (
	"cloud.google.com/go/civil"
)

const (
	DefaultTotalWeeks      = 22
	DefaultNumberOfPeriods = 9
	DefaultTheme           = "auto"
)

type Settings struct {
	SemesterStartDate   civil.Date
	TotalWeeks          int
	NumberOfPeriods     int
	ShowWeekends        bool
	DoNotDisturbEnabled bool
	NotificationEnabled bool
	Theme               string
}

// DefaultSettings anchors the semester at today.
func DefaultSettings(today civil.Date) Settings {
	return Settings{
		SemesterStartDate:   today,
		TotalWeeks:          DefaultTotalWeeks,
		NumberOfPeriods:     DefaultNumberOfPeriods,
		ShowWeekends:        true,
		DoNotDisturbEnabled: false,
		NotificationEnabled: true,
		Theme:               DefaultTheme,
	}
}

package domain

import "errors"

var (
	ErrDuplicatePeriodNumber = errors.New("duplicate period number")
	ErrPeriodNotFound        = errors.New("period not found")
	ErrTriggerNotFound       = errors.New("trigger not found")
	ErrChainNotFound         = errors.New("progress chain not found")
	ErrTimetableNotFound     = errors.New("timetable not found")
	ErrNoTimetable           = errors.New("no timetable available")
	ErrSettingsNotFound      = errors.New("settings not found")
	ErrInvalidOccurrenceKey  = errors.New("invalid occurrence key")
	ErrUnknownAction         = errors.New("unknown notification action")
	ErrStaleTrigger          = errors.New("trigger was replaced")
	ErrCourseNotFound        = errors.New("course not found")
	ErrOccurrenceNotFound    = errors.New("occurrence not found")
)

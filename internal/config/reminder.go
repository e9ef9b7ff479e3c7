package config

import (
	"os"
	"strconv"
	"time"
)

const (
	reminderLeadMinutesEnv   = "REMINDER_LEAD_MINUTES"
	reminderLookaheadDaysEnv = "REMINDER_LOOKAHEAD_DAYS"
	reminderTickSecondsEnv   = "REMINDER_TICK_INTERVAL_SECONDS"
	reminderSnoozeMinutesEnv = "REMINDER_SNOOZE_MINUTES"
	reminderRaceWindowEnv    = "REMINDER_RACE_WINDOW_MINUTES"
	reminderAutoProgressEnv  = "REMINDER_AUTO_PROGRESS"
	reminderTimeZoneEnv      = "REMINDER_TIME_ZONE"
	reminderReplanCronEnv    = "REMINDER_REPLAN_CRON"

	defaultLeadMinutes           = 15
	defaultLookaheadDays         = 7
	defaultDebugTickSeconds      = 30
	defaultProductionTickSeconds = 300
	defaultSnoozeMinutes         = 5
	defaultTimeZone              = "Local"
	defaultReplanCron            = "0 */30 * * * *"
)

type ReminderConfig struct {
	Lead              time.Duration
	LookaheadDays     int
	TickInterval      time.Duration
	Snooze            time.Duration
	RaceWindow        time.Duration
	AutoStartProgress bool
	Location          *time.Location
	ReplanCron        string
}

func LoadReminderConfig(env Environment) *ReminderConfig {
	lead := time.Duration(positiveIntEnv(reminderLeadMinutesEnv, defaultLeadMinutes)) * time.Minute

	tickDefault := defaultProductionTickSeconds
	if env == EnvironmentDebug {
		tickDefault = defaultDebugTickSeconds
	}

	// the race window defaults to the lead time
	raceWindow := lead
	if v := os.Getenv(reminderRaceWindowEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			raceWindow = time.Duration(parsed) * time.Minute
		}
	}

	replanCron := os.Getenv(reminderReplanCronEnv)
	if replanCron == "" {
		replanCron = defaultReplanCron
	}

	return &ReminderConfig{
		Lead:              lead,
		LookaheadDays:     positiveIntEnv(reminderLookaheadDaysEnv, defaultLookaheadDays),
		TickInterval:      time.Duration(positiveIntEnv(reminderTickSecondsEnv, tickDefault)) * time.Second,
		Snooze:            time.Duration(positiveIntEnv(reminderSnoozeMinutesEnv, defaultSnoozeMinutes)) * time.Minute,
		RaceWindow:        raceWindow,
		AutoStartProgress: os.Getenv(reminderAutoProgressEnv) == "true",
		Location:          loadLocation(os.Getenv(reminderTimeZoneEnv)),
		ReplanCron:        replanCron,
	}
}

func loadLocation(name string) *time.Location {
	if name == "" {
		name = defaultTimeZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

func positiveIntEnv(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

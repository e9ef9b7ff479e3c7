package domain

import (
	"time"
)

type InterruptionFilter string

const (
	FilterNoChange     InterruptionFilter = "no_change"
	FilterPriorityOnly InterruptionFilter = "priority_only"
	FilterAll          InterruptionFilter = "all"
)

type Permission string

const (
	PermissionPostNotifications  Permission = "post_notifications"
	PermissionInterruptionPolicy Permission = "interruption_policy"
)

const (
	ChannelReminder = "course_reminder"
	ChannelProgress = "course_progress"
)

// Payload is everything the device needs to render one notification.
type Payload struct {
	Key             OccurrenceKey `json:"key"`
	Channel         string        `json:"channel"`
	Title           string        `json:"title"`
	Body            string        `json:"body"`
	Actions         []Action      `json:"actions,omitempty"`
	Progress        *Progress     `json:"progress,omitempty"`
	Ongoing         bool          `json:"ongoing"`
	AutoCancelAfter time.Duration `json:"auto_cancel_after,omitempty"`
}

func ReminderNotificationID(key OccurrenceKey) string {
	return "reminder:" + key.String()
}

func ProgressNotificationID(key OccurrenceKey) string {
	return "progress:" + key.String()
}

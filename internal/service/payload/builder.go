package payload

import (
	"fmt"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

const (
	defaultCourseName = "Unnamed course"

	// EndedAutoCancel is how long the final "class ended" notification stays up.
	EndedAutoCancel = 30 * time.Second
)

type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build assembles the pre-class reminder with its action set.
func (b *Builder) Build(occ domain.Occurrence, eval domain.Evaluation) domain.Payload {
	body := fmt.Sprintf("%s starts at %s", courseName(occ), hhmm(occ))
	if occ.Location != "" {
		body += " in " + occ.Location
	}
	if eval.Status == domain.StatusInProgress || eval.Status == domain.StatusBetween {
		body = fmt.Sprintf("%s is in session. %s", courseName(occ), eval.Message)
	}

	progress := eval.Progress
	return domain.Payload{
		Key:      occ.Key(),
		Channel:  domain.ChannelReminder,
		Title:    "Course reminder",
		Body:     body,
		Actions:  domain.ReminderActions(),
		Progress: &progress,
	}
}

// BuildProgress assembles the ongoing "now in class" notification.
func (b *Builder) BuildProgress(occ domain.Occurrence, eval domain.Evaluation) domain.Payload {
	progress := eval.Progress
	p := domain.Payload{
		Key:      occ.Key(),
		Channel:  domain.ChannelProgress,
		Title:    progressTitle(occ, eval),
		Body:     eval.Message,
		Progress: &progress,
		Ongoing:  true,
	}

	if eval.Status == domain.StatusEnded {
		p.Ongoing = false
		p.AutoCancelAfter = EndedAutoCancel
	}
	if p.Body == "" {
		p.Body = fmt.Sprintf("Period %d", eval.CurrentPeriod)
	}
	return p
}

func progressTitle(occ domain.Occurrence, eval domain.Evaluation) string {
	var label string
	switch eval.Status {
	case domain.StatusInProgress:
		label = "In class"
	case domain.StatusBetween:
		label = "Break"
	case domain.StatusUpcoming:
		label = "Starting soon"
	case domain.StatusEnded:
		label = "Class over"
	default:
		label = "Class"
	}
	return label + ": " + courseName(occ)
}

func courseName(occ domain.Occurrence) string {
	if name := strings.TrimSpace(occ.CourseName); name != "" {
		return name
	}
	return defaultCourseName
}

func hhmm(occ domain.Occurrence) string {
	return fmt.Sprintf("%02d:%02d", occ.Start.Hour, occ.Start.Minute)
}

package action

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/reminder"
)

// OccurrenceFinder recovers the occurrence a notification refers to.
type OccurrenceFinder interface {
	FindOccurrence(ctx context.Context, key domain.OccurrenceKey) (*domain.Occurrence, error)
}

// ReminderControl is the part of the scheduler notification actions drive.
type ReminderControl interface {
	Dismiss(ctx context.Context, key domain.OccurrenceKey) error
	Snooze(ctx context.Context, occ domain.Occurrence, now time.Time) (*reminder.ResultItem, error)
	StartProgress(ctx context.Context, occ domain.Occurrence, now time.Time) (*reminder.FireOutcome, error)
}

type Result struct {
	Key      string                `json:"key"`
	Action   domain.Action         `json:"action"`
	Snoozed  *reminder.ResultItem  `json:"snoozed,omitempty"`
	Progress *reminder.FireOutcome `json:"progress,omitempty"`
}

type Dispatcher struct {
	finder   OccurrenceFinder
	reminder ReminderControl
}

func NewDispatcher(finder OccurrenceFinder, control ReminderControl) *Dispatcher {
	return &Dispatcher{finder: finder, reminder: control}
}

// Dispatch runs the reminder action the user tapped for key.
func (d *Dispatcher) Dispatch(ctx context.Context, key domain.OccurrenceKey, action domain.Action, now time.Time) (*Result, error) {
	result := &Result{Key: key.String(), Action: action}

	slog.InfoContext(ctx, "dispatching notification action",
		slog.String("occurrence_key", key.String()),
		slog.String("action", action.String()),
	)

	switch action {
	case domain.ActionDismiss:
		if err := d.reminder.Dismiss(ctx, key); err != nil {
			return nil, err
		}
		return result, nil

	case domain.ActionSnooze:
		occ, err := d.finder.FindOccurrence(ctx, key)
		if err != nil {
			return nil, err
		}
		item, err := d.reminder.Snooze(ctx, *occ, now)
		if err != nil {
			return nil, err
		}
		result.Snoozed = item
		return result, nil

	case domain.ActionConfirm:
		occ, err := d.finder.FindOccurrence(ctx, key)
		if err != nil {
			return nil, err
		}
		outcome, err := d.reminder.StartProgress(ctx, *occ, now)
		if err != nil {
			return nil, err
		}
		result.Progress = outcome
		return result, nil

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAction, action)
	}
}

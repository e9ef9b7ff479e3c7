package status

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

// Engine classifies occurrences against the current time. It holds no state.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate classifies now against the period windows of one occurrence.
// Period bounds are inclusive for IN_PROGRESS; BETWEEN is strictly inside a break.
func (e *Engine) Evaluate(now civil.Time, occ domain.Occurrence) domain.Evaluation {
	windows := occ.Periods
	if !validWindows(windows) {
		return unknown(occ)
	}

	first, last := windows[0], windows[len(windows)-1]
	progress := progressOf(now, first.Start, last.End)

	if domain.CompareClock(now, first.Start) < 0 {
		remaining := domain.MinutesBetween(now, first.Start)
		return domain.Evaluation{
			Status:           domain.StatusUpcoming,
			CurrentPeriod:    first.Number,
			RemainingMinutes: remaining,
			Progress:         progress,
			Message:          startsInMessage(first.Number, remaining),
		}
	}

	for i, w := range windows {
		if domain.CompareClock(now, w.Start) >= 0 && domain.CompareClock(now, w.End) <= 0 {
			remaining := domain.MinutesBetween(now, w.End)
			return domain.Evaluation{
				Status:           domain.StatusInProgress,
				CurrentPeriod:    w.Number,
				RemainingMinutes: remaining,
				Progress:         progress,
				Message:          endsInMessage(w.Number, remaining),
			}
		}

		if i+1 < len(windows) {
			next := windows[i+1]
			if domain.CompareClock(now, w.End) > 0 && domain.CompareClock(now, next.Start) < 0 {
				remaining := domain.MinutesBetween(now, next.Start)
				return domain.Evaluation{
					Status:           domain.StatusBetween,
					CurrentPeriod:    next.Number,
					RemainingMinutes: remaining,
					Progress:         progress,
					Message:          startsInMessage(next.Number, remaining),
				}
			}
		}
	}

	if domain.CompareClock(now, last.End) > 0 {
		return domain.Evaluation{
			Status:        domain.StatusEnded,
			CurrentPeriod: last.Number,
			Progress:      progress,
			Message:       "Class has ended",
		}
	}

	return unknown(occ)
}

// EvaluateAt applies the occurrence date before comparing clock times.
func (e *Engine) EvaluateAt(now time.Time, occ domain.Occurrence) domain.Evaluation {
	today := civil.DateOf(now)

	switch {
	case today.Before(occ.Date):
		eval := e.Evaluate(civil.Time{}, occ)
		if eval.Status == domain.StatusUnknown {
			return eval
		}
		remaining := int(occ.StartAt(now.Location()).Sub(now) / time.Minute)
		eval.Status = domain.StatusUpcoming
		eval.RemainingMinutes = remaining
		eval.Progress.Current = 0
		eval.Message = startsInMessage(eval.CurrentPeriod, remaining)
		return eval
	case today.After(occ.Date):
		eval := e.Evaluate(civil.Time{Hour: 23, Minute: 59, Second: 59}, occ)
		if eval.Status == domain.StatusUnknown {
			return eval
		}
		eval.Status = domain.StatusEnded
		eval.RemainingMinutes = 0
		eval.Progress.Current = eval.Progress.Max
		eval.Message = "Class has ended"
		return eval
	default:
		return e.Evaluate(domain.ClockOf(now), occ)
	}
}

// EvaluateDay picks the occurrence that matters now from one day's ordered
// run: the first that has not ended, or the last one when all have ended.
func (e *Engine) EvaluateDay(now civil.Time, occs []domain.Occurrence) (int, domain.Evaluation, bool) {
	if len(occs) == 0 {
		return -1, domain.Evaluation{}, false
	}

	var eval domain.Evaluation
	for i, occ := range occs {
		eval = e.Evaluate(now, occ)
		if eval.Status != domain.StatusEnded {
			return i, eval, true
		}
	}
	return len(occs) - 1, eval, true
}

func validWindows(windows []domain.PeriodWindow) bool {
	if len(windows) == 0 {
		return false
	}
	for i, w := range windows {
		if domain.CompareClock(w.Start, w.End) >= 0 {
			return false
		}
		if i > 0 && domain.CompareClock(windows[i-1].End, w.Start) > 0 {
			return false
		}
	}
	return true
}

// progressOf measures elapsed minutes since the first period started.
// Breaks between periods are not subtracted.
func progressOf(now, firstStart, lastEnd civil.Time) domain.Progress {
	maxProgress := max(domain.MinutesBetween(firstStart, lastEnd), 1)
	current := min(max(domain.MinutesBetween(firstStart, now), 0), maxProgress)
	return domain.Progress{Current: current, Max: maxProgress}
}

func unknown(occ domain.Occurrence) domain.Evaluation {
	return domain.Evaluation{
		Status:        domain.StatusUnknown,
		CurrentPeriod: occ.StartPeriod,
		Progress:      domain.Progress{Current: 0, Max: 1},
		Message:       "Time information unavailable",
	}
}

func startsInMessage(period, minutes int) string {
	return fmt.Sprintf("Period %d starts in %d min", period, minutes)
}

func endsInMessage(period, minutes int) string {
	return fmt.Sprintf("Period %d ends in %d min", period, minutes)
}

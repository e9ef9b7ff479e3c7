package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"cloud.google.com/go/civil"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/observability/tracing"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/recurrence"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/reminder"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/status"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/timetable"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/weekcal"
)

const DefaultLookaheadDays = 7

type Service struct {
	reader          domain.TimetableReader
	resolver        *recurrence.Resolver
	scheduler       *reminder.Scheduler
	engine          *status.Engine
	recorder        domain.RunRecorder
	reminderMetrics *metrics.ReminderMetrics
	lookaheadDays   int
	loc             *time.Location
}

func NewService(
	reader domain.TimetableReader,
	scheduler *reminder.Scheduler,
	recorder domain.RunRecorder,
	reminderMetrics *metrics.ReminderMetrics,
	lookaheadDays int,
) *Service {
	if lookaheadDays <= 0 {
		lookaheadDays = DefaultLookaheadDays
	}
	return &Service{
		reader:          reader,
		resolver:        recurrence.NewResolver(),
		scheduler:       scheduler,
		engine:          status.NewEngine(),
		recorder:        recorder,
		reminderMetrics: reminderMetrics,
		lookaheadDays:   lookaheadDays,
		loc:             scheduler.Planner().Location(),
	}
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// PlanDefault plans the default timetable.
func (s *Service) PlanDefault(ctx context.Context, now time.Time, runID string) (*Response, error) {
	id, err := s.DefaultTimetableID(ctx)
	if err != nil {
		return nil, err
	}
	return s.PlanTimetable(ctx, id, now, runID)
}

func (s *Service) DefaultTimetableID(ctx context.Context) (int64, error) {
	timetables, err := s.reader.ListTimetables(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list timetables: %w", err)
	}

	id, ok := timetable.SelectDefaultTimetable(timetables)
	if !ok {
		return 0, domain.ErrNoTimetable
	}
	return id, nil
}

// PlanTimetable resolves the lookahead window starting today and replaces
// the PRE_CLASS trigger of every occurrence in it.
func (s *Service) PlanTimetable(ctx context.Context, timetableID int64, now time.Time, runID string) (*Response, error) {
	startedAt := time.Now()
	today := civil.DateOf(now.In(s.loc))
	from, to := today, today.AddDays(s.lookaheadDays-1)

	ctx, span := tracing.StartPlanningRunSpan(ctx, timetableID, from.String(), to.String())
	defer span.End()

	response := &Response{
		RunID:       runID,
		TimetableID: timetableID,
		WindowFrom:  from,
		WindowTo:    to,
	}

	occurrences, settings, err := s.resolve(ctx, timetableID, from, to, today)
	if err != nil {
		slog.ErrorContext(ctx, "failed to resolve occurrences for planning",
			slog.String("run_id", runID),
			slog.Int64("timetable_id", timetableID),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return nil, err
	}

	if !settings.NotificationEnabled {
		slog.InfoContext(ctx, "notifications disabled, skipping planning",
			slog.String("run_id", runID),
			slog.Int64("timetable_id", timetableID),
		)
		response.Skipped = true
		response.SkipReason = "notifications disabled"
		response.Result = &reminder.Result{Items: []reminder.ResultItem{}}
		return response, nil
	}

	response.Result = s.scheduler.SchedulePlanned(ctx, occurrences, now)

	tracing.RecordPlanningRunResult(span,
		response.OccurrenceCount,
		response.ScheduledCount,
		response.DroppedCount,
		response.FailedCount,
		nil,
	)
	if s.reminderMetrics != nil {
		s.reminderMetrics.RecordPlanningDuration(ctx, time.Since(startedAt))
	}

	s.recordRun(ctx, response, now)

	slog.InfoContext(ctx, "planning run completed",
		slog.String("run_id", runID),
		slog.Int64("timetable_id", timetableID),
		slog.String("from", from.String()),
		slog.String("to", to.String()),
		slog.Int("occurrence_count", response.OccurrenceCount),
		slog.Int("scheduled_count", response.ScheduledCount),
		slog.Int("overdue_count", response.OverdueCount),
		slog.Int("dropped_count", response.DroppedCount),
		slog.Int("replaced_count", response.ReplacedCount),
		slog.Int("kept_count", response.KeptCount),
		slog.Int("failed_count", response.FailedCount),
	)

	return response, nil
}

func (s *Service) recordRun(ctx context.Context, response *Response, now time.Time) {
	if s.recorder == nil {
		return
	}

	record := domain.PlanningRunRecord{
		RunID:           response.RunID,
		TimetableID:     response.TimetableID,
		RanAt:           now,
		WindowFrom:      response.WindowFrom,
		WindowTo:        response.WindowTo,
		OccurrenceCount: response.OccurrenceCount,
		ScheduledCount:  response.ScheduledCount,
		OverdueCount:    response.OverdueCount,
		DroppedCount:    response.DroppedCount,
		ReplacedCount:   response.ReplacedCount,
		FailedCount:     response.FailedCount,
	}
	if err := s.recorder.RecordPlanningRun(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to record planning run",
			slog.String("run_id", response.RunID),
			slog.String("error", err.Error()),
		)
	}
}

// Fire checks a trigger delivered by the timer sink against the current
// timetable, hands it to the scheduler and records progress ticks.
func (s *Service) Fire(ctx context.Context, trigger domain.Trigger, now time.Time) (*reminder.FireOutcome, error) {
	ctx, span := tracing.StartTriggerFireSpan(ctx, trigger.Key.String(), trigger.Kind.String(), trigger.FiresAt)
	defer span.End()

	var current *domain.Occurrence
	occ, err := s.FindOccurrence(ctx, trigger.Key)
	switch {
	case err == nil:
		current = occ
	case !errors.Is(err, domain.ErrOccurrenceNotFound):
		tracing.RecordError(span, err)
		return nil, err
	}

	outcome, err := s.scheduler.HandleFire(ctx, trigger, current, now)
	if err != nil {
		if !errors.Is(err, domain.ErrStaleTrigger) {
			tracing.RecordError(span, err)
		}
		return nil, err
	}

	if s.recorder != nil && trigger.Kind == domain.TriggerProgressTick {
		tick := domain.TickRecord{
			TriggerID:  trigger.ID,
			Key:        outcome.Key,
			Status:     outcome.Status.String(),
			FiredAt:    now,
			Rearmed:    outcome.Rearmed,
			Terminated: outcome.Terminated,
		}
		if err := s.recorder.RecordTicks(ctx, []domain.TickRecord{tick}); err != nil {
			slog.WarnContext(ctx, "failed to record progress tick",
				slog.String("occurrence_key", outcome.Key),
				slog.String("error", err.Error()),
			)
		}
	}

	return outcome, nil
}

// Status evaluates today's occurrences of the timetable.
func (s *Service) Status(ctx context.Context, timetableID int64, now time.Time) (*StatusResponse, error) {
	now = now.In(s.loc)
	today := civil.DateOf(now)

	occurrences, settings, err := s.resolve(ctx, timetableID, today, today, today)
	if err != nil {
		return nil, err
	}

	calendar := weekcal.New(settings)
	week := calendar.Week(today)
	response := &StatusResponse{
		TimetableID: timetableID,
		Date:        today,
		Week:        calendar.DisplayWeek(today),
		InSemester:  !today.Before(settings.SemesterStartDate) && week <= settings.TotalWeeks,
		Items:       make([]OccurrenceStatus, 0, len(occurrences)),
	}

	for _, occ := range occurrences {
		response.Items = append(response.Items, OccurrenceStatus{
			Occurrence: occ,
			Evaluation: s.engine.EvaluateAt(now, occ),
		})
	}

	if i, _, ok := s.engine.EvaluateDay(domain.ClockOf(now), occurrences); ok {
		current := response.Items[i]
		response.Current = &current
	}

	return response, nil
}

// Occurrences resolves the timetable over [from, to].
func (s *Service) Occurrences(ctx context.Context, timetableID int64, from, to civil.Date, now time.Time) ([]domain.Occurrence, error) {
	occurrences, _, err := s.resolve(ctx, timetableID, from, to, civil.DateOf(now.In(s.loc)))
	return occurrences, err
}

// FindOccurrence re-resolves the day of key to recover the full occurrence
// a notification action refers to.
func (s *Service) FindOccurrence(ctx context.Context, key domain.OccurrenceKey) (*domain.Occurrence, error) {
	timetables, err := s.reader.ListTimetables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list timetables: %w", err)
	}

	for _, tt := range timetables {
		courses, err := s.reader.ListCourses(ctx, tt.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list courses: %w", err)
		}
		if !slices.ContainsFunc(courses, func(c domain.Course) bool { return c.ID == key.CourseID }) {
			continue
		}

		occurrences, _, err := s.resolve(ctx, tt.ID, key.Date, key.Date, key.Date)
		if err != nil {
			return nil, err
		}
		for _, occ := range occurrences {
			if occ.Key() == key {
				return &occ, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrOccurrenceNotFound, key)
}

func (s *Service) resolve(ctx context.Context, timetableID int64, from, to, today civil.Date) ([]domain.Occurrence, domain.Settings, error) {
	settings := s.loadSettings(ctx, today)

	req, err := s.loadRequest(ctx, timetableID)
	if err != nil {
		return nil, settings, err
	}
	req.From = from
	req.To = to
	req.SemesterStart = settings.SemesterStartDate

	ctx, span := tracing.StartResolutionSpan(ctx, len(req.Slots), len(req.Periods))
	defer span.End()

	startedAt := time.Now()
	occurrences, err := s.resolver.OccurrencesInRange(ctx, req)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, settings, fmt.Errorf("failed to resolve occurrences: %w", err)
	}

	if s.reminderMetrics != nil {
		s.reminderMetrics.RecordResolutionDuration(ctx, time.Since(startedAt))
		s.reminderMetrics.RecordOccurrencesResolved(ctx, len(occurrences))
	}

	return occurrences, settings, nil
}

func (s *Service) loadRequest(ctx context.Context, timetableID int64) (recurrence.Request, error) {
	var req recurrence.Request

	timetables, err := s.reader.ListTimetables(ctx)
	if err != nil {
		return req, fmt.Errorf("failed to list timetables: %w", err)
	}
	if !slices.ContainsFunc(timetables, func(tt domain.Timetable) bool { return tt.ID == timetableID }) {
		return req, fmt.Errorf("%w: %d", domain.ErrTimetableNotFound, timetableID)
	}

	if req.Slots, err = s.reader.ListSlotsForTimetable(ctx, timetableID); err != nil {
		return req, fmt.Errorf("failed to list slots: %w", err)
	}
	if req.Periods, err = s.reader.ListPeriods(ctx); err != nil {
		return req, fmt.Errorf("failed to list periods: %w", err)
	}
	if req.Adjustments, err = s.reader.ListAdjustments(ctx, timetableID); err != nil {
		return req, fmt.Errorf("failed to list adjustments: %w", err)
	}

	// Decoration data is optional: a failure only costs names in notifications.
	var errs []error
	if req.Courses, err = s.reader.ListCourses(ctx, timetableID); err != nil {
		errs = append(errs, fmt.Errorf("courses: %w", err))
	}
	if req.Locations, err = s.reader.ListLocations(ctx); err != nil {
		errs = append(errs, fmt.Errorf("locations: %w", err))
	}
	if req.Teachers, err = s.reader.ListTeachers(ctx); err != nil {
		errs = append(errs, fmt.Errorf("teachers: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		slog.WarnContext(ctx, "failed to load occurrence details",
			slog.Int64("timetable_id", timetableID),
			slog.String("error", err.Error()),
		)
	}

	return req, nil
}

func (s *Service) loadSettings(ctx context.Context, today civil.Date) domain.Settings {
	settings, err := s.reader.GetSettings(ctx)
	if err != nil || settings == nil {
		if err != nil && !errors.Is(err, domain.ErrSettingsNotFound) {
			slog.WarnContext(ctx, "failed to load settings, using defaults",
				slog.String("error", err.Error()),
			)
		}
		return domain.DefaultSettings(today)
	}
	return *settings
}

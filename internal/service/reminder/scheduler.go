package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/dnd"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/payload"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/status"
)

const (
	DefaultDebugTickInterval      = 30 * time.Second
	DefaultProductionTickInterval = 5 * time.Minute
	DefaultSnooze                 = 5 * time.Minute
)

type SettingsSource interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
}

type Options struct {
	TickInterval      time.Duration
	Snooze            time.Duration
	AutoStartProgress bool
}

// Scheduler owns the live trigger set. Every operation on an occurrence key
// runs under that key's lock so replace-by-key stays atomic per key.
type Scheduler struct {
	planner   *Planner
	taskQueue taskqueue.TaskQueue
	registry  domain.TriggerRegistry
	sink      domain.NotificationSink
	settings  SettingsSource
	engine    *status.Engine
	builder   *payload.Builder
	locks     *KeyLock
	metrics   *metrics.ReminderMetrics
	opts      Options
	newID     func() string
}

func NewScheduler(
	planner *Planner,
	taskQueue taskqueue.TaskQueue,
	registry domain.TriggerRegistry,
	sink domain.NotificationSink,
	settings SettingsSource,
	reminderMetrics *metrics.ReminderMetrics,
	opts Options,
) *Scheduler {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultProductionTickInterval
	}
	if opts.Snooze <= 0 {
		opts.Snooze = DefaultSnooze
	}
	return &Scheduler{
		planner:   planner,
		taskQueue: taskQueue,
		registry:  registry,
		sink:      sink,
		settings:  settings,
		engine:    status.NewEngine(),
		builder:   payload.NewBuilder(),
		locks:     NewKeyLock(),
		metrics:   reminderMetrics,
		opts:      opts,
		newID:     uuid.NewString,
	}
}

func (s *Scheduler) Planner() *Planner {
	return s.planner
}

// SchedulePlanned plans PRE_CLASS triggers for occurrences and registers each
// one, replacing whatever was live for the same key. One failing occurrence
// never stops the others.
func (s *Scheduler) SchedulePlanned(ctx context.Context, occurrences []domain.Occurrence, now time.Time) *Result {
	plan := s.planner.PlanReminders(occurrences, now)

	result := &Result{
		OccurrenceCount: len(occurrences),
		DroppedCount:    len(plan.Dropped),
		Items:           make([]ResultItem, 0, len(occurrences)),
	}

	for _, occ := range plan.Dropped {
		slog.DebugContext(ctx, "dropping reminder outside race window",
			slog.String("occurrence_key", occ.Key().String()),
			slog.Time("fires_at", s.planner.PreClassTime(occ)),
		)
		s.recordTrigger(ctx, domain.TriggerPreClass, "dropped")
		result.Items = append(result.Items, ResultItem{
			Key:        occ.Key().String(),
			CourseName: occ.CourseName,
			FiresAt:    s.planner.PreClassTime(occ),
			Dropped:    true,
			Success:    true,
		})
	}

	for _, trigger := range plan.Triggers {
		item := s.scheduleOne(ctx, trigger, now)
		result.Items = append(result.Items, item)

		if !item.Success {
			result.FailedCount++
			continue
		}
		if item.Kept {
			result.KeptCount++
			continue
		}
		result.ScheduledCount++
		if item.Overdue {
			result.OverdueCount++
		}
		if item.Replaced {
			result.ReplacedCount++
		}
	}

	return result
}

func (s *Scheduler) scheduleOne(ctx context.Context, trigger domain.Trigger, now time.Time) ResultItem {
	key := trigger.Key
	item := ResultItem{
		Key:        key.String(),
		CourseName: trigger.Occurrence.CourseName,
		FiresAt:    trigger.FiresAt,
		Overdue:    trigger.Overdue,
	}

	unlock := s.locks.Lock(key.String())
	defer unlock()

	existing, err := s.lookup(ctx, key, trigger.Kind)
	if err != nil {
		return s.failItem(ctx, item, trigger.Kind, err)
	}

	// An unchanged class time leaves delivered and snoozed reminders alone.
	if existing != nil && existing.PlannedFor.Equal(trigger.FiresAt) && (existing.Fired() || existing.Snoozed) {
		item.Kept = true
		item.Success = true
		item.TriggerID = existing.Trigger.ID
		s.recordTrigger(ctx, trigger.Kind, "kept")
		return item
	}

	trigger.ID = s.newID()
	replaced, err := s.replaceLocked(ctx, existing, trigger, trigger.FiresAt, false, now)
	if err != nil {
		return s.failItem(ctx, item, trigger.Kind, err)
	}

	item.TriggerID = trigger.ID
	item.ScheduledAt = trigger.ScheduleTime(now)
	item.Replaced = replaced
	item.Success = true

	outcome := "scheduled"
	if trigger.Overdue {
		outcome = "overdue"
	}
	s.recordTrigger(ctx, trigger.Kind, outcome)
	if replaced {
		s.recordTrigger(ctx, trigger.Kind, "replaced")
	}
	return item
}

func (s *Scheduler) failItem(ctx context.Context, item ResultItem, kind domain.TriggerKind, err error) ResultItem {
	slog.WarnContext(ctx, "failed to schedule trigger",
		slog.String("occurrence_key", item.Key),
		slog.String("kind", kind.String()),
		slog.String("error", err.Error()),
	)
	s.recordTrigger(ctx, kind, "failed")
	item.Success = false
	item.Error = err.Error()
	return item
}

func (s *Scheduler) lookup(ctx context.Context, key domain.OccurrenceKey, kind domain.TriggerKind) (*domain.TriggerRecord, error) {
	record, err := s.registry.GetTrigger(ctx, key, kind)
	if err != nil {
		if errors.Is(err, domain.ErrTriggerNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up trigger: %w", err)
	}
	return record, nil
}

// replaceLocked cancels the live task for the key and kind, then registers
// trigger in its place. The caller holds the key lock.
func (s *Scheduler) replaceLocked(
	ctx context.Context,
	existing *domain.TriggerRecord,
	trigger domain.Trigger,
	plannedFor time.Time,
	snoozed bool,
	now time.Time,
) (bool, error) {
	replaced := false
	if existing != nil {
		replaced = true
		if !existing.Fired() {
			s.cancelTask(ctx, existing)
		}
	}

	taskName := ""
	if s.taskQueue == nil {
		slog.WarnContext(ctx, "task queue not configured, skipping trigger registration",
			slog.String("occurrence_key", trigger.Key.String()),
			slog.String("trigger_id", trigger.ID),
		)
	} else {
		resp, err := s.taskQueue.ScheduleTrigger(ctx, &taskqueue.TriggerTask{
			ScheduleAt: trigger.ScheduleTime(now),
			Trigger:    trigger,
		})
		if err != nil {
			return replaced, fmt.Errorf("failed to register trigger: %w", err)
		}
		taskName = resp.Name
	}

	record := &domain.TriggerRecord{
		Trigger:      trigger,
		TaskName:     taskName,
		PlannedFor:   plannedFor,
		Snoozed:      snoozed,
		RegisteredAt: now,
	}
	if err := s.registry.SaveTrigger(ctx, record); err != nil {
		if s.taskQueue != nil {
			if delErr := s.taskQueue.DeleteTask(ctx, trigger.ID); delErr != nil {
				err = errors.Join(err, delErr)
			}
		}
		return replaced, fmt.Errorf("failed to save trigger: %w", err)
	}

	slog.DebugContext(ctx, "trigger registered",
		slog.String("occurrence_key", trigger.Key.String()),
		slog.String("trigger_id", trigger.ID),
		slog.String("kind", trigger.Kind.String()),
		slog.Time("fires_at", trigger.FiresAt),
		slog.Bool("overdue", trigger.Overdue),
		slog.Bool("replaced", replaced),
	)

	return replaced, nil
}

// cancelTask is best effort: a task that still fires is rejected as stale
// because its trigger ID no longer matches the registry.
func (s *Scheduler) cancelTask(ctx context.Context, record *domain.TriggerRecord) {
	if s.taskQueue == nil {
		return
	}
	if err := s.taskQueue.DeleteTask(ctx, record.Trigger.ID); err != nil {
		slog.WarnContext(ctx, "failed to cancel replaced trigger",
			slog.String("occurrence_key", record.Trigger.Key.String()),
			slog.String("trigger_id", record.Trigger.ID),
			slog.String("error", err.Error()),
		)
	}
}

// HandleFire runs the one-shot action of a trigger delivered by the timer
// sink. current is the occurrence as the timetable resolves it now, nil when
// it no longer exists. Triggers that were replaced since they were queued,
// whose occurrence is gone, or whose class moved return ErrStaleTrigger; the
// last two are dropped or re-registered at the new time.
func (s *Scheduler) HandleFire(ctx context.Context, trigger domain.Trigger, current *domain.Occurrence, now time.Time) (*FireOutcome, error) {
	unlock := s.locks.Lock(trigger.Key.String())
	defer unlock()

	record, err := s.lookup(ctx, trigger.Key, trigger.Kind)
	if err != nil {
		return nil, err
	}
	if record == nil || record.Trigger.ID != trigger.ID || record.Fired() {
		slog.InfoContext(ctx, "ignoring stale trigger",
			slog.String("occurrence_key", trigger.Key.String()),
			slog.String("trigger_id", trigger.ID),
			slog.String("kind", trigger.Kind.String()),
		)
		s.recordTrigger(ctx, trigger.Kind, "stale")
		return nil, domain.ErrStaleTrigger
	}

	if current == nil || current.Key() != trigger.Key {
		return nil, s.invalidateLocked(ctx, record, now)
	}
	if trigger.Kind == domain.TriggerPreClass && !s.planner.PreClassTime(*current).Equal(record.PlannedFor) {
		return nil, s.rescheduleLocked(ctx, record, *current, now)
	}

	firedAt := now
	record.FiredAt = &firedAt
	if err := s.registry.SaveTrigger(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to mark trigger fired: %w", err)
	}
	s.recordTrigger(ctx, trigger.Kind, "fired")

	switch trigger.Kind {
	case domain.TriggerPreClass:
		return s.firePreClassLocked(ctx, *current, now)
	case domain.TriggerProgressTick:
		return s.tickLocked(ctx, *current, now)
	default:
		return nil, fmt.Errorf("unsupported trigger kind %q", trigger.Kind)
	}
}

// invalidateLocked drops the live record of an occurrence that no longer
// exists. A progress chain is closed and an in-class interruption filter
// lifted.
func (s *Scheduler) invalidateLocked(ctx context.Context, record *domain.TriggerRecord, now time.Time) error {
	key := record.Trigger.Key
	kind := record.Trigger.Kind

	if err := s.registry.DeleteTrigger(ctx, key, kind); err != nil {
		return fmt.Errorf("failed to drop trigger of removed occurrence: %w", err)
	}

	if kind == domain.TriggerProgressTick {
		chain, err := s.registry.GetChain(ctx, key)
		if err != nil && !errors.Is(err, domain.ErrChainNotFound) {
			return fmt.Errorf("failed to load progress chain: %w", err)
		}
		if chain != nil && chain.LastStatus.InSession() {
			settings := s.loadSettings(ctx, now)
			s.applyInterruption(ctx, domain.StatusEnded, settings.DoNotDisturbEnabled)
		}
		if err := s.registry.DeleteChain(ctx, key); err != nil {
			return fmt.Errorf("failed to drop progress chain: %w", err)
		}
		if err := s.sink.Cancel(ctx, domain.ProgressNotificationID(key)); err != nil {
			slog.WarnContext(ctx, "failed to cancel progress notification",
				slog.String("occurrence_key", key.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	slog.InfoContext(ctx, "occurrence no longer scheduled, dropping trigger",
		slog.String("occurrence_key", key.String()),
		slog.String("trigger_id", record.Trigger.ID),
		slog.String("kind", kind.String()),
	)
	s.recordTrigger(ctx, kind, "invalidated")
	return domain.ErrStaleTrigger
}

// rescheduleLocked moves a reminder whose class time changed since it was
// planned. A new time already outside the race window drops it.
func (s *Scheduler) rescheduleLocked(ctx context.Context, record *domain.TriggerRecord, occ domain.Occurrence, now time.Time) error {
	plan := s.planner.PlanReminders([]domain.Occurrence{occ}, now)
	if len(plan.Triggers) == 0 {
		return s.invalidateLocked(ctx, record, now)
	}

	trigger := plan.Triggers[0]
	trigger.ID = s.newID()
	if _, err := s.replaceLocked(ctx, record, trigger, trigger.FiresAt, false, now); err != nil {
		return err
	}

	slog.InfoContext(ctx, "class time changed, reminder moved",
		slog.String("occurrence_key", trigger.Key.String()),
		slog.String("stale_trigger_id", record.Trigger.ID),
		slog.String("trigger_id", trigger.ID),
		slog.Time("fires_at", trigger.FiresAt),
	)
	s.recordTrigger(ctx, trigger.Kind, "replaced")
	return domain.ErrStaleTrigger
}

func (s *Scheduler) firePreClassLocked(ctx context.Context, occ domain.Occurrence, now time.Time) (*FireOutcome, error) {
	outcome := &FireOutcome{Key: occ.Key().String(), Kind: domain.TriggerPreClass}

	settings := s.loadSettings(ctx, now)
	if !settings.NotificationEnabled {
		slog.InfoContext(ctx, "notifications disabled, suppressing reminder",
			slog.String("occurrence_key", outcome.Key),
		)
		return outcome, nil
	}

	eval := s.engine.EvaluateAt(now, occ)
	outcome.Status = eval.Status

	p := s.builder.Build(occ, eval)
	outcome.Posted = s.post(ctx, domain.ReminderNotificationID(occ.Key()), p)

	if s.opts.AutoStartProgress {
		tick, err := s.startChainLocked(ctx, occ, now)
		if err != nil {
			return outcome, err
		}
		outcome.Rearmed = tick.Rearmed
		outcome.NextTickAt = tick.NextTickAt
	}

	return outcome, nil
}

// Snooze re-arms the reminder for occ after the snooze delay under a fresh
// trigger ID. The original planned time is kept so replanning an unchanged
// class does not undo the snooze.
func (s *Scheduler) Snooze(ctx context.Context, occ domain.Occurrence, now time.Time) (*ResultItem, error) {
	key := occ.Key()
	unlock := s.locks.Lock(key.String())
	defer unlock()

	if err := s.sink.Cancel(ctx, domain.ReminderNotificationID(key)); err != nil {
		slog.WarnContext(ctx, "failed to cancel reminder notification",
			slog.String("occurrence_key", key.String()),
			slog.String("error", err.Error()),
		)
	}

	existing, err := s.lookup(ctx, key, domain.TriggerPreClass)
	if err != nil {
		return nil, err
	}

	plannedFor := s.planner.PreClassTime(occ)
	if existing != nil {
		plannedFor = existing.PlannedFor
	}

	trigger := domain.NewTrigger(s.newID(), domain.TriggerPreClass, now.Add(s.opts.Snooze), occ)
	replaced, err := s.replaceLocked(ctx, existing, trigger, plannedFor, true, now)
	if err != nil {
		s.recordTrigger(ctx, domain.TriggerPreClass, "failed")
		return nil, err
	}
	s.recordTrigger(ctx, domain.TriggerPreClass, "snoozed")

	return &ResultItem{
		Key:         key.String(),
		CourseName:  occ.CourseName,
		TriggerID:   trigger.ID,
		FiresAt:     trigger.FiresAt,
		ScheduledAt: trigger.FiresAt,
		Replaced:    replaced,
		Success:     true,
	}, nil
}

// Dismiss silences the reminder notification and nothing else.
func (s *Scheduler) Dismiss(ctx context.Context, key domain.OccurrenceKey) error {
	unlock := s.locks.Lock(key.String())
	defer unlock()

	if err := s.sink.Cancel(ctx, domain.ReminderNotificationID(key)); err != nil {
		return fmt.Errorf("failed to cancel reminder notification: %w", err)
	}
	return nil
}

// StartProgress cancels the reminder notification and begins a progress
// chain for occ immediately.
func (s *Scheduler) StartProgress(ctx context.Context, occ domain.Occurrence, now time.Time) (*FireOutcome, error) {
	key := occ.Key()
	unlock := s.locks.Lock(key.String())
	defer unlock()

	if err := s.sink.Cancel(ctx, domain.ReminderNotificationID(key)); err != nil {
		slog.WarnContext(ctx, "failed to cancel reminder notification",
			slog.String("occurrence_key", key.String()),
			slog.String("error", err.Error()),
		)
	}

	return s.startChainLocked(ctx, occ, now)
}

func (s *Scheduler) startChainLocked(ctx context.Context, occ domain.Occurrence, now time.Time) (*FireOutcome, error) {
	existing, err := s.lookup(ctx, occ.Key(), domain.TriggerProgressTick)
	if err != nil {
		return nil, err
	}
	if existing != nil && !existing.Fired() {
		s.cancelTask(ctx, existing)
		if err := s.registry.DeleteTrigger(ctx, occ.Key(), domain.TriggerProgressTick); err != nil {
			return nil, fmt.Errorf("failed to drop pending tick: %w", err)
		}
	}

	return s.tickLocked(ctx, occ, now)
}

// tickLocked evaluates the occurrence, refreshes the progress notification
// and re-arms the chain while the class is upcoming or in session. ENDED and
// UNKNOWN terminate the chain, and a terminated chain never re-arms.
func (s *Scheduler) tickLocked(ctx context.Context, occ domain.Occurrence, now time.Time) (*FireOutcome, error) {
	key := occ.Key()
	outcome := &FireOutcome{Key: key.String(), Kind: domain.TriggerProgressTick}

	chain, err := s.registry.GetChain(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrChainNotFound) {
			return nil, fmt.Errorf("failed to load progress chain: %w", err)
		}
		chain = &domain.ChainState{Key: key}
	}
	if chain.Terminated {
		slog.DebugContext(ctx, "progress chain already terminated",
			slog.String("occurrence_key", key.String()),
		)
		outcome.Status = chain.LastStatus
		outcome.Terminated = true
		return outcome, nil
	}

	settings := s.loadSettings(ctx, now)
	eval := s.engine.EvaluateAt(now, occ)
	outcome.Status = eval.Status

	if settings.NotificationEnabled {
		p := s.builder.BuildProgress(occ, eval)
		outcome.Posted = s.post(ctx, domain.ProgressNotificationID(key), p)
	}

	if dnd.Transitioned(chain.LastStatus, eval.Status) {
		outcome.Interruption = s.applyInterruption(ctx, eval.Status, settings.DoNotDisturbEnabled)
	}

	next, rearm := s.planner.NextTick(occ, eval.Status, now, s.opts.TickInterval)
	if rearm {
		tick := domain.NewTrigger(s.newID(), domain.TriggerProgressTick, next, occ)
		existing, err := s.lookup(ctx, key, domain.TriggerProgressTick)
		if err != nil {
			return nil, err
		}
		if _, err := s.replaceLocked(ctx, existing, tick, next, false, now); err != nil {
			return nil, err
		}
		outcome.Rearmed = true
		outcome.NextTickAt = &next
	} else {
		chain.Terminated = true
		outcome.Terminated = true
	}

	chain.LastStatus = eval.Status
	chain.TickCount++
	chain.UpdatedAt = now
	if err := s.registry.SaveChain(ctx, chain); err != nil {
		return nil, fmt.Errorf("failed to save progress chain: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordTick(ctx, eval.Status.String(), outcome.Terminated)
	}

	slog.DebugContext(ctx, "progress tick handled",
		slog.String("occurrence_key", key.String()),
		slog.String("status", eval.Status.String()),
		slog.Int("remaining_minutes", eval.RemainingMinutes),
		slog.Bool("rearmed", outcome.Rearmed),
		slog.Bool("terminated", outcome.Terminated),
	)

	return outcome, nil
}

// post delivers a notification when the device allows it. Missing permission
// drops the notification silently.
func (s *Scheduler) post(ctx context.Context, notificationID string, p domain.Payload) bool {
	granted, err := s.sink.HasPermission(ctx, domain.PermissionPostNotifications)
	if err != nil {
		slog.WarnContext(ctx, "failed to check notification permission",
			slog.String("notification_id", notificationID),
			slog.String("error", err.Error()),
		)
		granted = false
	}
	if !granted {
		slog.DebugContext(ctx, "notification permission not granted, dropping notification",
			slog.String("notification_id", notificationID),
		)
		s.recordNotification(ctx, p.Channel, "suppressed")
		return false
	}

	if err := s.sink.Post(ctx, notificationID, p); err != nil {
		slog.WarnContext(ctx, "failed to post notification",
			slog.String("notification_id", notificationID),
			slog.String("error", err.Error()),
		)
		s.recordNotification(ctx, p.Channel, "failed")
		return false
	}

	s.recordNotification(ctx, p.Channel, "posted")
	return true
}

func (s *Scheduler) applyInterruption(ctx context.Context, st domain.Status, featureEnabled bool) domain.InterruptionFilter {
	if !featureEnabled {
		return domain.FilterNoChange
	}

	granted, err := s.sink.HasPermission(ctx, domain.PermissionInterruptionPolicy)
	if err != nil {
		slog.WarnContext(ctx, "failed to check interruption policy permission",
			slog.String("error", err.Error()),
		)
		granted = false
	}

	mode := dnd.Decide(st, featureEnabled, granted)
	if mode == domain.FilterNoChange {
		if !granted {
			slog.InfoContext(ctx, "interruption policy permission not granted, leaving filter unchanged",
				slog.String("status", st.String()),
			)
		}
		return mode
	}

	if err := s.sink.SetInterruptionFilter(ctx, mode); err != nil {
		slog.WarnContext(ctx, "failed to set interruption filter",
			slog.String("mode", string(mode)),
			slog.String("error", err.Error()),
		)
		return domain.FilterNoChange
	}
	return mode
}

func (s *Scheduler) loadSettings(ctx context.Context, now time.Time) domain.Settings {
	fallback := domain.DefaultSettings(civil.DateOf(now))
	if s.settings == nil {
		return fallback
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil || settings == nil {
		if err != nil && !errors.Is(err, domain.ErrSettingsNotFound) {
			slog.WarnContext(ctx, "failed to load settings, using defaults",
				slog.String("error", err.Error()),
			)
		}
		return fallback
	}
	return *settings
}

func (s *Scheduler) recordTrigger(ctx context.Context, kind domain.TriggerKind, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordTrigger(ctx, kind.String(), outcome)
	}
}

func (s *Scheduler) recordNotification(ctx context.Context, channel, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordNotification(ctx, channel, outcome)
	}
}

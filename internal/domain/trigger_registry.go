package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=trigger_registry.go -destination=trigger_registry_mock.go -package=domain

// TriggerRecord is the live trigger registered for an occurrence key and kind.
// PlannedFor is the planner's fire time the record stems from; a snoozed
// record keeps the original value.
type TriggerRecord struct {
	Trigger      Trigger    `json:"trigger"`
	TaskName     string     `json:"task_name"`
	PlannedFor   time.Time  `json:"planned_for"`
	Snoozed      bool       `json:"snoozed,omitempty"`
	FiredAt      *time.Time `json:"fired_at,omitempty"`
	RegisteredAt time.Time  `json:"registered_at"`
}

func (r *TriggerRecord) Fired() bool {
	return r.FiredAt != nil
}

// ChainState tracks a progress chain so that it terminates exactly once.
type ChainState struct {
	Key        OccurrenceKey `json:"key"`
	LastStatus Status        `json:"last_status"`
	Terminated bool          `json:"terminated"`
	TickCount  int           `json:"tick_count"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type TriggerRegistry interface {
	GetTrigger(ctx context.Context, key OccurrenceKey, kind TriggerKind) (*TriggerRecord, error)
	SaveTrigger(ctx context.Context, record *TriggerRecord) error
	DeleteTrigger(ctx context.Context, key OccurrenceKey, kind TriggerKind) error
	GetChain(ctx context.Context, key OccurrenceKey) (*ChainState, error)
	SaveChain(ctx context.Context, state *ChainState) error
	DeleteChain(ctx context.Context, key OccurrenceKey) error
}

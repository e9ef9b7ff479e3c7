package repository

import (
	"context"
	"sync"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

// MemoryTriggerRegistry keeps records in process. It serves single-instance
// runs without Redis and tests.
type MemoryTriggerRegistry struct {
	mu       sync.Mutex
	triggers map[string]domain.TriggerRecord
	chains   map[string]domain.ChainState
}

func NewMemoryTriggerRegistry() *MemoryTriggerRegistry {
	return &MemoryTriggerRegistry{
		triggers: make(map[string]domain.TriggerRecord),
		chains:   make(map[string]domain.ChainState),
	}
}

func (r *MemoryTriggerRegistry) GetTrigger(_ context.Context, key domain.OccurrenceKey, kind domain.TriggerKind) (*domain.TriggerRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.triggers[triggerKey(key, kind)]
	if !ok {
		return nil, domain.ErrTriggerNotFound
	}
	if record.FiredAt != nil {
		firedAt := *record.FiredAt
		record.FiredAt = &firedAt
	}
	return &record, nil
}

func (r *MemoryTriggerRegistry) SaveTrigger(_ context.Context, record *domain.TriggerRecord) error {
	if record == nil || record.Trigger.ID == "" || !record.Trigger.Kind.Valid() {
		return ErrInvalidTriggerData
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.triggers[triggerKey(record.Trigger.Key, record.Trigger.Kind)] = *record
	return nil
}

func (r *MemoryTriggerRegistry) DeleteTrigger(_ context.Context, key domain.OccurrenceKey, kind domain.TriggerKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.triggers, triggerKey(key, kind))
	return nil
}

func (r *MemoryTriggerRegistry) GetChain(_ context.Context, key domain.OccurrenceKey) (*domain.ChainState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.chains[chainKey(key)]
	if !ok {
		return nil, domain.ErrChainNotFound
	}
	return &state, nil
}

func (r *MemoryTriggerRegistry) SaveChain(_ context.Context, state *domain.ChainState) error {
	if state == nil {
		return ErrInvalidChainData
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.chains[chainKey(state.Key)] = *state
	return nil
}

func (r *MemoryTriggerRegistry) DeleteChain(_ context.Context, key domain.OccurrenceKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.chains, chainKey(key))
	delete(r.triggers, triggerKey(key, domain.TriggerProgressTick))
	return nil
}

// Len reports the number of live trigger records.
func (r *MemoryTriggerRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.triggers)
}

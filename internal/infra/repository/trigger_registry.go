package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

const (
	triggerKeyPrefix = "reminder:trigger:"
	chainKeyPrefix   = "reminder:chain:"

	minRecordTTL = 1 * time.Hour
	// Records outlive their occurrence date by this much so late fires still resolve.
	recordGrace = 48 * time.Hour
)

type triggerRegistry struct {
	client *redis.Client
	now    func() time.Time
}

func NewTriggerRegistry(client *redis.Client) domain.TriggerRegistry {
	return &triggerRegistry{
		client: client,
		now:    time.Now,
	}
}

func triggerKey(key domain.OccurrenceKey, kind domain.TriggerKind) string {
	return triggerKeyPrefix + kind.String() + ":" + key.String()
}

func chainKey(key domain.OccurrenceKey) string {
	return chainKeyPrefix + key.String()
}

func (r *triggerRegistry) ttlFor(key domain.OccurrenceKey) time.Duration {
	expiry := key.Date.In(time.UTC).Add(recordGrace)
	ttl := expiry.Sub(r.now())
	if ttl < minRecordTTL {
		return minRecordTTL
	}
	return ttl
}

func (r *triggerRegistry) GetTrigger(ctx context.Context, key domain.OccurrenceKey, kind domain.TriggerKind) (*domain.TriggerRecord, error) {
	data, err := r.client.Get(ctx, triggerKey(key, kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrTriggerNotFound
		}
		return nil, err
	}

	var record domain.TriggerRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidTriggerData
	}

	return &record, nil
}

func (r *triggerRegistry) SaveTrigger(ctx context.Context, record *domain.TriggerRecord) error {
	if record == nil || record.Trigger.ID == "" || !record.Trigger.Kind.Valid() {
		return ErrInvalidTriggerData
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidTriggerData
	}

	key := record.Trigger.Key
	return r.client.Set(ctx, triggerKey(key, record.Trigger.Kind), data, r.ttlFor(key)).Err()
}

func (r *triggerRegistry) DeleteTrigger(ctx context.Context, key domain.OccurrenceKey, kind domain.TriggerKind) error {
	return r.client.Del(ctx, triggerKey(key, kind)).Err()
}

func (r *triggerRegistry) GetChain(ctx context.Context, key domain.OccurrenceKey) (*domain.ChainState, error) {
	data, err := r.client.Get(ctx, chainKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrChainNotFound
		}
		return nil, err
	}

	var state domain.ChainState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, ErrInvalidChainData
	}

	return &state, nil
}

func (r *triggerRegistry) SaveChain(ctx context.Context, state *domain.ChainState) error {
	if state == nil {
		return ErrInvalidChainData
	}

	data, err := json.Marshal(state)
	if err != nil {
		return ErrInvalidChainData
	}

	return r.client.Set(ctx, chainKey(state.Key), data, r.ttlFor(state.Key)).Err()
}

// DeleteChain drops the chain state together with its pending tick record.
func (r *triggerRegistry) DeleteChain(ctx context.Context, key domain.OccurrenceKey) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, chainKey(key))
	pipe.Del(ctx, triggerKey(key, domain.TriggerProgressTick))

	_, err := pipe.Exec(ctx)
	return err
}

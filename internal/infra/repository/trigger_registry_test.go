package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/testutil"
)

func testOccurrence() domain.Occurrence {
	return domain.Occurrence{
		CourseID:    7,
		CourseName:  "Linear Algebra",
		SlotID:      3,
		Date:        civil.Date{Year: 2030, Month: time.September, Day: 2},
		Start:       civil.Time{Hour: 8},
		End:         civil.Time{Hour: 9, Minute: 35},
		StartPeriod: 1,
		EndPeriod:   2,
	}
}

func testRecord(id string, kind domain.TriggerKind) *domain.TriggerRecord {
	occ := testOccurrence()
	firesAt := occ.StartAt(time.UTC).Add(-15 * time.Minute)
	return &domain.TriggerRecord{
		Trigger:      domain.NewTrigger(id, kind, firesAt, occ),
		TaskName:     id,
		PlannedFor:   firesAt,
		RegisteredAt: time.Date(2030, time.September, 1, 12, 0, 0, 0, time.UTC),
	}
}

func runRegistryContract(t *testing.T, registry domain.TriggerRegistry) {
	t.Helper()
	ctx := context.Background()
	key := testOccurrence().Key()

	t.Run("missing trigger returns not found", func(t *testing.T) {
		_, err := registry.GetTrigger(ctx, key, domain.TriggerPreClass)
		if !errors.Is(err, domain.ErrTriggerNotFound) {
			t.Errorf("expected ErrTriggerNotFound, got %v", err)
		}
	})

	t.Run("save replaces record for same key and kind", func(t *testing.T) {
		if err := registry.SaveTrigger(ctx, testRecord("first", domain.TriggerPreClass)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := registry.SaveTrigger(ctx, testRecord("second", domain.TriggerPreClass)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := registry.GetTrigger(ctx, key, domain.TriggerPreClass)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Trigger.ID != "second" {
			t.Errorf("expected trigger id second, got %s", got.Trigger.ID)
		}
		if got.Trigger.Key != key {
			t.Errorf("expected key %v, got %v", key, got.Trigger.Key)
		}
		if !got.PlannedFor.Equal(testRecord("x", domain.TriggerPreClass).PlannedFor) {
			t.Errorf("planned_for not preserved: %v", got.PlannedFor)
		}
	})

	t.Run("kinds are independent", func(t *testing.T) {
		if err := registry.SaveTrigger(ctx, testRecord("tick", domain.TriggerProgressTick)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		pre, err := registry.GetTrigger(ctx, key, domain.TriggerPreClass)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pre.Trigger.ID != "second" {
			t.Errorf("pre-class record overwritten: %s", pre.Trigger.ID)
		}
	})

	t.Run("fired at round trips", func(t *testing.T) {
		record := testRecord("fired", domain.TriggerPreClass)
		firedAt := time.Date(2030, time.September, 2, 7, 45, 0, 0, time.UTC)
		record.FiredAt = &firedAt
		if err := registry.SaveTrigger(ctx, record); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := registry.GetTrigger(ctx, key, domain.TriggerPreClass)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Fired() || !got.FiredAt.Equal(firedAt) {
			t.Errorf("expected fired at %v, got %v", firedAt, got.FiredAt)
		}
	})

	t.Run("invalid record is rejected", func(t *testing.T) {
		err := registry.SaveTrigger(ctx, testRecord("", domain.TriggerPreClass))
		if !errors.Is(err, ErrInvalidTriggerData) {
			t.Errorf("expected ErrInvalidTriggerData, got %v", err)
		}
	})

	t.Run("delete trigger", func(t *testing.T) {
		if err := registry.DeleteTrigger(ctx, key, domain.TriggerPreClass); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := registry.GetTrigger(ctx, key, domain.TriggerPreClass)
		if !errors.Is(err, domain.ErrTriggerNotFound) {
			t.Errorf("expected ErrTriggerNotFound, got %v", err)
		}
	})

	t.Run("chain lifecycle", func(t *testing.T) {
		if _, err := registry.GetChain(ctx, key); !errors.Is(err, domain.ErrChainNotFound) {
			t.Fatalf("expected ErrChainNotFound, got %v", err)
		}

		state := &domain.ChainState{
			Key:        key,
			LastStatus: domain.StatusInProgress,
			TickCount:  3,
			UpdatedAt:  time.Date(2030, time.September, 2, 8, 30, 0, 0, time.UTC),
		}
		if err := registry.SaveChain(ctx, state); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := registry.GetChain(ctx, key)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.LastStatus != domain.StatusInProgress || got.TickCount != 3 || got.Terminated {
			t.Errorf("unexpected chain state: %+v", got)
		}

		if err := registry.DeleteChain(ctx, key); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := registry.GetChain(ctx, key); !errors.Is(err, domain.ErrChainNotFound) {
			t.Errorf("expected ErrChainNotFound after delete, got %v", err)
		}
		if _, err := registry.GetTrigger(ctx, key, domain.TriggerProgressTick); !errors.Is(err, domain.ErrTriggerNotFound) {
			t.Errorf("expected tick record removed with chain, got %v", err)
		}
	})
}

func TestMemoryTriggerRegistry(t *testing.T) {
	registry := NewMemoryTriggerRegistry()
	runRegistryContract(t, registry)

	if registry.Len() != 0 {
		t.Errorf("expected empty registry, got %d records", registry.Len())
	}
}

func TestRedisTriggerRegistry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	runRegistryContract(t, NewTriggerRegistry(client))
}

func TestRedisTriggerRegistrySetsTTL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	registry := NewTriggerRegistry(client)
	record := testRecord("ttl", domain.TriggerPreClass)
	if err := registry.SaveTrigger(ctx, record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ttl, err := client.TTL(ctx, triggerKey(record.Trigger.Key, domain.TriggerPreClass)).Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ttl < minRecordTTL {
		t.Errorf("expected ttl of at least %v, got %v", minRecordTTL, ttl)
	}
}

func TestRedisTriggerRegistryInvalidData(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	registry := NewTriggerRegistry(client)
	key := testOccurrence().Key()

	if err := client.Set(ctx, triggerKey(key, domain.TriggerPreClass), "not-json", 0).Err(); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}
	if _, err := registry.GetTrigger(ctx, key, domain.TriggerPreClass); !errors.Is(err, ErrInvalidTriggerData) {
		t.Errorf("expected ErrInvalidTriggerData, got %v", err)
	}

	if err := client.Set(ctx, chainKey(key), "{", 0).Err(); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}
	if _, err := registry.GetChain(ctx, key); !errors.Is(err, ErrInvalidChainData) {
		t.Errorf("expected ErrInvalidChainData, got %v", err)
	}
}

func TestTriggerKeyLayout(t *testing.T) {
	key := testOccurrence().Key()

	if got, want := triggerKey(key, domain.TriggerPreClass), "reminder:trigger:pre_class:7:3:2030-09-02"; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if got, want := chainKey(key), "reminder:chain:7:3:2030-09-02"; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

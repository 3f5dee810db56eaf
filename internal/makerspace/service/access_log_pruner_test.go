package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/service"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store/memory"
)

func TestAccessLogPruner_DisabledWhenRetentionZero(t *testing.T) {
	ms := memory.NewAccessLogStore()
	pruner := service.NewAccessLogPruner(ms, service.PrunerConfig{
		RetentionDays: 0,
		IntervalHours: 1,
	}, zerolog.Nop())

	pruner.Start(context.Background())
	pruner.Stop()

	if n := pruner.PruneOnce(context.Background()); n != 0 {
		t.Errorf("disabled pruner removed %d rows", n)
	}
}

func TestAccessLogPruner_PrunesOldRecords(t *testing.T) {
	ms := memory.NewAccessLogStore()
	ctx := context.Background()

	for sha, age := range map[string]int{"old": -40, "recent": -1} {
		if _, _, err := ms.RecordEvent(ctx, store.AccessLogRecord{
			LogSHA1: sha,
			EventAt: time.Now().UTC().AddDate(0, 0, age),
		}); err != nil {
			t.Fatalf("RecordEvent: %v", err)
		}
	}

	pruner := service.NewAccessLogPruner(ms, service.PrunerConfig{RetentionDays: 30}, zerolog.Nop())
	if n := pruner.PruneOnce(ctx); n != 1 {
		t.Errorf("expected 1 pruned, got %d", n)
	}

	events := ms.Events()
	if len(events) != 1 || events[0].LogSHA1 != "recent" {
		t.Errorf("unexpected survivors: %+v", events)
	}
}

func TestAccessLogPruner_StartRunsImmediately(t *testing.T) {
	ms := memory.NewAccessLogStore()
	ctx := context.Background()
	if _, _, err := ms.RecordEvent(ctx, store.AccessLogRecord{
		LogSHA1: "old",
		EventAt: time.Now().UTC().AddDate(0, 0, -90),
	}); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}

	pruner := service.NewAccessLogPruner(ms, service.PrunerConfig{RetentionDays: 30, IntervalHours: 24}, zerolog.Nop())
	pruner.Start(ctx)
	defer pruner.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for len(ms.Events()) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("startup prune did not run")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestAccessLogPruner_StopIsIdempotent(t *testing.T) {
	ms := memory.NewAccessLogStore()
	pruner := service.NewAccessLogPruner(ms, service.PrunerConfig{
		RetentionDays: 30,
		IntervalHours: 1,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	pruner.Start(ctx)

	cancel()
	pruner.Stop()
	pruner.Stop()
}

func TestAccessLogPruner_StopWithoutStart(t *testing.T) {
	pruner := service.NewAccessLogPruner(memory.NewAccessLogStore(), service.PrunerConfig{RetentionDays: 30}, zerolog.Nop())

	stopped := make(chan struct{})
	go func() {
		pruner.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked without a prior Start")
	}

	// The pruner is spent; a late Start must not launch the loop.
	pruner.Start(context.Background())
	pruner.Stop()
}

func TestAccessLogPruner_DoubleStart(t *testing.T) {
	for _, days := range []int{0, 30} {
		pruner := service.NewAccessLogPruner(memory.NewAccessLogStore(), service.PrunerConfig{
			RetentionDays: days,
			IntervalHours: 1,
		}, zerolog.Nop())

		pruner.Start(context.Background())
		pruner.Start(context.Background())
		pruner.Stop()
	}
}

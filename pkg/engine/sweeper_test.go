package engine

import (
	"context"
	"testing"
	"time"
)

func newTestSweeper(e *testEngine) *Sweeper {
	return NewSweeper(e.registry, e.giveaways, time.Minute, time.Minute)
}

func TestSweepSuspendsExpired(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")
	rec := e.deploy(t, "u")

	stale := *rec
	stale.ExpiresAt = time.Now().Add(-time.Hour)
	e.store.VPS.Set(rec.ContainerID, stale)

	sweeper := newTestSweeper(e)
	if n := sweeper.SweepExpired(context.Background()); n != 1 {
		t.Fatalf("SweepExpired() = %v, want 1", n)
	}

	got, _ := e.registry.Get(rec.ContainerID)
	if got.Active || !got.Suspended {
		t.Errorf("after sweep: active %v suspended %v, want false/true", got.Active, got.Suspended)
	}
	if !got.StopConfirmed {
		t.Error("StopConfirmed should be true when the stop succeeded")
	}
	if running, _ := e.fake.Running(context.Background(), rec.ContainerID); running {
		t.Error("container still running after sweep")
	}

	// A suspended VPS is excluded from later ticks
	if n := sweeper.SweepExpired(context.Background()); n != 0 {
		t.Errorf("second SweepExpired() = %v, want 0", n)
	}
}

func TestSweepSuspendsEvenWhenStopFails(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")
	rec := e.deploy(t, "u")

	stale := *rec
	stale.ExpiresAt = time.Now().Add(-time.Hour)
	e.store.VPS.Set(rec.ContainerID, stale)

	e.fake.FailStop = true
	sweeper := newTestSweeper(e)
	if n := sweeper.SweepExpired(context.Background()); n != 1 {
		t.Fatalf("SweepExpired() = %v, want 1", n)
	}

	// Suspension is lifecycle truth and sticks; StopConfirmed records that
	// the runtime did not obey, for operator reconciliation
	got, _ := e.registry.Get(rec.ContainerID)
	if !got.Suspended || got.Active {
		t.Errorf("after sweep with failed stop: active %v suspended %v", got.Active, got.Suspended)
	}
	if got.StopConfirmed {
		t.Error("StopConfirmed should be false when the stop failed")
	}

	// No retry on the next tick: the record is already suspended
	if n := sweeper.SweepExpired(context.Background()); n != 0 {
		t.Errorf("second SweepExpired() = %v, want 0", n)
	}
}

func TestSweepSkipsUnexpired(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")
	rec := e.deploy(t, "u")

	sweeper := newTestSweeper(e)
	if n := sweeper.SweepExpired(context.Background()); n != 0 {
		t.Errorf("SweepExpired() = %v, want 0 for a fresh VPS", n)
	}

	got, _ := e.registry.Get(rec.ContainerID)
	if !got.Active || got.Suspended {
		t.Error("fresh VPS must stay active after a sweep")
	}
}

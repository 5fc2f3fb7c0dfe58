package syncx

import (
	"context"
	"sync"
	"testing"
	"time"
)

type status struct {
	state  string
	cycles int
}

func TestGuardGetSet(t *testing.T) {
	g := NewGuard(status{state: "idle"})

	if got := g.Get().state; got != "idle" {
		t.Errorf("Get().state = %q, want idle", got)
	}

	g.Set(status{state: "capturing", cycles: 1})
	if got := g.Get(); got.state != "capturing" || got.cycles != 1 {
		t.Errorf("Get() after Set = %+v", got)
	}
}

func TestGuardSwap(t *testing.T) {
	g := NewGuard("sleeping")

	if old := g.Swap("notified"); old != "sleeping" {
		t.Errorf("Swap returned %q, want sleeping", old)
	}
	if got := g.Get(); got != "notified" {
		t.Errorf("Get() after Swap = %q, want notified", got)
	}
}

func TestGuardUpdateReturnsNewValue(t *testing.T) {
	g := NewGuard(status{state: "idle"})

	got := g.Update(func(s *status) {
		s.state = "deciding"
		s.cycles++
	})

	if got.state != "deciding" || got.cycles != 1 {
		t.Errorf("Update() = %+v", got)
	}
	if g.Get() != got {
		t.Error("Update result should match stored value")
	}
}

func TestGuardSnapshotIsCopy(t *testing.T) {
	g := NewGuard(status{state: "idle"})

	snap := g.Get()
	snap.state = "mutated"

	if g.Get().state != "idle" {
		t.Error("mutating a snapshot should not affect the guard")
	}
}

func TestGuardConcurrentUpdates(t *testing.T) {
	g := NewGuard(status{})
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			g.Update(func(s *status) { s.cycles++ })
		}()
		go func() {
			defer wg.Done()
			_ = g.Get()
		}()
	}
	wg.Wait()

	if got := g.Get().cycles; got != 100 {
		t.Errorf("cycles = %d, want 100", got)
	}
}

func TestSleepCompletes(t *testing.T) {
	start := time.Now()
	if err := Sleep(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatalf("Sleep() error = %v", err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Error("Sleep() returned early")
	}
}

func TestSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if err := Sleep(ctx, time.Hour); err != context.Canceled {
		t.Errorf("Sleep() error = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("cancelled Sleep() should return immediately")
	}
}

func TestSleepNonPositive(t *testing.T) {
	if err := Sleep(context.Background(), 0); err != nil {
		t.Errorf("Sleep(0) error = %v", err)
	}
	if err := Sleep(context.Background(), -time.Second); err != nil {
		t.Errorf("Sleep(-1s) error = %v", err)
	}
}

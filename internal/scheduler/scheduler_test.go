package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduler_DrainsImmediatelyAndOnTicks(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32

	s := New(20*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())

	go s.Run(ctx)

	// First drain happens immediately, before the first tick.
	deadline := time.After(10 * time.Millisecond)
	for runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("no immediate drain")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	// Then more drains arrive with the period.
	time.Sleep(100 * time.Millisecond)
	cancel()

	err := s.Wait(context.Background())
	if err != nil {
		t.Fatalf("wait: %v", err)
	}

	if got := runs.Load(); got < 3 {
		t.Fatalf("expected at least 3 drains, got %d", got)
	}
}

func TestScheduler_StopWaitsForInflightDrain(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})

	var finished atomic.Bool

	s := New(time.Hour, func(ctx context.Context) error {
		close(started)
		<-release
		finished.Store(true)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())

	go s.Run(ctx)

	<-started
	cancel()

	// Run must not have returned while the drain is still in flight.
	waitCtx, waitCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer waitCancel()

	err := s.Wait(waitCtx)
	if err == nil {
		t.Fatal("Wait returned while drain still in flight")
	}

	close(release)

	err = s.Wait(context.Background())
	if err != nil {
		t.Fatalf("wait after release: %v", err)
	}
	if !finished.Load() {
		t.Fatal("drain did not finish")
	}
}

func TestScheduler_RunsDoNotOverlap(t *testing.T) {
	t.Parallel()

	var (
		inFlight atomic.Int32
		overlap  atomic.Bool
	)

	s := New(5*time.Millisecond, func(ctx context.Context) error {
		if inFlight.Add(1) > 1 {
			overlap.Store(true)
		}
		defer inFlight.Add(-1)

		// Slower than the period.
		time.Sleep(15 * time.Millisecond)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())

	go s.Run(ctx)

	time.Sleep(100 * time.Millisecond)
	cancel()

	err := s.Wait(context.Background())
	if err != nil {
		t.Fatalf("wait: %v", err)
	}

	if overlap.Load() {
		t.Fatal("drain runs overlapped")
	}
}

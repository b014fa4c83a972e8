// Package scheduler runs a single recurring drain of planned transfers.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// DrainFunc processes all currently planned transfers.
type DrainFunc func(ctx context.Context) error

// Scheduler invokes a drain function at a fixed period on one goroutine,
// so runs never overlap. Exactly one instance should run per process.
type Scheduler struct {
	interval time.Duration
	drain    DrainFunc
	done     chan struct{}
}

func New(interval time.Duration, drain DrainFunc) *Scheduler {
	return &Scheduler{
		interval: interval,
		drain:    drain,
		done:     make(chan struct{}),
	}
}

// Run drains immediately, then on every tick, until ctx is cancelled.
// It blocks; callers run it on its own goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	defer close(s.done)

	slog.Info("transfer scheduler started", "interval", s.interval)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("transfer scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// Wait blocks until Run has returned, letting shutdown code confirm that
// no drain is still in flight.
func (s *Scheduler) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	err := s.drain(ctx)
	if err != nil {
		slog.Error("drain run failed", "error", err)
	}
}

package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avoronov/ledgerd/internal/repos/transfers"
)

// DrainPending executes every transfer currently in PLANNED status, oldest
// first. A failure on one transfer is logged and does not stop the rest of
// the batch. Safe to call at any time; the scheduler calls it periodically.
func (s *Service) DrainPending(ctx context.Context) error {
	runID := uuid.NewString()

	ids, err := s.transfers.ListIDsByStatus(ctx, transfers.StatusPlanned)
	if err != nil {
		return fmt.Errorf("list planned transfers: %w", err)
	}

	if len(ids) == 0 {
		return nil
	}

	slog.Info("draining planned transfers", "run_id", runID, "count", len(ids))

	for _, id := range ids {
		err = s.Execute(ctx, id)
		if err == nil {
			continue
		}

		// Another drain or an on-demand Execute got there first.
		if errors.Is(err, ErrAlreadyProcessed) {
			continue
		}

		slog.Error("could not execute transfer",
			"run_id", runID, "transfer_id", id, "error", err)
	}

	return nil
}

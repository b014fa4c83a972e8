package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/avoronov/ledgerd/internal/infra/pgutils"
	"github.com/avoronov/ledgerd/internal/repos/accounts"
	"github.com/avoronov/ledgerd/internal/repos/transfers"
)

// failMessageLimit bounds the diagnostic text persisted with a FAILED
// transfer.
const failMessageLimit = 4000

// Execute is phase two of the transfer protocol: it settles a single
// PLANNED transfer inside one database transaction.
//
// The flow locks the transfer row first, then both account rows in
// ascending id order regardless of which one is the source. A fixed lock
// order prevents two opposite-direction transfers from deadlocking on each
// other's accounts.
//
// If the reservation no longer covers the amount the transfer is marked
// FAILED with a diagnostic and the accounts are left untouched; the
// reservation is deliberately not released. Otherwise the amount moves from
// source to destination and the transfer becomes SUCCEEDED.
//
// A transfer that already left PLANNED reports ErrAlreadyProcessed without
// any state change, so repeated Execute calls are safe. On an unexpected
// error the transaction rolls back and a best-effort standalone update marks
// the transfer FAILED so it is not silently stuck in PLANNED forever.
func (s *Service) Execute(ctx context.Context, transferID int64) error {
	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		tr, err := s.transfers.GetForUpdate(tx, transferID)
		if err != nil {
			return fmt.Errorf("lock transfer: %w", err)
		}

		if tr.Status != transfers.StatusPlanned {
			return fmt.Errorf("%w: transfer %d is %s", ErrAlreadyProcessed, tr.ID, tr.Status)
		}

		src, dst, err := s.lockAccountPair(tx, tr.FromAccountID, tr.ToAccountID)
		if err != nil {
			return fmt.Errorf("lock accounts: %w", err)
		}

		newBlocked := src.Blocked.Sub(tr.Amount)
		newBalance := src.Balance.Sub(tr.Amount)

		if newBlocked.IsNegative() || newBalance.IsNegative() {
			msg := fmt.Sprintf("not enough money on account %d, current balance is %s", src.ID, src.Balance)

			err = s.transfers.SetStatus(tx, tr.ID, transfers.StatusFailed, msg)
			if err != nil {
				return fmt.Errorf("mark transfer failed: %w", err)
			}

			return nil
		}

		err = s.accounts.UpdateBalances(tx, src.ID, newBalance, newBlocked)
		if err != nil {
			return fmt.Errorf("debit source account: %w", err)
		}

		err = s.accounts.UpdateBalances(tx, dst.ID, dst.Balance.Add(tr.Amount), dst.Blocked)
		if err != nil {
			return fmt.Errorf("credit destination account: %w", err)
		}

		err = s.transfers.SetStatus(tx, tr.ID, transfers.StatusSucceeded, "")
		if err != nil {
			return fmt.Errorf("mark transfer succeeded: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyProcessed) || errors.Is(err, transfers.ErrTransferNotFound) {
			return err
		}

		s.markFailedAfterRollback(transferID, err)

		return fmt.Errorf("%w: %w", ErrSystemFailure, err)
	}

	return nil
}

// lockAccountPair acquires FOR UPDATE locks on both accounts in ascending
// id order and returns them in (source, destination) order.
func (s *Service) lockAccountPair(tx *sql.Tx, fromID, toID int64) (src, dst *accounts.Account, err error) {
	firstID, secondID := fromID, toID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := s.accounts.GetForUpdate(tx, firstID)
	if err != nil {
		return nil, nil, fmt.Errorf("lock account %d: %w", firstID, err)
	}

	second, err := s.accounts.GetForUpdate(tx, secondID)
	if err != nil {
		return nil, nil, fmt.Errorf("lock account %d: %w", secondID, err)
	}

	if first.ID == fromID {
		return first, second, nil
	}

	return second, first, nil
}

// markFailedAfterRollback records the failure reason on the transfer row
// outside the rolled-back transaction. The mark only applies while the
// transfer is still PLANNED: a concurrent execution may have settled it
// between the rollback and this write, and a terminal status must never be
// rewritten. Best effort: if the write fails the transfer stays PLANNED and
// the next drain retries it.
func (s *Service) markFailedAfterRollback(transferID int64, cause error) {
	msg := truncateFailMessage(fmt.Sprintf("transfer rolled back on unexpected error: %v", cause))

	marked, err := s.transfers.SetStatusIf(nil, transferID, transfers.StatusPlanned, transfers.StatusFailed, msg)
	if err != nil {
		slog.Error("could not mark transfer failed after rollback",
			"transfer_id", transferID, "error", err)

		return
	}

	if !marked {
		slog.Info("transfer already left PLANNED, failure mark skipped",
			"transfer_id", transferID)
	}
}

// truncateFailMessage caps msg at failMessageLimit bytes without splitting
// a rune; Postgres rejects text that is not valid UTF-8.
func truncateFailMessage(msg string) string {
	if len(msg) <= failMessageLimit {
		return msg
	}

	cut := failMessageLimit
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}

	return msg[:cut]
}

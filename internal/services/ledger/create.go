package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/avoronov/ledgerd/internal/infra/pgutils"
	"github.com/avoronov/ledgerd/internal/repos/accounts"
	"github.com/avoronov/ledgerd/internal/repos/transfers"
)

// CreateRequest is a validated-on-entry request to move money between two
// accounts.
type CreateRequest struct {
	FromAccountID int64
	ToAccountID   int64
	Amount        decimal.Decimal
}

func (req CreateRequest) validate() error {
	if req.FromAccountID <= 0 {
		return fmt.Errorf("%w: source account id is required", ErrMalformed)
	}

	if req.ToAccountID <= 0 {
		return fmt.Errorf("%w: destination account id is required", ErrMalformed)
	}

	if req.FromAccountID == req.ToAccountID {
		return fmt.Errorf("%w: source and destination accounts must differ", ErrMalformed)
	}

	if !req.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrMalformed)
	}

	return nil
}

// CreateTransfer is phase one of the transfer protocol: it reserves the
// amount on the source account and records a PLANNED transfer, all in one
// database transaction.
//
// The amount is added to the source account's blocked_amount but not yet
// subtracted from its balance; the money moves only when the scheduler
// executes the transfer. Reserving instead of moving keeps the ledger
// consistent if the process dies between the two phases.
//
// Returns ErrMalformed before touching the database, ErrInsufficientFunds
// or accounts.ErrAccountNotFound with all state intact, and ErrSystemFailure
// wrapping the cause on anything unexpected (the transaction is rolled back,
// so no partial reservation survives).
func (s *Service) CreateTransfer(ctx context.Context, req CreateRequest) (*transfers.Transfer, error) {
	err := req.validate()
	if err != nil {
		return nil, err
	}

	var created *transfers.Transfer

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		src, err := s.accounts.GetForUpdate(tx, req.FromAccountID)
		if err != nil {
			return fmt.Errorf("lock source account: %w", err)
		}

		if src.Available().LessThan(req.Amount) {
			return fmt.Errorf("%w: account %d has %s available, %s requested",
				ErrInsufficientFunds, src.ID, src.Available(), req.Amount)
		}

		err = s.accounts.UpdateBalances(tx, src.ID, src.Balance, src.Blocked.Add(req.Amount))
		if err != nil {
			return fmt.Errorf("reserve amount: %w", err)
		}

		created, err = s.transfers.Create(tx, req.FromAccountID, req.ToAccountID, req.Amount)
		if err != nil {
			return fmt.Errorf("create transfer: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) || errors.Is(err, accounts.ErrAccountNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", ErrSystemFailure, err)
	}

	return created, nil
}

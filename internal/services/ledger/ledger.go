// Package ledger implements the transfer engine: a two-phase money movement
// protocol over row-locked account and transfer rows.
//
// Phase one (CreateTransfer) reserves the amount on the source account by
// raising its blocked amount and records a PLANNED transfer. Phase two
// (Execute) settles a single PLANNED transfer: it moves the money and leaves
// the transfer in a terminal SUCCEEDED or FAILED status. DrainPending runs
// phase two for every PLANNED transfer and is what the scheduler calls.
//
// Every phase is one database transaction. Account and transfer rows are
// only ever mutated while the transaction holds their FOR UPDATE lock, which
// serializes concurrent operations touching the same rows.
package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/avoronov/ledgerd/internal/repos/accounts"
	"github.com/avoronov/ledgerd/internal/repos/transfers"
)

type Service struct {
	db        *sql.DB
	accounts  accounts.Store
	transfers transfers.Store
}

func New(db *sql.DB, acc accounts.Store, tr transfers.Store) *Service {
	return &Service{
		db:        db,
		accounts:  acc,
		transfers: tr,
	}
}

// GetTransfer returns the transfer with the given id.
func (s *Service) GetTransfer(ctx context.Context, id int64) (*transfers.Transfer, error) {
	tr, err := s.transfers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get transfer: %w", err)
	}

	return tr, nil
}

// ListTransfers returns all transfers with their current statuses.
func (s *Service) ListTransfers(ctx context.Context) ([]transfers.Transfer, error) {
	trs, err := s.transfers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}

	return trs, nil
}

// GetAccount returns the account with the given id.
func (s *Service) GetAccount(ctx context.Context, id int64) (*accounts.Account, error) {
	acc, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	return acc, nil
}

// ListAccounts returns all accounts.
func (s *Service) ListAccounts(ctx context.Context) ([]accounts.Account, error) {
	accs, err := s.accounts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return accs, nil
}

// CreateAccount registers a new account with the given starting balance.
func (s *Service) CreateAccount(ctx context.Context, ownerName string, balance decimal.Decimal) (*accounts.Account, error) {
	if ownerName == "" {
		return nil, fmt.Errorf("%w: owner name must not be empty", ErrMalformed)
	}

	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: starting balance must not be negative", ErrMalformed)
	}

	acc, err := s.accounts.Create(ctx, ownerName, balance)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	return acc, nil
}

// RenameAccount changes the account's owner name. Balance fields are
// maintained only by the engine and cannot be updated from outside.
func (s *Service) RenameAccount(ctx context.Context, id int64, ownerName string) error {
	if ownerName == "" {
		return fmt.Errorf("%w: owner name must not be empty", ErrMalformed)
	}

	err := s.accounts.UpdateOwnerName(ctx, id, ownerName)
	if err != nil {
		return fmt.Errorf("rename account: %w", err)
	}

	return nil
}

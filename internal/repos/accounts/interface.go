package accounts

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrAccountNotFound = errors.New("account not found")

// Account is a single ledger account row. Blocked is the portion of
// Balance reserved for planned transfers that have not settled yet;
// Balance - Blocked is what the owner can still spend.
type Account struct {
	ID        int64           `json:"id"`
	OwnerName string          `json:"ownerName"`
	Balance   decimal.Decimal `json:"balance"`
	Blocked   decimal.Decimal `json:"blockedAmount"`
}

// Available returns the spendable part of the balance.
func (a Account) Available() decimal.Decimal {
	return a.Balance.Sub(a.Blocked)
}

type Store interface {
	GetByID(ctx context.Context, id int64) (*Account, error)
	ListAll(ctx context.Context) ([]Account, error)
	Create(ctx context.Context, ownerName string, balance decimal.Decimal) (*Account, error)
	UpdateOwnerName(ctx context.Context, id int64, ownerName string) error

	// GetForUpdate reads the account row with SELECT ... FOR UPDATE.
	// The row lock is held until tx commits or rolls back.
	GetForUpdate(tx *sql.Tx, id int64) (*Account, error)

	// UpdateBalances overwrites balance and blocked_amount inside tx.
	// Callers must hold the row lock via GetForUpdate first.
	UpdateBalances(tx *sql.Tx, id int64, balance, blocked decimal.Decimal) error
}

package transfers

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrTransferNotFound = errors.New("transfer not found")

type Status string

const (
	StatusPlanned Status = "PLANNED"
	// StatusProcessing is part of the status domain but currently never
	// written: row locks already serialize concurrent execution attempts.
	StatusProcessing Status = "PROCESSING"
	StatusSucceeded  Status = "SUCCEEDED"
	StatusFailed     Status = "FAILED"
)

// Terminal reports whether no further status transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Transfer is a single money movement between two accounts. It references
// the accounts by id only; current account state is always re-read under
// lock at execution time.
type Transfer struct {
	ID            int64           `json:"id"`
	FromAccountID int64           `json:"fromAccountId"`
	ToAccountID   int64           `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Status        Status          `json:"status"`
	FailMessage   string          `json:"failMessage,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type Store interface {
	GetByID(ctx context.Context, id int64) (*Transfer, error)
	ListAll(ctx context.Context) ([]Transfer, error)

	// ListIDsByStatus returns ids of all transfers in the given status,
	// oldest first.
	ListIDsByStatus(ctx context.Context, status Status) ([]int64, error)

	// Create inserts a new PLANNED transfer inside tx and returns the row
	// with its generated id and timestamps.
	Create(tx *sql.Tx, fromAccountID, toAccountID int64, amount decimal.Decimal) (*Transfer, error)

	// GetForUpdate reads the transfer row with SELECT ... FOR UPDATE.
	GetForUpdate(tx *sql.Tx, id int64) (*Transfer, error)

	// SetStatus updates status, fail message and updated_at. A nil tx runs
	// the update as a standalone statement on the pool.
	SetStatus(tx *sql.Tx, id int64, status Status, failMessage string) error

	// SetStatusIf is SetStatus guarded by the current status: the row is
	// updated only while it still holds from, and the return reports
	// whether it was. The engine's best-effort FAILED mark after a
	// rolled-back execution uses this so a transfer that reached a
	// terminal status in the meantime is never rewritten.
	SetStatusIf(tx *sql.Tx, id int64, from, to Status, failMessage string) (bool, error)
}

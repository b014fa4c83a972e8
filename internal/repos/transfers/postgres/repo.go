package transfers

import (
	"database/sql"

	"github.com/avoronov/ledgerd/internal/repos/transfers"
)

var _ transfers.Store = (*transfersRepo)(nil)

type transfersRepo struct{ db *sql.DB }

func New(db *sql.DB) *transfersRepo {
	return &transfersRepo{db: db}
}

const transferColumns = `id, from_account_id, to_account_id, amount, status, fail_message, created_at, updated_at`

func scanTransfer(row interface{ Scan(dest ...any) error }) (*transfers.Transfer, error) {
	var tr transfers.Transfer

	err := row.Scan(
		&tr.ID,
		&tr.FromAccountID,
		&tr.ToAccountID,
		&tr.Amount,
		&tr.Status,
		&tr.FailMessage,
		&tr.CreatedAt,
		&tr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &tr, nil
}

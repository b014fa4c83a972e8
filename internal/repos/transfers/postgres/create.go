package transfers

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/avoronov/ledgerd/internal/repos/transfers"
)

func (r *transfersRepo) Create(tx *sql.Tx, fromAccountID, toAccountID int64, amount decimal.Decimal) (*transfers.Transfer, error) {
	row := tx.QueryRow(`
		INSERT INTO transfers (from_account_id, to_account_id, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+transferColumns+`
	`, fromAccountID, toAccountID, amount, transfers.StatusPlanned)

	tr, err := scanTransfer(row)
	if err != nil {
		return nil, fmt.Errorf("insert transfer: %w", err)
	}

	return tr, nil
}

package accounts

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/avoronov/ledgerd/internal/repos/accounts"
)

func (r *accountsRepo) UpdateBalances(tx *sql.Tx, id int64, balance, blocked decimal.Decimal) error {
	res, err := tx.Exec(`
		UPDATE accounts
		SET balance = $2, blocked_amount = $3
		WHERE id = $1
	`, id, balance, blocked)
	if err != nil {
		return fmt.Errorf("update balances: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return accounts.ErrAccountNotFound
	}

	return nil
}

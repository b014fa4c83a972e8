package accounts

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronov/ledgerd/internal/repos/accounts"
)

func (r *accountsRepo) GetForUpdate(tx *sql.Tx, id int64) (*accounts.Account, error) {
	var acc accounts.Account

	err := tx.QueryRow(`
		SELECT id, owner_name, balance, blocked_amount
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&acc.ID, &acc.OwnerName, &acc.Balance, &acc.Blocked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accounts.ErrAccountNotFound
		}

		return nil, fmt.Errorf("lock/get account: %w", err)
	}

	return &acc, nil
}

package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronov/ledgerd/internal/repos/accounts"
)

func (r *accountsRepo) GetByID(ctx context.Context, id int64) (*accounts.Account, error) {
	var acc accounts.Account

	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner_name, balance, blocked_amount
		FROM accounts
		WHERE id = $1
	`, id).Scan(&acc.ID, &acc.OwnerName, &acc.Balance, &acc.Blocked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accounts.ErrAccountNotFound
		}

		return nil, fmt.Errorf("get account: %w", err)
	}

	return &acc, nil
}

func (r *accountsRepo) ListAll(ctx context.Context) ([]accounts.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_name, balance, blocked_amount
		FROM accounts
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []accounts.Account

	for rows.Next() {
		var acc accounts.Account

		err = rows.Scan(&acc.ID, &acc.OwnerName, &acc.Balance, &acc.Blocked)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}

		out = append(out, acc)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return out, nil
}

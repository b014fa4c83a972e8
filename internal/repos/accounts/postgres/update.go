package accounts

import (
	"context"
	"fmt"

	"github.com/avoronov/ledgerd/internal/repos/accounts"
)

func (r *accountsRepo) UpdateOwnerName(ctx context.Context, id int64, ownerName string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts
		SET owner_name = $2
		WHERE id = $1
	`, id, ownerName)
	if err != nil {
		return fmt.Errorf("update owner name: %w", err)
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

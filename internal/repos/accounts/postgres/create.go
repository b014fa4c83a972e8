package accounts

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/avoronov/ledgerd/internal/repos/accounts"
)

func (r *accountsRepo) Create(ctx context.Context, ownerName string, balance decimal.Decimal) (*accounts.Account, error) {
	acc := accounts.Account{
		OwnerName: ownerName,
		Balance:   balance,
		Blocked:   decimal.Zero,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO accounts (owner_name, balance, blocked_amount)
		VALUES ($1, $2, 0)
		RETURNING id
	`, ownerName, balance).Scan(&acc.ID)
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}

	return &acc, nil
}

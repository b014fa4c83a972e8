package transfers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronov/ledgerd/internal/repos/transfers"
)

func (r *transfersRepo) GetByID(ctx context.Context, id int64) (*transfers.Transfer, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+transferColumns+`
		FROM transfers
		WHERE id = $1
	`, id)

	tr, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transfers.ErrTransferNotFound
		}

		return nil, fmt.Errorf("get transfer: %w", err)
	}

	return tr, nil
}

func (r *transfersRepo) ListAll(ctx context.Context) ([]transfers.Transfer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+transferColumns+`
		FROM transfers
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var out []transfers.Transfer

	for rows.Next() {
		tr, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}

		out = append(out, *tr)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate transfers: %w", err)
	}

	return out, nil
}

func (r *transfersRepo) ListIDsByStatus(ctx context.Context, status transfers.Status) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id
		FROM transfers
		WHERE status = $1
		ORDER BY id
	`, status)
	if err != nil {
		return nil, fmt.Errorf("list transfer ids by status: %w", err)
	}
	defer rows.Close()

	var ids []int64

	for rows.Next() {
		var id int64

		err = rows.Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("scan transfer id: %w", err)
		}

		ids = append(ids, id)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate transfer ids: %w", err)
	}

	return ids, nil
}

package transfers

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronov/ledgerd/internal/repos/transfers"
)

func (r *transfersRepo) GetForUpdate(tx *sql.Tx, id int64) (*transfers.Transfer, error) {
	row := tx.QueryRow(`
		SELECT `+transferColumns+`
		FROM transfers
		WHERE id = $1
		FOR UPDATE
	`, id)

	tr, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transfers.ErrTransferNotFound
		}

		return nil, fmt.Errorf("lock/get transfer: %w", err)
	}

	return tr, nil
}

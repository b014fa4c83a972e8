package transfers

import (
	"database/sql"
	"fmt"

	"github.com/avoronov/ledgerd/internal/repos/transfers"
)

// SetStatus updates status, fail_message and updated_at. With a nil tx the
// update runs as its own statement on the pool.
func (r *transfersRepo) SetStatus(tx *sql.Tx, id int64, status transfers.Status, failMessage string) error {
	const stmt = `
		UPDATE transfers
		SET status = $2, fail_message = $3, updated_at = now()
		WHERE id = $1
	`

	res, err := r.exec(tx, stmt, id, status, failMessage)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return transfers.ErrTransferNotFound
	}

	return nil
}

// SetStatusIf updates the row only while it still holds the from status.
// Zero affected rows is not an error here: the transfer either does not
// exist or has already moved on, and both read as "no transition applied".
func (r *transfersRepo) SetStatusIf(tx *sql.Tx, id int64, from, to transfers.Status, failMessage string) (bool, error) {
	const stmt = `
		UPDATE transfers
		SET status = $3, fail_message = $4, updated_at = now()
		WHERE id = $1 AND status = $2
	`

	res, err := r.exec(tx, stmt, id, from, to, failMessage)
	if err != nil {
		return false, fmt.Errorf("update transfer status conditionally: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *transfersRepo) exec(tx *sql.Tx, stmt string, args ...any) (sql.Result, error) {
	if tx != nil {
		return tx.Exec(stmt, args...)
	}

	return r.db.Exec(stmt, args...)
}

package accounts

import (
	"database/sql"

	"github.com/avoronov/ledgerd/internal/repos/accounts"
)

var _ accounts.Store = (*accountsRepo)(nil)

type accountsRepo struct{ db *sql.DB }

func New(db *sql.DB) *accountsRepo {
	return &accountsRepo{db: db}
}

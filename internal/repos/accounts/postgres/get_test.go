package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avoronov/ledgerd/internal/infra/pgtestutil"
	"github.com/avoronov/ledgerd/internal/repos/accounts"
)

func seedAccount(t *testing.T, db *sql.DB, id int64, owner string, balance, blocked int64) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO accounts (id, owner_name, balance, blocked_amount)
		VALUES ($1, $2, $3, $4)
	`, id, owner, balance, blocked)
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

func TestAccounts_GetByID_Table(t *testing.T) {
	t.Parallel()

	type tc struct {
		name        string
		seed        func(db *sql.DB, t *testing.T)
		id          int64
		wantOwner   string
		wantBalance int64
		wantBlocked int64
		wantErr     error
	}

	tests := []tc{
		{
			name: "account_exists",
			seed: func(db *sql.DB, t *testing.T) {
				seedAccount(t, db, 1, "alice", 1000, 250)
			},
			id:          1,
			wantOwner:   "alice",
			wantBalance: 1000,
			wantBlocked: 250,
		},
		{
			name: "account_zero_balance",
			seed: func(db *sql.DB, t *testing.T) {
				seedAccount(t, db, 2, "bob", 0, 0)
			},
			id:          2,
			wantOwner:   "bob",
			wantBalance: 0,
			wantBlocked: 0,
		},
		{
			name:    "account_not_found",
			seed:    func(_ *sql.DB, _ *testing.T) {},
			id:      999,
			wantErr: accounts.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			tt.seed(db, t)

			repo := New(db)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			acc, err := repo.GetByID(ctx, tt.id)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if acc.OwnerName != tt.wantOwner {
				t.Fatalf("owner mismatch: want %s, got %s", tt.wantOwner, acc.OwnerName)
			}
			if !acc.Balance.Equal(decimal.NewFromInt(tt.wantBalance)) {
				t.Fatalf("balance mismatch: want %d, got %s", tt.wantBalance, acc.Balance)
			}
			if !acc.Blocked.Equal(decimal.NewFromInt(tt.wantBlocked)) {
				t.Fatalf("blocked mismatch: want %d, got %s", tt.wantBlocked, acc.Blocked)
			}
		})
	}
}

func TestAccounts_ListAll(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedAccount(t, db, 1, "alice", 1000, 0)
	seedAccount(t, db, 2, "bob", 500, 100)

	repo := New(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	accs, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}

	if len(accs) != 2 {
		t.Fatalf("want 2 accounts, got %d", len(accs))
	}
	if accs[0].ID != 1 || accs[1].ID != 2 {
		t.Fatalf("expected ascending id order, got %d, %d", accs[0].ID, accs[1].ID)
	}
}

func TestAccounts_Create(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	acc, err := repo.Create(ctx, "carol", decimal.NewFromInt(300))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if acc.ID == 0 {
		t.Fatal("expected generated id")
	}
	if !acc.Blocked.IsZero() {
		t.Fatalf("new account should have zero blocked amount, got %s", acc.Blocked)
	}

	got, err := repo.GetByID(ctx, acc.ID)
	if err != nil {
		t.Fatalf("get created: %v", err)
	}
	if !got.Balance.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("balance mismatch: got %s", got.Balance)
	}
}

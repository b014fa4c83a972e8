package ledger

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/ledgerd/internal/repos/transfers"
)

// unreachableDSN parses fine but no server listens there, so the first
// statement on the pool fails. connect_timeout keeps the failure quick.
const unreachableDSN = "postgres://u:p@127.0.0.1:1/ledger?sslmode=disable&connect_timeout=1"

var _ transfers.Store = (*stubTransferStore)(nil)

// stubTransferStore keeps transfers in memory and mirrors the repo's status
// transition semantics, including the guarded form.
type stubTransferStore struct {
	mu   sync.Mutex
	rows map[int64]*transfers.Transfer
}

func newStubTransferStore(rows ...*transfers.Transfer) *stubTransferStore {
	s := &stubTransferStore{rows: make(map[int64]*transfers.Transfer)}
	for _, tr := range rows {
		cp := *tr
		s.rows[tr.ID] = &cp
	}

	return s
}

func (s *stubTransferStore) get(id int64) transfers.Transfer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.rows[id]
}

func (s *stubTransferStore) GetByID(_ context.Context, id int64) (*transfers.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, ok := s.rows[id]
	if !ok {
		return nil, transfers.ErrTransferNotFound
	}

	cp := *tr

	return &cp, nil
}

func (s *stubTransferStore) ListAll(_ context.Context) ([]transfers.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]transfers.Transfer, 0, len(s.rows))
	for _, tr := range s.rows {
		out = append(out, *tr)
	}

	return out, nil
}

func (s *stubTransferStore) ListIDsByStatus(_ context.Context, status transfers.Status) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []int64

	for id, tr := range s.rows {
		if tr.Status == status {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func (s *stubTransferStore) Create(_ *sql.Tx, fromAccountID, toAccountID int64, amount decimal.Decimal) (*transfers.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr := &transfers.Transfer{
		ID:            int64(len(s.rows) + 1),
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
		Status:        transfers.StatusPlanned,
	}
	s.rows[tr.ID] = tr

	cp := *tr

	return &cp, nil
}

func (s *stubTransferStore) GetForUpdate(_ *sql.Tx, id int64) (*transfers.Transfer, error) {
	return s.GetByID(context.Background(), id)
}

func (s *stubTransferStore) SetStatus(_ *sql.Tx, id int64, status transfers.Status, failMessage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, ok := s.rows[id]
	if !ok {
		return transfers.ErrTransferNotFound
	}

	tr.Status = status
	tr.FailMessage = failMessage

	return nil
}

func (s *stubTransferStore) SetStatusIf(_ *sql.Tx, id int64, from, to transfers.Status, failMessage string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, ok := s.rows[id]
	if !ok || tr.Status != from {
		return false, nil
	}

	tr.Status = to
	tr.FailMessage = failMessage

	return true, nil
}

// A transfer that settled between the failed execution's rollback and the
// out-of-band failure mark must keep its terminal status.
func TestExecute_FailureMarkKeepsSettledStatus(t *testing.T) {
	t.Parallel()

	store := newStubTransferStore(&transfers.Transfer{
		ID:            1,
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        decimal.NewFromInt(10),
		Status:        transfers.StatusSucceeded,
	})

	db, err := sql.Open("pgx", unreachableDSN)
	require.NoError(t, err)
	defer db.Close()

	svc := New(db, nil, store)

	err = svc.Execute(context.Background(), 1)
	require.ErrorIs(t, err, ErrSystemFailure)

	got := store.get(1)
	assert.Equal(t, transfers.StatusSucceeded, got.Status)
	assert.Empty(t, got.FailMessage)
}

// While the transfer is still PLANNED the failure mark does apply.
func TestExecute_FailureMarksPlannedTransfer(t *testing.T) {
	t.Parallel()

	store := newStubTransferStore(&transfers.Transfer{
		ID:            1,
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        decimal.NewFromInt(10),
		Status:        transfers.StatusPlanned,
	})

	db, err := sql.Open("pgx", unreachableDSN)
	require.NoError(t, err)
	defer db.Close()

	svc := New(db, nil, store)

	err = svc.Execute(context.Background(), 1)
	require.ErrorIs(t, err, ErrSystemFailure)

	got := store.get(1)
	assert.Equal(t, transfers.StatusFailed, got.Status)
	assert.Contains(t, got.FailMessage, "unexpected error")
}

func TestTruncateFailMessage(t *testing.T) {
	t.Parallel()

	short := "not enough money"
	assert.Equal(t, short, truncateFailMessage(short))

	// A two-byte rune straddling the limit must not be split.
	msg := strings.Repeat("a", failMessageLimit-1) + "éé"
	got := truncateFailMessage(msg)

	assert.LessOrEqual(t, len(got), failMessageLimit)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", failMessageLimit-1), got)
}

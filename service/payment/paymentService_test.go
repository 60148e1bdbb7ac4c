package paymentsvc_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Madruu/astrocode-project/model"
	paymentsvc "github.com/Madruu/astrocode-project/service/payment"
	"github.com/Madruu/astrocode-project/util/apperr"
	"github.com/Madruu/astrocode-project/util/money"
)

type txMock struct {
	userFn    func(ctx context.Context, userID int64) (*model.User, error)
	balanceFn func(ctx context.Context, userID int64, newBalance money.Amount) error
	insertFn  func(ctx context.Context, e *model.Payment) error
}

func (m *txMock) UserForUpdate(ctx context.Context, userID int64) (*model.User, error) {
	return m.userFn(ctx, userID)
}
func (m *txMock) UpdateUserBalance(ctx context.Context, userID int64, newBalance money.Amount) error {
	if m.balanceFn == nil {
		return nil
	}
	return m.balanceFn(ctx, userID, newBalance)
}
func (m *txMock) InsertEntry(ctx context.Context, e *model.Payment) error {
	if m.insertFn == nil {
		e.ID = 1
		return nil
	}
	return m.insertFn(ctx, e)
}

type storeMock struct {
	tx     *txMock
	listFn func(ctx context.Context, userID int64) ([]model.Payment, error)
}

func (m *storeMock) InTx(ctx context.Context, fn func(paymentsvc.Tx) error) error {
	return fn(m.tx)
}
func (m *storeMock) ListByUser(ctx context.Context, userID int64) ([]model.Payment, error) {
	return m.listFn(ctx, userID)
}

type usersMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *usersMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	return m.byIDFn(ctx, id)
}

func TestDeposit_Success(t *testing.T) {
	var newBalance money.Amount
	var entry *model.Payment
	tx := &txMock{
		userFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: 1, Balance: 5000}, nil
		},
		balanceFn: func(ctx context.Context, id int64, b money.Amount) error {
			newBalance = b
			return nil
		},
		insertFn: func(ctx context.Context, e *model.Payment) error {
			entry = e
			return nil
		},
	}
	svc := paymentsvc.New(&storeMock{tx: tx}, &usersMock{})

	p, err := svc.Deposit(context.Background(), 1, 10000, "BRL")
	require.NoError(t, err)
	require.Equal(t, money.Amount(15000), newBalance)
	require.Equal(t, model.LedgerDeposit, p.Type)
	require.Equal(t, model.LedgerCompleted, p.Status)
	require.Same(t, entry, p)
}

func TestDeposit_RejectsNonPositive(t *testing.T) {
	svc := paymentsvc.New(&storeMock{tx: &txMock{}}, &usersMock{})

	_, err := svc.Deposit(context.Background(), 1, 0, "BRL")
	require.Equal(t, paymentsvc.ErrInvalidAmount, apperr.CodeOf(err))

	_, err = svc.Deposit(context.Background(), 1, -100, "BRL")
	require.Equal(t, paymentsvc.ErrInvalidAmount, apperr.CodeOf(err))
}

func TestDeposit_RejectsForeignCurrency(t *testing.T) {
	svc := paymentsvc.New(&storeMock{tx: &txMock{}}, &usersMock{})

	_, err := svc.Deposit(context.Background(), 1, 1000, "USD")
	require.Equal(t, paymentsvc.ErrInvalidAmount, apperr.CodeOf(err))
}

func TestDeposit_DefaultsCurrency(t *testing.T) {
	tx := &txMock{
		userFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: 1}, nil
		},
	}
	svc := paymentsvc.New(&storeMock{tx: tx}, &usersMock{})

	p, err := svc.Deposit(context.Background(), 1, 1000, "")
	require.NoError(t, err)
	require.Equal(t, "BRL", p.Currency)
}

// Balance 999,980.00 + 50.00 crosses the 1,000,000.00 cap and is rejected;
// topping up to exactly the cap succeeds.
func TestDeposit_BalanceCap(t *testing.T) {
	balance := money.MaxBalance - 2000 // 999,980.00
	var newBalance money.Amount
	tx := &txMock{
		userFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: 1, Balance: balance}, nil
		},
		balanceFn: func(ctx context.Context, id int64, b money.Amount) error {
			newBalance = b
			return nil
		},
	}
	svc := paymentsvc.New(&storeMock{tx: tx}, &usersMock{})

	_, err := svc.Deposit(context.Background(), 1, 5000, "BRL")
	require.Equal(t, paymentsvc.ErrBalanceCap, apperr.CodeOf(err))

	_, err = svc.Deposit(context.Background(), 1, 2000, "BRL")
	require.NoError(t, err)
	require.Equal(t, money.MaxBalance, newBalance)
}

func TestDeposit_UnknownUser(t *testing.T) {
	tx := &txMock{
		userFn: func(ctx context.Context, id int64) (*model.User, error) { return nil, sql.ErrNoRows },
	}
	svc := paymentsvc.New(&storeMock{tx: tx}, &usersMock{})

	_, err := svc.Deposit(context.Background(), 99, 1000, "BRL")
	require.Equal(t, paymentsvc.ErrNotFound, apperr.CodeOf(err))
}

func TestSummarize(t *testing.T) {
	entries := []model.Payment{
		{Type: model.LedgerDeposit, Status: model.LedgerCompleted, Amount: 10000},
		{Type: model.LedgerDeposit, Status: model.LedgerCompleted, Amount: 5000},
		{Type: model.LedgerCharge, Status: model.LedgerCompleted, Amount: 8000},
		{Type: model.LedgerRefund, Status: model.LedgerCompleted, Amount: 8000},
		{Type: model.LedgerDeposit, Status: model.LedgerPending, Amount: 99999},
	}

	s := paymentsvc.Summarize(15000, "BRL", entries)
	require.Equal(t, money.Amount(15000), s.Balance)
	require.Equal(t, money.Amount(15000), s.TotalDeposits)
	require.Equal(t, money.Amount(8000), s.TotalCharges)
	require.Equal(t, money.Amount(8000), s.TotalRefunds)
	require.Equal(t, 1, s.PendingTransactions)

	// Pure: same inputs give the same summary.
	require.Equal(t, s, paymentsvc.Summarize(15000, "BRL", entries))
}

func TestWallet(t *testing.T) {
	store := &storeMock{
		tx: &txMock{},
		listFn: func(ctx context.Context, userID int64) ([]model.Payment, error) {
			return []model.Payment{
				{Type: model.LedgerDeposit, Status: model.LedgerCompleted, Amount: 10000},
			}, nil
		},
	}
	users := &usersMock{byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
		return &model.User{ID: id, Balance: 10000}, nil
	}}
	svc := paymentsvc.New(store, users)

	s, err := svc.Wallet(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, money.Amount(10000), s.Balance)
	require.Equal(t, money.Amount(10000), s.TotalDeposits)
	require.Equal(t, "BRL", s.Currency)
}

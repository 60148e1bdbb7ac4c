package paymentsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Madruu/astrocode-project/model"
	paymentrepo "github.com/Madruu/astrocode-project/repository/payment"
	"github.com/Madruu/astrocode-project/util/apperr"
	"github.com/Madruu/astrocode-project/util/money"
)

const (
	ErrInvalidAmount apperr.Code = "INVALID_AMOUNT"
	ErrNotFound      apperr.Code = "NOT_FOUND"
	ErrBalanceCap    apperr.Code = "BALANCE_CAP_EXCEEDED"
)

const defaultCurrency = "BRL"

// Summarize derives the wallet view from the stored balance and the ledger.
// Totals sum COMPLETED entries by type; the balance is the denormalized user
// balance, not a recomputation. Pure: same inputs, same output.
func Summarize(balance money.Amount, currency string, entries []model.Payment) model.WalletSummary {
	s := model.WalletSummary{Balance: balance, Currency: currency}
	for _, e := range entries {
		if e.Status == model.LedgerPending {
			s.PendingTransactions++
			continue
		}
		if e.Status != model.LedgerCompleted {
			continue
		}
		switch e.Type {
		case model.LedgerDeposit:
			s.TotalDeposits += e.Amount
		case model.LedgerCharge:
			s.TotalCharges += e.Amount
		case model.LedgerRefund:
			s.TotalRefunds += e.Amount
		}
	}
	return s
}

type Tx = paymentrepo.Tx

type Store interface {
	InTx(ctx context.Context, fn func(Tx) error) error
	ListByUser(ctx context.Context, userID int64) ([]model.Payment, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Service interface {
	// Deposit credits the wallet and appends a COMPLETED DEPOSIT entry in
	// one transaction.
	Deposit(ctx context.Context, userID int64, amount money.Amount, currency string) (*model.Payment, error)

	Wallet(ctx context.Context, userID int64) (*model.WalletSummary, error)
	Ledger(ctx context.Context, userID int64) ([]model.Payment, error)
}

type service struct {
	store Store
	ur    Users
}

func New(store Store, ur Users) Service { return &service{store: store, ur: ur} }

func (s *service) Deposit(ctx context.Context, userID int64, amount money.Amount, currency string) (*model.Payment, error) {
	if amount <= 0 {
		return nil, apperr.New(ErrInvalidAmount)
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = defaultCurrency
	}
	if currency != defaultCurrency {
		return nil, apperr.New(ErrInvalidAmount)
	}

	var out *model.Payment
	err := s.store.InTx(ctx, func(tx Tx) error {
		user, err := tx.UserForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.New(ErrNotFound)
			}
			return err
		}

		// Landing exactly on the cap is allowed; crossing it is not.
		newBalance := user.Balance + amount
		if newBalance > money.MaxBalance {
			return apperr.New(ErrBalanceCap)
		}
		if err := tx.UpdateUserBalance(ctx, userID, newBalance); err != nil {
			return err
		}

		entry := &model.Payment{
			UserID:      userID,
			Amount:      amount,
			Currency:    currency,
			Type:        model.LedgerDeposit,
			Status:      model.LedgerCompleted,
			Description: "Wallet deposit",
		}
		if err := tx.InsertEntry(ctx, entry); err != nil {
			return err
		}
		out = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Wallet(ctx context.Context, userID int64) (*model.WalletSummary, error) {
	user, err := s.ur.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(ErrNotFound)
		}
		return nil, err
	}
	entries, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := Summarize(user.Balance, defaultCurrency, entries)
	return &summary, nil
}

func (s *service) Ledger(ctx context.Context, userID int64) ([]model.Payment, error) {
	return s.store.ListByUser(ctx, userID)
}

// model/payment.go
package model

import (
	"time"

	"github.com/Madruu/astrocode-project/util/money"
)

type LedgerType string

const (
	LedgerDeposit LedgerType = "DEPOSIT"
	LedgerCharge  LedgerType = "BOOKING_CHARGE"
	LedgerRefund  LedgerType = "BOOKING_REFUND"
)

type LedgerStatus string

const (
	LedgerCompleted LedgerStatus = "COMPLETED"
	LedgerPending   LedgerStatus = "PENDING"
)

// Payment is one append-only wallet ledger entry. Amount is always positive;
// the direction is carried by Type.
type Payment struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	Amount      money.Amount `json:"amount"`
	Currency    string       `json:"currency"`
	Type        LedgerType   `json:"type"`
	Status      LedgerStatus `json:"status"`
	Reference   string       `json:"reference,omitempty"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// WalletSummary is the derived view of a user's wallet activity. Balance is
// the stored user balance, not recomputed from entries.
type WalletSummary struct {
	Balance             money.Amount `json:"balance"`
	Currency            string       `json:"currency"`
	TotalDeposits       money.Amount `json:"total_deposits"`
	TotalCharges        money.Amount `json:"total_charges"`
	TotalRefunds        money.Amount `json:"total_refunds"`
	PendingTransactions int          `json:"pending_transactions"`
}

package gatewayrepo

import (
	"context"
	"errors"

	"github.com/Madruu/astrocode-project/util/money"
)

// ErrDeclined is returned when the gateway rejects the charge. Callers must
// not retry; the user has to pick another payment method.
var ErrDeclined = errors.New("charge declined by gateway")

type ChargeReq struct {
	ExternalID  string
	Amount      money.Amount
	Currency    string
	Description string
}

type ChargeResp struct {
	TransactionID string
	ProcessedAt   string
}

// Repo authorizes direct-card charges for bookings that bypass the wallet.
type Repo interface {
	Authorize(ctx context.Context, req ChargeReq) (*ChargeResp, error)
}

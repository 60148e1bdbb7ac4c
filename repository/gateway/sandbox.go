package gatewayrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type sandbox struct{}

// NewSandbox approves every charge with a generated transaction id. It is
// selected only by GATEWAY_MODE=sandbox at boot, never as a fallback for a
// failing live gateway.
func NewSandbox() Repo { return sandbox{} }

func (sandbox) Authorize(ctx context.Context, req ChargeReq) (*ChargeResp, error) {
	return &ChargeResp{
		TransactionID: "txn_" + uuid.NewString(),
		ProcessedAt:   time.Now().UTC().Format(time.RFC3339),
	}, nil
}

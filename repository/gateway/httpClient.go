package gatewayrepo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Madruu/astrocode-project/util/httpx"
)

type httpRepo struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTP talks to a real card acquirer.
func NewHTTP(baseURL, apiKey string) Repo {
	return &httpRepo{baseURL: baseURL, apiKey: apiKey, client: httpx.Client()}
}

func (r *httpRepo) Authorize(ctx context.Context, req ChargeReq) (*ChargeResp, error) {
	body := map[string]any{
		"external_id": req.ExternalID,
		"amount":      req.Amount,
		"currency":    req.Currency,
		"description": req.Description,
	}
	b, _ := json.Marshal(body)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/charges", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(r.apiKey, "")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusUnprocessableEntity {
		return nil, ErrDeclined
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway authorize failed: %s", resp.Status)
	}

	var out struct {
		TransactionID string `json:"transaction_id"`
		Status        string `json:"status"`
		ProcessedAt   string `json:"processed_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.TransactionID == "" {
		return nil, errors.New("gateway: empty transaction id")
	}
	if out.Status == "declined" {
		return nil, ErrDeclined
	}
	return &ChargeResp{TransactionID: out.TransactionID, ProcessedAt: out.ProcessedAt}, nil
}

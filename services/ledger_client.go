package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"musemint-backend/models"
)

// LedgerClient appends rows to the external sales-ledger webhook (a
// spreadsheet relay). Callers treat failures as best-effort.
type LedgerClient interface {
	AppendRow(ctx context.Context, row models.LedgerRow) error
}

type ledgerClientImpl struct {
	webhookURL string
	httpClient *http.Client
}

func NewLedgerClient(webhookURL string) LedgerClient {
	return &ledgerClientImpl{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *ledgerClientImpl) AppendRow(ctx context.Context, row models.LedgerRow) error {
	if c.webhookURL == "" {
		return fmt.Errorf("ledger webhook URL not configured")
	}

	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ledger request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ledger error %s: %s", resp.Status, string(respBody))
	}
	return nil
}

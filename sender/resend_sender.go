package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const resendAPIURL = "https://api.resend.com/emails"

// ResendSender sends transactional email through the Resend HTTP API.
type ResendSender struct {
	apiKey     string
	from       string
	apiURL     string
	httpClient *http.Client
}

func NewResendSender(apiKey, from string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Resend API key not set")
	}
	if from == "" {
		return nil, fmt.Errorf("email from-address not set")
	}
	return &ResendSender{
		apiKey:     apiKey,
		from:       from,
		apiURL:     resendAPIURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// NewResendSenderWithURL is used by tests to point at a local server.
func NewResendSenderWithURL(apiKey, from, apiURL string) *ResendSender {
	return &ResendSender{
		apiKey:     apiKey,
		from:       from,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *ResendSender) SendEmail(ctx context.Context, to, subject, body string) (SendResult, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"from":    s.from,
		"to":      []string{to},
		"subject": subject,
		"html":    body,
	})
	if err != nil {
		return SendResult{}, fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return SendResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return SendResult{}, fmt.Errorf("resend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return SendResult{}, fmt.Errorf("resend error %s: %s", resp.Status, string(respBody))
	}

	var res struct {
		ID string `json:"id"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&res)

	return SendResult{
		MessageID: res.ID,
		SentAt:    time.Now(),
	}, nil
}

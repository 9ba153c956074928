package sender

import (
	"context"
	"fmt"
	"time"
)

type SendResult struct {
	MessageID string
	SentAt    time.Time
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (SendResult, error)
}

// DisabledSender stands in when no email provider is configured; every
// send fails with the reason so callers log it instead of crashing.
type DisabledSender struct {
	Reason string
}

func (d DisabledSender) SendEmail(ctx context.Context, to, subject, body string) (SendResult, error) {
	return SendResult{}, fmt.Errorf("email sending disabled: %s", d.Reason)
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fulfillment is one row per paid checkout session. The unique index on
// SessionID is the idempotency guard: a session can only ever be claimed
// once, no matter how many times Stripe redelivers its webhook.
type Fulfillment struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CustomerEmail  string    `gorm:"type:varchar(320)"`
	AmountTotal    int64     `gorm:"not null"` // smallest currency unit
	Currency       string    `gorm:"type:varchar(10);not null"`
	Product        string    `gorm:"type:varchar(255)"`
	ReceiptSentAt  *time.Time
	LedgerLoggedAt *time.Time
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// SaleEvent is the notification published to SNS after a fulfillment is
// claimed.
type SaleEvent struct {
	Type          string    `json:"type"` // "sale_completed"
	SessionID     string    `json:"session_id"`
	FulfillmentID string    `json:"fulfillment_id"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Product       string    `json:"product"`
	Timestamp     time.Time `json:"timestamp"` // UTC event time
}

// LedgerRow is the payload relayed to the external sales-ledger webhook
// (a spreadsheet relay; one row per call).
type LedgerRow struct {
	Sheet     string    `json:"sheet"`
	SessionID string    `json:"session_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Amount    float64   `json:"amount,omitempty"`
	Currency  string    `json:"currency,omitempty"`
	Product   string    `json:"product,omitempty"`
	Source    string    `json:"source,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

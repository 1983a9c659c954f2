package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"  // checkout session created; awaiting provider
	PaymentStatusPaid     PaymentStatus = "paid"     // provider confirmed payment
	PaymentStatusFailed   PaymentStatus = "failed"   // provider reported failure; terminal
	PaymentStatusRefunded PaymentStatus = "refunded" // fully refunded after paid; terminal
)

// PaymentRecord tracks one checkout session through its lifecycle.
// SessionID is the join key between the checkout flow and webhook
// delivery: it must exist in storage before the user can complete
// payment, so an out-of-order webhook always finds a row to update.
type PaymentRecord struct {
	ID              string // ULID
	UserID          string
	TemplateID      string // "all" for the bundle
	SessionID       string // provider checkout session id, unique
	PaymentIntentID string // provider payment intent, join key for refunds
	Amount          int64  // minor units
	Currency        string
	Status          PaymentStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
	RefundedAt      *time.Time
}

// WebhookEvent records a processed provider event for deduplication.
// Provider+EventID is unique; a redelivered event short-circuits before
// touching payment state.
type WebhookEvent struct {
	ID         string // ULID
	Provider   string
	EventID    string
	EventType  string
	ReceivedAt time.Time
}

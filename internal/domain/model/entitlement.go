package model

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// TemplateGrant is a persisted single-template entitlement. Created
// when a payment reaches paid, deleted on full refund.
type TemplateGrant struct {
	ID         string // ULID
	UserID     string
	TemplateID string
	SessionID  string // checkout session that granted it
	GrantedAt  time.Time
}

// FullAccessSubscription unlocks every template for its user while
// active. A refund downgrades it to cancelled; the row is never
// deleted so the purchase trail survives.
type FullAccessSubscription struct {
	UserID      string
	Status      SubscriptionStatus
	SessionID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CancelledAt *time.Time
}

func (s *FullAccessSubscription) Active() bool {
	return s != nil && s.Status == SubscriptionStatusActive
}

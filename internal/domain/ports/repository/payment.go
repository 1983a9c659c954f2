package repository

import (
	"context"
	"time"

	"prompt-template-store/internal/domain/model"
)

type PaymentRepository interface {
	Save(ctx context.Context, tx Tx, p *model.PaymentRecord) error
	FindBySessionID(ctx context.Context, tx Tx, sessionID string) (*model.PaymentRecord, error)
	FindByPaymentIntentID(ctx context.Context, tx Tx, intentID string) (*model.PaymentRecord, error)
	ListByUser(ctx context.Context, tx Tx, userID string, limit int) ([]*model.PaymentRecord, error)

	// UpdateStatusIf atomically moves the record identified by
	// sessionID to status only when its current status is one of from.
	// Returns false when the precondition did not hold (no-op), which
	// is how duplicate webhook delivery stays idempotent.
	UpdateStatusIf(ctx context.Context, tx Tx, sessionID string, status model.PaymentStatus, from []model.PaymentStatus, refundedAt *time.Time) (bool, error)

	// SetPaymentIntentID records the provider intent once it is known.
	SetPaymentIntentID(ctx context.Context, tx Tx, sessionID, intentID string) error
}

// WebhookEventRepository provides at-most-once processing of provider
// events. Record returns false when the (provider, eventID) pair was
// already stored.
type WebhookEventRepository interface {
	Record(ctx context.Context, tx Tx, ev *model.WebhookEvent) (bool, error)
}

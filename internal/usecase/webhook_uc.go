package usecase

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"prompt-template-store/internal/domain/model"
	"prompt-template-store/internal/domain/ports/repository"
	"prompt-template-store/internal/infra/metrics"
)

// Provider event types handled by the state machine.
const (
	EventCheckoutCompleted     = "checkout.session.completed"
	EventAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
	EventAsyncPaymentFailed    = "checkout.session.async_payment_failed"
	EventChargeRefunded        = "charge.refunded"
)

// PaymentEvent is the provider-neutral shape of a webhook event after
// signature verification. Exactly one of SessionID / PaymentIntentID
// is the lookup key depending on the event type.
type PaymentEvent struct {
	ID              string // provider event id, used for dedup
	Type            string
	SessionID       string
	PaymentIntentID string
	Paid            bool // checkout.session.completed: payment_status == "paid"
	FullRefund      bool // charge.refunded: whole charge refunded
	UserID          string
	TemplateID      string
	Amount          int64
	Currency        string
}

// Compile-time check
var _ WebhookUseCase = (*webhookUC)(nil)

type WebhookUseCase interface {
	// Handle applies one verified provider event. It is safe under
	// at-least-once delivery: duplicate events and already-applied
	// transitions are no-ops. A reference to an unknown session or
	// intent is logged and acknowledged, never an error, so the
	// provider does not redeliver forever.
	Handle(ctx context.Context, ev PaymentEvent) error
}

type webhookUC struct {
	payments repository.PaymentRepository
	events   repository.WebhookEventRepository
	grants   repository.TemplateGrantRepository
	subs     repository.SubscriptionRepository
	tm       repository.TransactionManager
	gate     EntitlementUseCase
	log      *zerolog.Logger
}

func NewWebhookUseCase(
	payments repository.PaymentRepository,
	events repository.WebhookEventRepository,
	grants repository.TemplateGrantRepository,
	subs repository.SubscriptionRepository,
	tm repository.TransactionManager,
	gate EntitlementUseCase,
	logger *zerolog.Logger,
) *webhookUC {
	return &webhookUC{payments: payments, events: events, grants: grants, subs: subs, tm: tm, gate: gate, log: logger}
}

func (u *webhookUC) Handle(ctx context.Context, ev PaymentEvent) error {
	switch ev.Type {
	case EventCheckoutCompleted:
		if ev.Paid {
			return u.applyPaid(ctx, ev, []model.PaymentStatus{model.PaymentStatusPending})
		}
		return u.applyFailed(ctx, ev)
	case EventAsyncPaymentSucceeded:
		// Deferred methods complete after the session already reported
		// unpaid, so failed is a valid predecessor here.
		return u.applyPaid(ctx, ev, []model.PaymentStatus{model.PaymentStatusPending, model.PaymentStatusFailed})
	case EventAsyncPaymentFailed:
		return u.applyFailed(ctx, ev)
	case EventChargeRefunded:
		return u.applyRefund(ctx, ev)
	default:
		metrics.IncWebhookEvent(ev.Type, "ignored")
		u.log.Debug().Str("type", ev.Type).Msg("unhandled webhook event type")
		return nil
	}
}

// recordEvent inserts the dedup row inside the ambient transaction.
// Committing it together with the status transition means a rolled-back
// attempt also rolls back the dedup row, so the provider's redelivery
// gets a clean retry instead of being swallowed as a duplicate.
func (u *webhookUC) recordEvent(ctx context.Context, tx repository.Tx, ev PaymentEvent) (bool, error) {
	fresh, err := u.events.Record(ctx, tx, &model.WebhookEvent{
		ID:         ulid.Make().String(),
		Provider:   "stripe",
		EventID:    ev.ID,
		EventType:  ev.Type,
		ReceivedAt: time.Now(),
	})
	if err != nil {
		return false, err
	}
	if !fresh {
		metrics.IncWebhookEvent(ev.Type, "duplicate")
		u.log.Debug().Str("event_id", ev.ID).Str("type", ev.Type).Msg("duplicate webhook event")
	}
	return fresh, nil
}

func (u *webhookUC) applyPaid(ctx context.Context, ev PaymentEvent, from []model.PaymentStatus) error {
	var userID, templateID, currency string
	var amount int64

	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		fresh, err := u.recordEvent(ctx, tx, ev)
		if err != nil || !fresh {
			return err
		}

		rec, err := u.payments.FindBySessionID(ctx, tx, ev.SessionID)
		if err != nil {
			if isNotFound(err) {
				u.anomaly(ev, "payment record not found for session")
				return nil
			}
			return err
		}

		if ev.PaymentIntentID != "" && rec.PaymentIntentID == "" {
			if err := u.payments.SetPaymentIntentID(ctx, tx, ev.SessionID, ev.PaymentIntentID); err != nil {
				return err
			}
		}

		applied, err := u.payments.UpdateStatusIf(ctx, tx, ev.SessionID, model.PaymentStatusPaid, from, nil)
		if err != nil {
			return err
		}
		if applied {
			metrics.IncPayment(string(model.PaymentStatusPaid))
			metrics.AddPaymentRevenue(rec.Currency, rec.Amount)
		}

		// The grant is re-asserted only for a record that just became
		// paid, or already was: a late success arriving after a full
		// refund must not resurrect the revoked entitlement.
		if !applied && rec.Status != model.PaymentStatusPaid {
			u.log.Warn().Str("session_id", ev.SessionID).Str("status", string(rec.Status)).
				Str("event_id", ev.ID).Msg("success event ignored for terminal payment")
			return nil
		}
		if err := u.grant(ctx, tx, rec); err != nil {
			return err
		}
		userID, templateID, currency, amount = rec.UserID, rec.TemplateID, rec.Currency, rec.Amount
		return nil
	})
	if err != nil {
		metrics.IncWebhookEvent(ev.Type, "error")
		return err
	}

	if userID != "" {
		u.gate.Invalidate(ctx, userID)
		metrics.IncWebhookEvent(ev.Type, "applied")
		u.log.Info().Str("user_id", userID).Str("template_id", templateID).
			Str("session_id", ev.SessionID).Int64("amount", amount).Str("currency", currency).
			Msg("payment confirmed; entitlement granted")
	}
	return nil
}

func (u *webhookUC) applyFailed(ctx context.Context, ev PaymentEvent) error {
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		fresh, err := u.recordEvent(ctx, tx, ev)
		if err != nil || !fresh {
			return err
		}

		if _, err := u.payments.FindBySessionID(ctx, tx, ev.SessionID); err != nil {
			if isNotFound(err) {
				u.anomaly(ev, "payment record not found for session")
				return nil
			}
			return err
		}

		from := []model.PaymentStatus{model.PaymentStatusPending}
		applied, err := u.payments.UpdateStatusIf(ctx, tx, ev.SessionID, model.PaymentStatusFailed, from, nil)
		if err != nil {
			return err
		}
		if applied {
			metrics.IncPayment(string(model.PaymentStatusFailed))
			metrics.IncWebhookEvent(ev.Type, "applied")
			u.log.Info().Str("session_id", ev.SessionID).Msg("payment failed")
		}
		return nil
	})
	if err != nil {
		metrics.IncWebhookEvent(ev.Type, "error")
	}
	return err
}

func (u *webhookUC) applyRefund(ctx context.Context, ev PaymentEvent) error {
	if !ev.FullRefund {
		// Partial refunds keep the entitlement; nothing to record.
		metrics.IncWebhookEvent(ev.Type, "ignored")
		return nil
	}

	var userID string
	now := time.Now()
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		fresh, err := u.recordEvent(ctx, tx, ev)
		if err != nil || !fresh {
			return err
		}

		rec, err := u.payments.FindByPaymentIntentID(ctx, tx, ev.PaymentIntentID)
		if err != nil {
			if isNotFound(err) {
				u.anomaly(ev, "payment record not found for intent")
				return nil
			}
			return err
		}

		applied, err := u.payments.UpdateStatusIf(ctx, tx, rec.SessionID, model.PaymentStatusRefunded,
			[]model.PaymentStatus{model.PaymentStatusPaid}, &now)
		if err != nil {
			return err
		}
		if !applied {
			return nil
		}
		metrics.IncPayment(string(model.PaymentStatusRefunded))

		if rec.TemplateID == model.BundleTemplateID {
			if err := u.subs.Cancel(ctx, tx, rec.UserID); err != nil {
				return err
			}
		} else if err := u.grants.Revoke(ctx, tx, rec.UserID, rec.TemplateID); err != nil {
			return err
		}
		userID = rec.UserID
		return nil
	})
	if err != nil {
		metrics.IncWebhookEvent(ev.Type, "error")
		return err
	}

	if userID != "" {
		u.gate.Invalidate(ctx, userID)
		metrics.IncWebhookEvent(ev.Type, "applied")
		u.log.Info().Str("user_id", userID).Str("payment_intent", ev.PaymentIntentID).
			Msg("full refund; entitlement revoked")
	}
	return nil
}

func (u *webhookUC) grant(ctx context.Context, tx repository.Tx, rec *model.PaymentRecord) error {
	if rec.TemplateID == model.BundleTemplateID {
		now := time.Now()
		return u.subs.Upsert(ctx, tx, &model.FullAccessSubscription{
			UserID:    rec.UserID,
			Status:    model.SubscriptionStatusActive,
			SessionID: rec.SessionID,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return u.grants.Grant(ctx, tx, &model.TemplateGrant{
		ID:         ulid.Make().String(),
		UserID:     rec.UserID,
		TemplateID: rec.TemplateID,
		SessionID:  rec.SessionID,
		GrantedAt:  time.Now(),
	})
}

func (u *webhookUC) anomaly(ev PaymentEvent, msg string) {
	metrics.IncWebhookEvent(ev.Type, "anomaly")
	u.log.Error().Str("event_id", ev.ID).Str("type", ev.Type).
		Str("session_id", ev.SessionID).Str("payment_intent", ev.PaymentIntentID).
		Msg(msg)
}

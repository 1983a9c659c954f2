package payment

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"

	"prompt-template-store/internal/usecase"
)

// WebhookParser verifies Stripe signatures and maps raw events onto
// the provider-neutral shape the webhook use case consumes.
type WebhookParser struct {
	secret string
}

func NewWebhookParser(secret string) *WebhookParser {
	return &WebhookParser{secret: secret}
}

// Parse verifies the payload signature and extracts the event. An
// invalid signature is an error; an event type outside the handled set
// still parses, so the caller can acknowledge it.
func (p *WebhookParser) Parse(payload []byte, sigHeader string) (usecase.PaymentEvent, error) {
	ev, err := webhook.ConstructEvent(payload, sigHeader, p.secret)
	if err != nil {
		return usecase.PaymentEvent{}, fmt.Errorf("verify webhook signature: %w", err)
	}
	return mapEvent(ev)
}

func mapEvent(ev stripe.Event) (usecase.PaymentEvent, error) {
	out := usecase.PaymentEvent{
		ID:   ev.ID,
		Type: string(ev.Type),
	}

	switch out.Type {
	case usecase.EventCheckoutCompleted, usecase.EventAsyncPaymentSucceeded, usecase.EventAsyncPaymentFailed:
		var s stripe.CheckoutSession
		if err := json.Unmarshal(ev.Data.Raw, &s); err != nil {
			return out, fmt.Errorf("decode checkout session: %w", err)
		}
		out.SessionID = s.ID
		out.Paid = s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid
		out.Amount = s.AmountTotal
		out.Currency = string(s.Currency)
		if s.PaymentIntent != nil {
			out.PaymentIntentID = s.PaymentIntent.ID
		}
		out.UserID = s.ClientReferenceID
		if out.UserID == "" {
			out.UserID = s.Metadata["userId"]
		}
		out.TemplateID = s.Metadata["templateId"]

	case usecase.EventChargeRefunded:
		var ch stripe.Charge
		if err := json.Unmarshal(ev.Data.Raw, &ch); err != nil {
			return out, fmt.Errorf("decode charge: %w", err)
		}
		if ch.PaymentIntent != nil {
			out.PaymentIntentID = ch.PaymentIntent.ID
		}
		out.Amount = ch.AmountRefunded
		out.Currency = string(ch.Currency)
		out.FullRefund = ch.Amount > 0 && ch.AmountRefunded >= ch.Amount
	}

	return out, nil
}

// Package payment holds the Stripe adapter: checkout session creation
// and webhook payload verification.
package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	"prompt-template-store/internal/domain/ports/adapter"
)

var _ adapter.CheckoutGateway = (*StripeGateway)(nil)

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) (*StripeGateway, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("stripe: secret key is required")
	}
	return &StripeGateway{api: client.New(secretKey, nil)}, nil
}

func (g *StripeGateway) Name() string { return "stripe" }

// CreateSession opens a one-off payment checkout. The user and
// template ids travel in the session metadata and client reference so
// the webhook can reconcile the payment without extra lookups.
func (g *StripeGateway) CreateSession(ctx context.Context, req adapter.CheckoutSessionRequest) (*adapter.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.UserID),
		Metadata: map[string]string{
			"userId":     req.UserID,
			"templateId": req.TemplateID,
		},
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
			},
		},
	}
	params.Context = ctx
	if req.UserEmail != "" {
		params.CustomerEmail = stripe.String(req.UserEmail)
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}

	out := &adapter.CheckoutSession{
		ID:       sess.ID,
		URL:      sess.URL,
		Amount:   sess.AmountTotal,
		Currency: string(sess.Currency),
	}
	if sess.PaymentIntent != nil {
		out.PaymentIntentID = sess.PaymentIntent.ID
	}
	if out.Amount == 0 {
		out.Amount = req.Amount
	}
	if out.Currency == "" {
		out.Currency = strings.ToLower(req.Currency)
	}
	return out, nil
}

package adapter

import "context"

// CheckoutSessionRequest describes one purchase: a single template or
// the full-access bundle.
type CheckoutSessionRequest struct {
	UserID      string
	UserEmail   string
	TemplateID  string
	ProductName string
	Amount      int64 // minor units
	Currency    string
	SuccessURL  string
	CancelURL   string
}

// CheckoutSession is what the provider returned: the id we persist and
// the URL the client is redirected to.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentIntentID string
	Amount          int64
	Currency        string
}

// CheckoutGateway abstracts the payment provider's session API.
type CheckoutGateway interface {
	Name() string
	CreateSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
}

package usecase

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"prompt-template-store/internal/catalog"
	"prompt-template-store/internal/domain"
	"prompt-template-store/internal/domain/model"
	"prompt-template-store/internal/domain/ports/adapter"
	"prompt-template-store/internal/domain/ports/repository"
	"prompt-template-store/internal/infra/metrics"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

type CheckoutUseCase interface {
	// CreateSession starts a checkout for one template (or the "all"
	// bundle) and persists a pending PaymentRecord keyed by the
	// provider session id before returning, so an out-of-order webhook
	// always finds a row to update. Returns the record and the
	// provider redirect URL.
	CreateSession(ctx context.Context, userID, userEmail, templateID, successURL, cancelURL string) (*model.PaymentRecord, string, error)
	// History lists the user's payment records, newest first.
	History(ctx context.Context, userID string) ([]*model.PaymentRecord, error)
}

type checkoutUC struct {
	cat      *catalog.Catalog
	payments repository.PaymentRepository
	grants   repository.TemplateGrantRepository
	subs     repository.SubscriptionRepository
	gateway  adapter.CheckoutGateway
	log      *zerolog.Logger
}

func NewCheckoutUseCase(
	cat *catalog.Catalog,
	payments repository.PaymentRepository,
	grants repository.TemplateGrantRepository,
	subs repository.SubscriptionRepository,
	gateway adapter.CheckoutGateway,
	logger *zerolog.Logger,
) *checkoutUC {
	return &checkoutUC{cat: cat, payments: payments, grants: grants, subs: subs, gateway: gateway, log: logger}
}

func (u *checkoutUC) CreateSession(ctx context.Context, userID, userEmail, templateID, successURL, cancelURL string) (*model.PaymentRecord, string, error) {
	if userID == "" {
		return nil, "", domain.ErrUnauthorized
	}
	t := u.cat.ByID(templateID)
	if t == nil {
		return nil, "", domain.ErrNotFound
	}
	if t.Free {
		return nil, "", domain.ErrInvalidArgument
	}

	owned, err := u.alreadyOwned(ctx, userID, t)
	if err != nil {
		return nil, "", err
	}
	if owned {
		return nil, "", domain.ErrAlreadyOwned
	}

	sess, err := u.gateway.CreateSession(ctx, adapter.CheckoutSessionRequest{
		UserID:      userID,
		UserEmail:   userEmail,
		TemplateID:  t.ID,
		ProductName: t.Name,
		Amount:      t.PriceCents,
		Currency:    t.Currency,
		SuccessURL:  successURL,
		CancelURL:   cancelURL,
	})
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	rec := &model.PaymentRecord{
		ID:              ulid.Make().String(),
		UserID:          userID,
		TemplateID:      t.ID,
		SessionID:       sess.ID,
		PaymentIntentID: sess.PaymentIntentID,
		Amount:          sess.Amount,
		Currency:        sess.Currency,
		Status:          model.PaymentStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := u.payments.Save(ctx, nil, rec); err != nil {
		return nil, "", err
	}
	metrics.IncPayment(string(model.PaymentStatusPending))
	u.log.Info().Str("user_id", userID).Str("template_id", t.ID).Str("session_id", sess.ID).
		Msg("checkout session created")
	return rec, sess.URL, nil
}

func (u *checkoutUC) History(ctx context.Context, userID string) ([]*model.PaymentRecord, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return u.payments.ListByUser(ctx, nil, userID, 100)
}

// alreadyOwned reports whether a purchase would duplicate an existing
// entitlement. Purchasing anything while a full-access subscription is
// active is a conflict; so is re-buying a granted template.
func (u *checkoutUC) alreadyOwned(ctx context.Context, userID string, t *model.Template) (bool, error) {
	sub, err := u.subs.FindByUser(ctx, nil, userID)
	if err != nil && !isNotFound(err) {
		return false, err
	}
	if sub.Active() {
		return true, nil
	}
	if t.Bundle {
		return false, nil
	}
	return u.grants.Exists(ctx, nil, userID, t.ID)
}

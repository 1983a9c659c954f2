package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"prompt-template-store/internal/domain"
	"prompt-template-store/internal/domain/model"
)

func TestCheckout_CreateSession(t *testing.T) {
	ctx := context.Background()

	type fixture struct {
		payments *mockPaymentRepo
		grants   *mockGrantRepo
		subs     *mockSubRepo
		gateway  *mockGateway
		uc       *checkoutUC
	}
	newFixture := func(t *testing.T) *fixture {
		f := &fixture{
			payments: newMockPaymentRepo(),
			grants:   newMockGrantRepo(),
			subs:     newMockSubRepo(),
			gateway:  &mockGateway{},
		}
		f.uc = NewCheckoutUseCase(testCatalog(t), f.payments, f.grants, f.subs, f.gateway, testLogger())
		return f
	}

	t.Run("persists a pending record before returning", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.gateway.nextID = "cs_test_42"

		// Act
		rec, url, err := f.uc.CreateSession(ctx, "user-1", "u@example.com", "care", "https://app/success", "https://app/cancel")

		// Assert
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if url == "" {
			t.Error("expected a redirect URL")
		}
		if rec.Status != model.PaymentStatusPending {
			t.Errorf("expected pending status, got %q", rec.Status)
		}
		if rec.Amount != 289 || rec.Currency != "eur" {
			t.Errorf("expected 289 eur, got %d %s", rec.Amount, rec.Currency)
		}
		stored := f.payments.get("cs_test_42")
		if stored == nil {
			t.Fatal("expected record persisted under the session id")
		}
		if stored.UserID != "user-1" || stored.TemplateID != "care" {
			t.Errorf("unexpected stored record: %+v", stored)
		}
	})

	t.Run("bundle checkout uses bundle pricing", func(t *testing.T) {
		f := newFixture(t)

		rec, _, err := f.uc.CreateSession(ctx, "user-1", "", "all", "https://app/success", "https://app/cancel")
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if rec.Amount != 979 {
			t.Errorf("expected bundle price 979, got %d", rec.Amount)
		}
	})

	t.Run("rejects anonymous user", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := f.uc.CreateSession(ctx, "", "", "care", "", "")
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("rejects unknown template", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := f.uc.CreateSession(ctx, "user-1", "", "no-such", "", "")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rejects free template", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := f.uc.CreateSession(ctx, "user-1", "", "race", "", "")
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("rejects re-buying a granted template", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		if err := f.grants.Grant(ctx, nil, &model.TemplateGrant{
			ID: "g1", UserID: "user-1", TemplateID: "care", GrantedAt: time.Now(),
		}); err != nil {
			t.Fatalf("grant setup failed: %v", err)
		}

		// Act & Assert
		_, _, err := f.uc.CreateSession(ctx, "user-1", "", "care", "", "")
		if !errors.Is(err, domain.ErrAlreadyOwned) {
			t.Errorf("expected ErrAlreadyOwned, got %v", err)
		}
	})

	t.Run("rejects any purchase under an active subscription", func(t *testing.T) {
		f := newFixture(t)
		f.subs.subs["user-1"] = &model.FullAccessSubscription{
			UserID: "user-1",
			Status: model.SubscriptionStatusActive,
		}

		for _, id := range []string{"care", "all"} {
			_, _, err := f.uc.CreateSession(ctx, "user-1", "", id, "", "")
			if !errors.Is(err, domain.ErrAlreadyOwned) {
				t.Errorf("template %q: expected ErrAlreadyOwned, got %v", id, err)
			}
		}
	})

	t.Run("allows bundle purchase after cancellation", func(t *testing.T) {
		f := newFixture(t)
		now := time.Now()
		f.subs.subs["user-1"] = &model.FullAccessSubscription{
			UserID:      "user-1",
			Status:      model.SubscriptionStatusCancelled,
			CancelledAt: &now,
		}

		_, _, err := f.uc.CreateSession(ctx, "user-1", "", "all", "", "")
		if err != nil {
			t.Errorf("expected re-purchase after cancellation to succeed, got %v", err)
		}
	})

	t.Run("gateway failure leaves no record", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.err = errors.New("provider unavailable")

		_, _, err := f.uc.CreateSession(ctx, "user-1", "", "care", "", "")
		if err == nil {
			t.Fatal("expected error from gateway failure")
		}
		if n := len(f.payments.records); n != 0 {
			t.Errorf("expected no persisted records, got %d", n)
		}
	})
}

func TestCheckout_History(t *testing.T) {
	ctx := context.Background()
	payments := newMockPaymentRepo()
	uc := NewCheckoutUseCase(testCatalog(t), payments, newMockGrantRepo(), newMockSubRepo(), &mockGateway{}, testLogger())

	if err := payments.Save(ctx, nil, &model.PaymentRecord{
		ID: "p1", UserID: "user-1", SessionID: "cs_1", TemplateID: "care", Status: model.PaymentStatusPaid,
	}); err != nil {
		t.Fatalf("save setup failed: %v", err)
	}
	if err := payments.Save(ctx, nil, &model.PaymentRecord{
		ID: "p2", UserID: "user-2", SessionID: "cs_2", TemplateID: "pain", Status: model.PaymentStatusPaid,
	}); err != nil {
		t.Fatalf("save setup failed: %v", err)
	}

	recs, err := uc.History(ctx, "user-1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(recs) != 1 || recs[0].SessionID != "cs_1" {
		t.Errorf("expected only user-1's record, got %+v", recs)
	}

	if _, err := uc.History(ctx, ""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for anonymous history, got %v", err)
	}
}

//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"prompt-template-store/internal/domain"
	"prompt-template-store/internal/domain/model"
)

func newTestPayment(sessionID string) *model.PaymentRecord {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &model.PaymentRecord{
		ID:         ulid.Make().String(),
		UserID:     "user-1",
		TemplateID: "care",
		SessionID:  sessionID,
		Amount:     289,
		Currency:   "eur",
		Status:     model.PaymentStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestPaymentRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}
	ctx := context.Background()
	repo := NewPaymentRepo(testPool)

	t.Run("save and find by session id", func(t *testing.T) {
		cleanup(t)
		p := newTestPayment("cs_1")
		if err := repo.Save(ctx, nil, p); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := repo.FindBySessionID(ctx, nil, "cs_1")
		if err != nil {
			t.Fatalf("FindBySessionID failed: %v", err)
		}
		if got.ID != p.ID || got.Status != model.PaymentStatusPending || got.Amount != 289 {
			t.Errorf("unexpected record: %+v", got)
		}
	})

	t.Run("missing session returns ErrNotFound", func(t *testing.T) {
		cleanup(t)
		_, err := repo.FindBySessionID(ctx, nil, "cs_missing")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("update status honors precondition", func(t *testing.T) {
		cleanup(t)
		if err := repo.Save(ctx, nil, newTestPayment("cs_1")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		applied, err := repo.UpdateStatusIf(ctx, nil, "cs_1", model.PaymentStatusPaid,
			[]model.PaymentStatus{model.PaymentStatusPending}, nil)
		if err != nil {
			t.Fatalf("UpdateStatusIf failed: %v", err)
		}
		if !applied {
			t.Fatal("expected transition pending->paid to apply")
		}

		// Second identical transition misses the precondition.
		applied, err = repo.UpdateStatusIf(ctx, nil, "cs_1", model.PaymentStatusPaid,
			[]model.PaymentStatus{model.PaymentStatusPending}, nil)
		if err != nil {
			t.Fatalf("UpdateStatusIf failed: %v", err)
		}
		if applied {
			t.Error("expected repeated transition to be a no-op")
		}
	})

	t.Run("refund records timestamp", func(t *testing.T) {
		cleanup(t)
		if err := repo.Save(ctx, nil, newTestPayment("cs_1")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if _, err := repo.UpdateStatusIf(ctx, nil, "cs_1", model.PaymentStatusPaid,
			[]model.PaymentStatus{model.PaymentStatusPending}, nil); err != nil {
			t.Fatalf("UpdateStatusIf failed: %v", err)
		}

		now := time.Now().UTC()
		applied, err := repo.UpdateStatusIf(ctx, nil, "cs_1", model.PaymentStatusRefunded,
			[]model.PaymentStatus{model.PaymentStatusPaid}, &now)
		if err != nil || !applied {
			t.Fatalf("refund transition failed: applied=%v err=%v", applied, err)
		}

		got, err := repo.FindBySessionID(ctx, nil, "cs_1")
		if err != nil {
			t.Fatalf("FindBySessionID failed: %v", err)
		}
		if got.RefundedAt == nil {
			t.Error("expected refunded_at set")
		}
	})

	t.Run("find by payment intent", func(t *testing.T) {
		cleanup(t)
		p := newTestPayment("cs_1")
		if err := repo.Save(ctx, nil, p); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := repo.SetPaymentIntentID(ctx, nil, "cs_1", "pi_1"); err != nil {
			t.Fatalf("SetPaymentIntentID failed: %v", err)
		}

		got, err := repo.FindByPaymentIntentID(ctx, nil, "pi_1")
		if err != nil {
			t.Fatalf("FindByPaymentIntentID failed: %v", err)
		}
		if got.SessionID != "cs_1" {
			t.Errorf("unexpected record: %+v", got)
		}
	})

	t.Run("list by user orders newest first", func(t *testing.T) {
		cleanup(t)
		older := newTestPayment("cs_old")
		older.CreatedAt = older.CreatedAt.Add(-time.Hour)
		if err := repo.Save(ctx, nil, older); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := repo.Save(ctx, nil, newTestPayment("cs_new")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := repo.ListByUser(ctx, nil, "user-1", 10)
		if err != nil {
			t.Fatalf("ListByUser failed: %v", err)
		}
		if len(got) != 2 || got[0].SessionID != "cs_new" {
			t.Errorf("unexpected order: %+v", got)
		}
	})
}

func TestWebhookEventRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}
	ctx := context.Background()
	repo := NewWebhookEventRepo(testPool)
	cleanup(t)

	ev := &model.WebhookEvent{
		ID:         ulid.Make().String(),
		Provider:   "stripe",
		EventID:    "evt_1",
		EventType:  "checkout.session.completed",
		ReceivedAt: time.Now().UTC(),
	}
	fresh, err := repo.Record(ctx, nil, ev)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if !fresh {
		t.Fatal("expected first record to be fresh")
	}

	dup := *ev
	dup.ID = ulid.Make().String()
	fresh, err = repo.Record(ctx, nil, &dup)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if fresh {
		t.Error("expected duplicate event id to report not fresh")
	}
}

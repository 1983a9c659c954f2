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

func TestGrantRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}
	ctx := context.Background()
	repo := NewGrantRepo(testPool)

	t.Run("grant is idempotent per user and template", func(t *testing.T) {
		cleanup(t)
		g := &model.TemplateGrant{
			ID: ulid.Make().String(), UserID: "user-1", TemplateID: "care",
			SessionID: "cs_1", GrantedAt: time.Now().UTC(),
		}
		if err := repo.Grant(ctx, nil, g); err != nil {
			t.Fatalf("Grant failed: %v", err)
		}

		again := *g
		again.ID = ulid.Make().String()
		if err := repo.Grant(ctx, nil, &again); err != nil {
			t.Fatalf("second Grant failed: %v", err)
		}

		ids, err := repo.ListTemplateIDs(ctx, nil, "user-1")
		if err != nil {
			t.Fatalf("ListTemplateIDs failed: %v", err)
		}
		if len(ids) != 1 || ids[0] != "care" {
			t.Errorf("expected single care grant, got %v", ids)
		}
	})

	t.Run("revoke removes the grant", func(t *testing.T) {
		cleanup(t)
		g := &model.TemplateGrant{
			ID: ulid.Make().String(), UserID: "user-1", TemplateID: "care",
			GrantedAt: time.Now().UTC(),
		}
		if err := repo.Grant(ctx, nil, g); err != nil {
			t.Fatalf("Grant failed: %v", err)
		}
		if err := repo.Revoke(ctx, nil, "user-1", "care"); err != nil {
			t.Fatalf("Revoke failed: %v", err)
		}

		owned, err := repo.Exists(ctx, nil, "user-1", "care")
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if owned {
			t.Error("expected grant gone after revoke")
		}
	})
}

func TestSubscriptionRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}
	ctx := context.Background()
	repo := NewSubscriptionRepo(testPool)

	newSub := func() *model.FullAccessSubscription {
		now := time.Now().UTC().Truncate(time.Millisecond)
		return &model.FullAccessSubscription{
			UserID: "user-1", Status: model.SubscriptionStatusActive,
			SessionID: "cs_1", CreatedAt: now, UpdatedAt: now,
		}
	}

	t.Run("upsert creates and reactivates", func(t *testing.T) {
		cleanup(t)
		if err := repo.Upsert(ctx, nil, newSub()); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		if err := repo.Cancel(ctx, nil, "user-1"); err != nil {
			t.Fatalf("Cancel failed: %v", err)
		}

		// Re-purchase reactivates the same row and clears cancellation.
		if err := repo.Upsert(ctx, nil, newSub()); err != nil {
			t.Fatalf("reactivating Upsert failed: %v", err)
		}
		got, err := repo.FindByUser(ctx, nil, "user-1")
		if err != nil {
			t.Fatalf("FindByUser failed: %v", err)
		}
		if got.Status != model.SubscriptionStatusActive {
			t.Errorf("expected active, got %q", got.Status)
		}
		if got.CancelledAt != nil {
			t.Error("expected cancelled_at cleared on reactivation")
		}
	})

	t.Run("cancel keeps the row", func(t *testing.T) {
		cleanup(t)
		if err := repo.Upsert(ctx, nil, newSub()); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		if err := repo.Cancel(ctx, nil, "user-1"); err != nil {
			t.Fatalf("Cancel failed: %v", err)
		}

		got, err := repo.FindByUser(ctx, nil, "user-1")
		if err != nil {
			t.Fatalf("FindByUser failed: %v", err)
		}
		if got.Status != model.SubscriptionStatusCancelled || got.CancelledAt == nil {
			t.Errorf("expected cancelled row retained, got %+v", got)
		}
	})

	t.Run("cancel without subscription returns ErrNotFound", func(t *testing.T) {
		cleanup(t)
		if err := repo.Cancel(ctx, nil, "user-missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("missing user returns ErrNotFound", func(t *testing.T) {
		cleanup(t)
		if _, err := repo.FindByUser(ctx, nil, "user-missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

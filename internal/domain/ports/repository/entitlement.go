package repository

import (
	"context"

	"prompt-template-store/internal/domain/model"
)

type TemplateGrantRepository interface {
	// Grant inserts a single-template grant. Granting an already
	// granted (user, template) pair is a no-op, not an error.
	Grant(ctx context.Context, tx Tx, g *model.TemplateGrant) error
	Revoke(ctx context.Context, tx Tx, userID, templateID string) error
	Exists(ctx context.Context, tx Tx, userID, templateID string) (bool, error)
	ListTemplateIDs(ctx context.Context, tx Tx, userID string) ([]string, error)
}

type SubscriptionRepository interface {
	// Upsert activates (or re-activates) the full-access subscription
	// for the user; keyed on user id so re-delivery is idempotent.
	Upsert(ctx context.Context, tx Tx, s *model.FullAccessSubscription) error
	Cancel(ctx context.Context, tx Tx, userID string) error
	FindByUser(ctx context.Context, tx Tx, userID string) (*model.FullAccessSubscription, error)
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"prompt-template-store/internal/domain"
	"prompt-template-store/internal/domain/model"
	"prompt-template-store/internal/domain/ports/repository"
)

var _ repository.SubscriptionRepository = (*subscriptionRepo)(nil)

type subscriptionRepo struct{ pool *pgxpool.Pool }

func NewSubscriptionRepo(pool *pgxpool.Pool) *subscriptionRepo {
	return &subscriptionRepo{pool: pool}
}

func (r *subscriptionRepo) Upsert(ctx context.Context, tx repository.Tx, s *model.FullAccessSubscription) error {
	// Keyed on user_id: a re-purchase reactivates the existing row and
	// clears any cancellation.
	const q = `
INSERT INTO user_subscriptions (user_id, status, session_id, created_at, updated_at, cancelled_at)
VALUES ($1,$2,$3,$4,$5,NULL)
ON CONFLICT (user_id) DO UPDATE SET
  status=$2, session_id=$3, updated_at=$5, cancelled_at=NULL;`

	_, err := execSQL(ctx, r.pool, tx, q, s.UserID, s.Status, s.SessionID, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *subscriptionRepo) Cancel(ctx context.Context, tx repository.Tx, userID string) error {
	const q = `UPDATE user_subscriptions SET status=$2, cancelled_at=NOW(), updated_at=NOW() WHERE user_id=$1;`
	tag, err := execSQL(ctx, r.pool, tx, q, userID, model.SubscriptionStatusCancelled)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *subscriptionRepo) FindByUser(ctx context.Context, tx repository.Tx, userID string) (*model.FullAccessSubscription, error) {
	const q = `SELECT user_id, status, session_id, created_at, updated_at, cancelled_at FROM user_subscriptions WHERE user_id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}

	s := &model.FullAccessSubscription{}
	if err := row.Scan(&s.UserID, &s.Status, &s.SessionID, &s.CreatedAt, &s.UpdatedAt, &s.CancelledAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return s, nil
}

package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"prompt-template-store/internal/domain"
	"prompt-template-store/internal/domain/model"
	"prompt-template-store/internal/domain/ports/repository"
)

var _ repository.WebhookEventRepository = (*webhookEventRepo)(nil)

type webhookEventRepo struct{ pool *pgxpool.Pool }

func NewWebhookEventRepo(pool *pgxpool.Pool) *webhookEventRepo {
	return &webhookEventRepo{pool: pool}
}

// Record inserts the event, relying on the (provider, event_id) unique
// index: zero rows affected means the event was already processed.
func (r *webhookEventRepo) Record(ctx context.Context, tx repository.Tx, ev *model.WebhookEvent) (bool, error) {
	const q = `
INSERT INTO webhook_events (id, provider, event_id, event_type, received_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (provider, event_id) DO NOTHING;`

	tag, err := execSQL(ctx, r.pool, tx, q, ev.ID, ev.Provider, ev.EventID, ev.EventType, ev.ReceivedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return false, err
		}
		return false, domain.ErrOperationFailed
	}
	return tag.RowsAffected() > 0, nil
}

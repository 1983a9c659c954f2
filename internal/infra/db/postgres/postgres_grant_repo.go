package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"prompt-template-store/internal/domain"
	"prompt-template-store/internal/domain/model"
	"prompt-template-store/internal/domain/ports/repository"
)

var _ repository.TemplateGrantRepository = (*grantRepo)(nil)

type grantRepo struct{ pool *pgxpool.Pool }

func NewGrantRepo(pool *pgxpool.Pool) *grantRepo {
	return &grantRepo{pool: pool}
}

func (r *grantRepo) Grant(ctx context.Context, tx repository.Tx, g *model.TemplateGrant) error {
	// The (user_id, template_id) unique index makes re-granting a no-op.
	const q = `
INSERT INTO user_templates (id, user_id, template_id, session_id, granted_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (user_id, template_id) DO NOTHING;`

	_, err := execSQL(ctx, r.pool, tx, q, g.ID, g.UserID, g.TemplateID, g.SessionID, g.GrantedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *grantRepo) Revoke(ctx context.Context, tx repository.Tx, userID, templateID string) error {
	const q = `DELETE FROM user_templates WHERE user_id=$1 AND template_id=$2;`
	_, err := execSQL(ctx, r.pool, tx, q, userID, templateID)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *grantRepo) Exists(ctx context.Context, tx repository.Tx, userID, templateID string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM user_templates WHERE user_id=$1 AND template_id=$2);`
	row, err := pickRow(ctx, r.pool, tx, q, userID, templateID)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := row.Scan(&ok); err != nil {
		return false, domain.ErrReadDatabaseRow
	}
	return ok, nil
}

func (r *grantRepo) ListTemplateIDs(ctx context.Context, tx repository.Tx, userID string) ([]string, error) {
	const q = `SELECT template_id FROM user_templates WHERE user_id=$1;`
	rows, err := queryRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, id)
	}
	if rows.Err() != nil {
		return nil, domain.ErrOperationFailed
	}
	return out, nil
}

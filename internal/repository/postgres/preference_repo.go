package postgres

import (
	"context"
	"errors"

	"go-storefront-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type preferenceRepo struct {
	db *pgxpool.Pool
}

func NewPreferenceRepository(db *pgxpool.Pool) domain.PreferenceRepository {
	return &preferenceRepo{db: db}
}

func (r *preferenceRepo) Get(ctx context.Context, userID string) (*domain.Preference, error) {
	var p domain.Preference
	err := r.db.QueryRow(ctx,
		`SELECT user_id, currency, updated_at FROM user_preferences WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &p.Currency, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *preferenceRepo) Upsert(ctx context.Context, p *domain.Preference) error {
	query := `INSERT INTO user_preferences (user_id, currency, updated_at) VALUES ($1, $2, $3)
	          ON CONFLICT (user_id) DO UPDATE SET currency = EXCLUDED.currency, updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query, p.UserID, p.Currency, p.UpdatedAt)
	return err
}

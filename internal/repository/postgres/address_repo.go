package postgres

import (
	"context"
	"errors"

	"go-storefront-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type addressRepo struct {
	db *pgxpool.Pool
}

func NewAddressRepository(db *pgxpool.Pool) domain.AddressRepository {
	return &addressRepo{db: db}
}

const addressColumns = `id, user_id, street, city, state, zip, country, name, phone_no, is_primary, notes`

func (r *addressRepo) Create(ctx context.Context, a *domain.Address) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	if !a.IsPrimary {
		query := `INSERT INTO user_addresses (` + addressColumns + `)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
		_, err := r.db.Exec(ctx, query,
			a.ID, a.UserID, a.Street, a.City, a.State, a.Zip, a.Country,
			a.Name, a.PhoneNo, a.IsPrimary, a.Notes,
		)
		return err
	}

	// A primary insert demotes siblings in the same transaction so
	// there is no window with two primaries.
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE user_addresses SET is_primary = false WHERE user_id = $1 AND is_primary = true`,
		a.UserID,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO user_addresses (`+addressColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.UserID, a.Street, a.City, a.State, a.Zip, a.Country,
		a.Name, a.PhoneNo, true, a.Notes,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *addressRepo) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	var a domain.Address
	err := r.db.QueryRow(ctx, `SELECT `+addressColumns+` FROM user_addresses WHERE id = $1`, id).Scan(
		&a.ID, &a.UserID, &a.Street, &a.City, &a.State, &a.Zip, &a.Country,
		&a.Name, &a.PhoneNo, &a.IsPrimary, &a.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *addressRepo) FetchByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM user_addresses
	          WHERE user_id = $1 ORDER BY is_primary DESC, id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Street, &a.City, &a.State, &a.Zip, &a.Country,
			&a.Name, &a.PhoneNo, &a.IsPrimary, &a.Notes,
		); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *addressRepo) Update(ctx context.Context, a *domain.Address) error {
	query := `UPDATE user_addresses SET
		street = $2, city = $3, state = $4, zip = $5, country = $6,
		name = $7, phone_no = $8, notes = $9
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		a.ID, a.Street, a.City, a.State, a.Zip, a.Country, a.Name, a.PhoneNo, a.Notes,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetPrimary replaces the historical unset-then-set pair of round
// trips with one transaction.
func (r *addressRepo) SetPrimary(ctx context.Context, userID, addressID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE user_addresses SET is_primary = false WHERE user_id = $1 AND is_primary = true`,
		userID,
	); err != nil {
		return err
	}

	result, err := tx.Exec(ctx,
		`UPDATE user_addresses SET is_primary = true WHERE id = $1 AND user_id = $2`,
		addressID, userID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *addressRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM user_addresses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *addressRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_addresses WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

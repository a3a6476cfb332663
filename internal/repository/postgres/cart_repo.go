package postgres

import (
	"context"
	"time"

	"go-storefront-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type cartRepo struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) domain.CartRepository {
	return &cartRepo{db: db}
}

// GetOrCreateActiveSession relies on the partial unique index
// (user_id) WHERE status = 'active': the upsert makes concurrent tabs
// converge on the same session row instead of racing a
// close-then-insert sequence.
func (r *cartRepo) GetOrCreateActiveSession(ctx context.Context, userID string) (*domain.ShoppingSession, error) {
	query := `INSERT INTO shopping_sessions (id, user_id, status, created_at, updated_at)
	          VALUES ($1, $2, 'active', $3, $3)
	          ON CONFLICT (user_id) WHERE status = 'active'
	          DO UPDATE SET updated_at = EXCLUDED.updated_at
	          RETURNING id, user_id, status, created_at, updated_at`

	now := time.Now()
	var s domain.ShoppingSession
	err := r.db.QueryRow(ctx, query, uuid.NewString(), userID, now).Scan(
		&s.ID, &s.UserID, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cartRepo) CloseActiveSession(ctx context.Context, userID string) error {
	query := `UPDATE shopping_sessions SET status = 'closed', updated_at = now()
	          WHERE user_id = $1 AND status = 'active'`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *cartRepo) FetchLines(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	query := `SELECT id, session_id, product_id, variant_id, quantity, selected_color, selected_size,
	          price_snapshot, is_saved_for_later, created_at, updated_at
	          FROM cart_items WHERE session_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(
			&l.ID, &l.SessionID, &l.ProductID, &l.VariantID, &l.Quantity, &l.SelectedColor,
			&l.SelectedSize, &l.PriceSnapshot, &l.IsSavedForLater, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// MergeLine performs the quantity merge server-side: an atomic
// increment on the matching tuple, falling back to insert when no line
// matched. The two statements run in one transaction so a concurrent
// add cannot lose an increment. The price snapshot always refreshes to
// the product's current price.
func (r *cartRepo) MergeLine(ctx context.Context, sessionID string, key domain.LineKey, quantity int, priceSnapshot float64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	update := `UPDATE cart_items
	           SET quantity = quantity + $3, price_snapshot = $4, updated_at = now()
	           WHERE session_id = $1 AND product_id = $2
	             AND variant_id IS NOT DISTINCT FROM $5
	             AND selected_color IS NOT DISTINCT FROM $6
	             AND selected_size IS NOT DISTINCT FROM $7
	             AND is_saved_for_later = false`

	result, err := tx.Exec(ctx, update,
		sessionID, key.ProductID, quantity, priceSnapshot,
		key.VariantID, key.SelectedColor, key.SelectedSize,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		insert := `INSERT INTO cart_items (id, session_id, product_id, variant_id, quantity,
		           selected_color, selected_size, price_snapshot, is_saved_for_later, created_at, updated_at)
		           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, now(), now())`
		if _, err := tx.Exec(ctx, insert,
			uuid.NewString(), sessionID, key.ProductID, key.VariantID, quantity,
			key.SelectedColor, key.SelectedSize, priceSnapshot,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// RemoveProduct deletes every line of the product in the session,
// regardless of variant. Variant-level removal is not distinguished.
func (r *cartRepo) RemoveProduct(ctx context.Context, sessionID, productID string) (int64, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM cart_items WHERE session_id = $1 AND product_id = $2`,
		sessionID, productID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *cartRepo) SetQuantityForProduct(ctx context.Context, sessionID, productID string, quantity int) (int64, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = now()
		 WHERE session_id = $1 AND product_id = $2 AND is_saved_for_later = false`,
		sessionID, productID, quantity,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *cartRepo) SetSavedForLater(ctx context.Context, sessionID, productID string, saved bool) (int64, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE cart_items SET is_saved_for_later = $3, updated_at = now()
		 WHERE session_id = $1 AND product_id = $2`,
		sessionID, productID, saved,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// ClearActiveLines empties the cart without touching saved-for-later
// lines or the session row itself.
func (r *cartRepo) ClearActiveLines(ctx context.Context, sessionID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM cart_items WHERE session_id = $1 AND is_saved_for_later = false`,
		sessionID,
	)
	return err
}

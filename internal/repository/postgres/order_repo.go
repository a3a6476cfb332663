package postgres

import (
	"context"
	"errors"

	"go-storefront-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type orderRepo struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) domain.OrderRepository {
	return &orderRepo{db: db}
}

// CreateWithItems is the transactional heart of checkout: stock locks
// and decrements, the order row, its items, and the cart cleanup all
// commit together or not at all.
func (r *orderRepo) CreateWithItems(ctx context.Context, draft *domain.OrderDraft) (string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	// Lock and decrement stock per item before writing anything else.
	for _, item := range draft.Items {
		var stock int
		err := tx.QueryRow(ctx,
			`SELECT stock FROM products WHERE id = $1 FOR UPDATE`,
			item.ProductID,
		).Scan(&stock)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", domain.ErrNotFound
			}
			return "", err
		}
		if stock < item.Quantity {
			return "", domain.ErrInsufficientStock
		}
		if _, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1`,
			item.ProductID, item.Quantity,
		); err != nil {
			return "", err
		}
	}

	// IDs and timestamps come with the draft; the usecase stamped
	// them so item rows can reference the order before any insert.
	o := draft.Order
	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, user_id, total, delivery_fee, delivery_fee_paid, payment_option,
		 status, delivery_name, delivery_phone, delivery_address, payment_method, payment_ref, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		o.ID, o.UserID, o.Total, o.DeliveryFee, o.DeliveryFeePaid, o.PaymentOption,
		o.Status, o.DeliveryName, o.DeliveryPhone, o.DeliveryAddress, o.PaymentMethod, o.PaymentRef,
		o.CreatedAt,
	)
	if err != nil {
		return "", err
	}

	for _, item := range draft.Items {
		if _, err := tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, product_id, variant_id, quantity, price, selected_color, selected_size)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.ID, item.OrderID, item.ProductID, item.VariantID, item.Quantity,
			item.Price, item.SelectedColor, item.SelectedSize,
		); err != nil {
			return "", err
		}
	}

	// The order owns the cart contents now; clear the active lines in
	// the same commit so a crash cannot leave both an order and a
	// full cart.
	if _, err := tx.Exec(ctx,
		`DELETE FROM cart_items WHERE session_id = $1 AND is_saved_for_later = false`,
		draft.SessionID,
	); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return o.ID, nil
}

const orderColumns = `id, user_id, total, delivery_fee, delivery_fee_paid, payment_option,
	status, delivery_name, delivery_phone, delivery_address, payment_method, payment_ref, created_at`

func (r *orderRepo) GetByID(ctx context.Context, id string) (*domain.OrderWithItems, error) {
	var o domain.OrderWithItems
	err := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id).Scan(
		&o.ID, &o.UserID, &o.Total, &o.DeliveryFee, &o.DeliveryFeePaid, &o.PaymentOption,
		&o.Status, &o.DeliveryName, &o.DeliveryPhone, &o.DeliveryAddress, &o.PaymentMethod,
		&o.PaymentRef, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, order_id, product_id, variant_id, quantity, price, selected_color, selected_size
		 FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.VariantID,
			&item.Quantity, &item.Price, &item.SelectedColor, &item.SelectedSize,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return &o, rows.Err()
}

func (r *orderRepo) FetchByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, int64, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
	          WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Order, int64, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.Total, &o.DeliveryFee, &o.DeliveryFeePaid, &o.PaymentOption,
			&o.Status, &o.DeliveryName, &o.DeliveryPhone, &o.DeliveryAddress, &o.PaymentMethod,
			&o.PaymentRef, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, paymentRef *string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $2, payment_ref = COALESCE($3, payment_ref) WHERE id = $1`,
		id, status, paymentRef,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

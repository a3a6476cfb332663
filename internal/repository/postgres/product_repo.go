package postgres

import (
	"context"
	"errors"
	"strconv"
	"go-storefront-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type productRepo struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) domain.ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, name, price, original_price, discount_active, discount_percentage,
	category, shipping_location, image, description, stock, colors, sizes, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.OriginalPrice, &p.DiscountActive, &p.DiscountPercentage,
		&p.Category, &p.ShippingLocation, &p.Image, &p.Description, &p.Stock,
		pq.Array(&p.Colors), pq.Array(&p.Sizes), &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (id, name, price, original_price, discount_active, discount_percentage,
	          category, shipping_location, image, description, stock, colors, sizes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Price, p.OriginalPrice, p.DiscountActive, p.DiscountPercentage,
		p.Category, p.ShippingLocation, p.Image, p.Description, p.Stock,
		pq.Array(p.Colors), pq.Array(p.Sizes), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

func (r *productRepo) GetManyByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error) {
	out := make(map[string]*domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.OriginalPrice, &p.DiscountActive, &p.DiscountPercentage,
			&p.Category, &p.ShippingLocation, &p.Image, &p.Description, &p.Stock,
			pq.Array(&p.Colors), pq.Array(&p.Sizes), &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out[p.ID] = &p
	}
	return out, rows.Err()
}

func (r *productRepo) Fetch(ctx context.Context, filter domain.ProductFilter, limit, offset int) ([]domain.Product, int64, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Category != "" {
		n++
		where += ` AND category = $` + strconv.Itoa(n)
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		n++
		where += ` AND name ILIKE $` + strconv.Itoa(n)
		args = append(args, "%"+filter.Search+"%")
	}

	query := `SELECT ` + productColumns + ` FROM products` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.OriginalPrice, &p.DiscountActive, &p.DiscountPercentage,
			&p.Category, &p.ShippingLocation, &p.Image, &p.Description, &p.Stock,
			pq.Array(&p.Colors), pq.Array(&p.Sizes), &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepo) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET
		name = $2,
		price = $3,
		original_price = $4,
		discount_active = $5,
		discount_percentage = $6,
		category = $7,
		shipping_location = $8,
		description = $9,
		stock = $10,
		colors = $11,
		sizes = $12,
		updated_at = $13
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Price, p.OriginalPrice, p.DiscountActive, p.DiscountPercentage,
		p.Category, p.ShippingLocation, p.Description, p.Stock,
		pq.Array(p.Colors), pq.Array(p.Sizes), p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepo) UpdateImage(ctx context.Context, id, imageURL string) error {
	result, err := r.db.Exec(ctx, `UPDATE products SET image = $2, updated_at = now() WHERE id = $1`, id, imageURL)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepo) GetVariant(ctx context.Context, variantID string) (*domain.ProductVariant, error) {
	query := `SELECT id, product_id, color, size, stock FROM product_variants WHERE id = $1`
	var v domain.ProductVariant
	err := r.db.QueryRow(ctx, query, variantID).Scan(&v.ID, &v.ProductID, &v.Color, &v.Size, &v.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

package domain

import (
	"context"
	"time"
)

type Product struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Price              float64   `json:"price"`
	OriginalPrice      *float64  `json:"original_price"`
	DiscountActive     bool      `json:"discount_active"`
	DiscountPercentage *float64  `json:"discount_percentage"`
	Category           string    `json:"category"`
	ShippingLocation   string    `json:"shipping_location"`
	Image              string    `json:"image"`
	Description        string    `json:"description"`
	Stock              int       `json:"stock"`
	Colors             []string  `json:"colors"`
	Sizes              []string  `json:"sizes"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProductVariant is a specific color/size combination with its own
// stock count.
type ProductVariant struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Stock     int    `json:"stock"`
}

// ProductFilter narrows public product listings.
type ProductFilter struct {
	Category string
	Search   string
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	GetManyByIDs(ctx context.Context, ids []string) (map[string]*Product, error)
	Fetch(ctx context.Context, filter ProductFilter, limit, offset int) ([]Product, int64, error)
	Update(ctx context.Context, p *Product) error
	UpdateImage(ctx context.Context, id, imageURL string) error
	Delete(ctx context.Context, id string) error
	GetVariant(ctx context.Context, variantID string) (*ProductVariant, error)
}

type ProductUsecase interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, filter ProductFilter, page, pageSize int) ([]Product, int64, error)
	UpdateProduct(ctx context.Context, p *Product) error
	SetProductImage(ctx context.Context, id, imageURL string) error
	DeleteProduct(ctx context.Context, id string) error
}

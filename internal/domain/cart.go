package domain

import (
	"context"
	"time"
)

const (
	SessionActive = "active"
	SessionClosed = "closed"
)

// ShoppingSession is the server-tracked cart container. The database
// enforces one active session per user through a partial unique index
// on (user_id) WHERE status = 'active'.
type ShoppingSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartLine is one product (plus optional variant/color/size) in a
// session. PriceSnapshot is the product price at the most recent
// add-to-cart, not the first.
type CartLine struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"session_id"`
	ProductID       string    `json:"product_id"`
	VariantID       *string   `json:"variant_id"`
	Quantity        int       `json:"quantity"`
	SelectedColor   *string   `json:"selected_color"`
	SelectedSize    *string   `json:"selected_size"`
	PriceSnapshot   float64   `json:"price_snapshot"`
	IsSavedForLater bool      `json:"is_saved_for_later"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CartLineView joins a line with its product for display.
type CartLineView struct {
	CartLine
	Product *Product `json:"product"`
}

// CartView partitions lines by the saved-for-later flag.
type CartView struct {
	SessionID  string         `json:"session_id"`
	Items      []CartLineView `json:"items"`
	SavedItems []CartLineView `json:"saved_items"`
}

// LineKey identifies the merge tuple for add-to-cart: lines matching
// the same product+variant+color+size are merged by summing quantity.
type LineKey struct {
	ProductID     string
	VariantID     *string
	SelectedColor *string
	SelectedSize  *string
}

type AddToCartInput struct {
	ProductID     string
	VariantID     *string
	SelectedColor *string
	SelectedSize  *string
	Quantity      int
}

type CartRepository interface {
	// GetOrCreateActiveSession upserts against the partial unique
	// index so concurrent callers converge on one session.
	GetOrCreateActiveSession(ctx context.Context, userID string) (*ShoppingSession, error)
	CloseActiveSession(ctx context.Context, userID string) error

	FetchLines(ctx context.Context, sessionID string) ([]CartLine, error)
	// MergeLine atomically increments quantity and refreshes the price
	// snapshot on the matching tuple, inserting a new line when none
	// matches.
	MergeLine(ctx context.Context, sessionID string, key LineKey, quantity int, priceSnapshot float64) error
	RemoveProduct(ctx context.Context, sessionID, productID string) (int64, error)
	SetQuantityForProduct(ctx context.Context, sessionID, productID string, quantity int) (int64, error)
	SetSavedForLater(ctx context.Context, sessionID, productID string, saved bool) (int64, error)
	ClearActiveLines(ctx context.Context, sessionID string) error
}

type CartUsecase interface {
	FetchCart(ctx context.Context, userID string) (*CartView, error)
	AddToCart(ctx context.Context, userID string, in AddToCartInput) (*CartView, error)
	RemoveFromCart(ctx context.Context, userID, productID string) (*CartView, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*CartView, error)
	SaveForLater(ctx context.Context, userID, productID string) (*CartView, error)
	MoveToCart(ctx context.Context, userID, productID string) (*CartView, error)
	ClearCart(ctx context.Context, userID string) error
}

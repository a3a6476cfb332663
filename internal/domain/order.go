package domain

import (
	"context"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known status value.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

const (
	PaymentMethodPaystack = "paystack"
	PaymentMethodMixPay   = "mix_pay"
)

// ValidPaymentMethod reports whether m is an accepted gateway.
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodPaystack || m == PaymentMethodMixPay
}

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Total           float64     `json:"total"`
	DeliveryFee     float64     `json:"delivery_fee"`
	DeliveryFeePaid bool        `json:"delivery_fee_paid"`
	PaymentOption   string      `json:"payment_option"`
	Status          OrderStatus `json:"status"`
	DeliveryName    string      `json:"delivery_name"`
	DeliveryPhone   string      `json:"delivery_phone"`
	DeliveryAddress string      `json:"delivery_address"`
	PaymentMethod   string      `json:"payment_method"`
	PaymentRef      *string     `json:"payment_ref"`
	CreatedAt       time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID            string  `json:"id"`
	OrderID       string  `json:"order_id"`
	ProductID     string  `json:"product_id"`
	VariantID     *string `json:"variant_id"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	SelectedColor *string `json:"selected_color"`
	SelectedSize  *string `json:"selected_size"`
}

// OrderWithItems is the receipt shape returned after checkout and from
// order detail reads.
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}

// OrderDraft carries everything the transactional write path needs to
// create an order with its items in one commit.
type OrderDraft struct {
	Order Order
	Items []OrderItem
	// SessionID is the shopping session whose active lines are
	// deleted inside the same transaction.
	SessionID string
}

type OrderRepository interface {
	// CreateWithItems runs order insert, item inserts, stock
	// decrement and active-line deletion in a single transaction.
	// Either everything commits or nothing does.
	CreateWithItems(ctx context.Context, draft *OrderDraft) (string, error)
	GetByID(ctx context.Context, id string) (*OrderWithItems, error)
	FetchByUser(ctx context.Context, userID string, limit, offset int) ([]Order, int64, error)
	Fetch(ctx context.Context, limit, offset int) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, id string, status OrderStatus, paymentRef *string) error
}

// PlaceOrderInput is the checkout request after handler-level binding.
type PlaceOrderInput struct {
	AddressID     string
	PaymentMethod string
	PaymentRef    *string
}

// CheckoutSummary is the priced view shown before confirmation.
type CheckoutSummary struct {
	Subtotal    float64        `json:"subtotal"`
	DeliveryFee float64        `json:"delivery_fee"`
	Total       float64        `json:"total"`
	Items       []CartLineView `json:"items"`
	Addresses   []Address      `json:"addresses"`
}

type CheckoutUsecase interface {
	// Summary validates preconditions and prices the active cart.
	Summary(ctx context.Context, userID string) (*CheckoutSummary, error)
	// PlaceOrder atomically creates the order and clears the active
	// cart lines. Never retried: a duplicate submission would create
	// a duplicate order.
	PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (*OrderWithItems, error)
}

type OrderUsecase interface {
	GetOrder(ctx context.Context, userID, orderID string) (*OrderWithItems, error)
	ListOrders(ctx context.Context, userID string, page, pageSize int) ([]Order, int64, error)
	ListAllOrders(ctx context.Context, page, pageSize int) ([]Order, int64, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string, paymentRef *string) error
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"go-storefront-backend/internal/domain"
	"go-storefront-backend/pkg/apperror"
)

type checkoutUsecase struct {
	cartRepo    domain.CartRepository
	productRepo domain.ProductRepository
	addressRepo domain.AddressRepository
	orderRepo   domain.OrderRepository
	analytics   domain.AnalyticsUsecase
	deliveryFee float64
}

func NewCheckoutUsecase(
	cartRepo domain.CartRepository,
	productRepo domain.ProductRepository,
	addressRepo domain.AddressRepository,
	orderRepo domain.OrderRepository,
	analytics domain.AnalyticsUsecase,
	deliveryFee float64,
) domain.CheckoutUsecase {
	return &checkoutUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		orderRepo:   orderRepo,
		analytics:   analytics,
		deliveryFee: deliveryFee,
	}
}

// pricedCart is the validated state shared by Summary and PlaceOrder:
// active lines joined to live products, priced at current prices.
type pricedCart struct {
	sessionID string
	items     []domain.CartLineView
	subtotal  float64
}

func (u *checkoutUsecase) loadPricedCart(ctx context.Context, userID string) (*pricedCart, error) {
	session, err := u.cartRepo.GetOrCreateActiveSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines, err := u.cartRepo.FetchLines(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	active := lines[:0]
	for _, l := range lines {
		if !l.IsSavedForLater {
			active = append(active, l)
		}
	}
	if len(active) == 0 {
		return nil, apperror.BadRequest("Cart is empty")
	}

	ids := make([]string, 0, len(active))
	for _, l := range active {
		ids = append(ids, l.ProductID)
	}
	products, err := u.productRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	pc := &pricedCart{sessionID: session.ID}
	for _, l := range active {
		p, ok := products[l.ProductID]
		if !ok {
			slog.Warn("skipping checkout line for missing product",
				"session_id", session.ID, "product_id", l.ProductID)
			continue
		}
		pc.items = append(pc.items, domain.CartLineView{CartLine: l, Product: p})
		pc.subtotal += p.Price * float64(l.Quantity)
	}
	if len(pc.items) == 0 {
		return nil, apperror.BadRequest("Cart is empty")
	}
	return pc, nil
}

func (u *checkoutUsecase) Summary(ctx context.Context, userID string) (*domain.CheckoutSummary, error) {
	pc, err := u.loadPricedCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	addresses, err := u.addressRepo.FetchByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(addresses) == 0 {
		return nil, apperror.PreconditionFailed("Add a delivery address before checking out")
	}

	return &domain.CheckoutSummary{
		Subtotal:    pc.subtotal,
		DeliveryFee: u.deliveryFee,
		Total:       pc.subtotal + u.deliveryFee,
		Items:       pc.items,
		Addresses:   addresses,
	}, nil
}

// PlaceOrder creates the order and clears the active cart lines in one
// database transaction. The write is never retried.
func (u *checkoutUsecase) PlaceOrder(ctx context.Context, userID string, in domain.PlaceOrderInput) (*domain.OrderWithItems, error) {
	if !domain.ValidPaymentMethod(in.PaymentMethod) {
		return nil, apperror.BadRequest("Unknown payment method: " + in.PaymentMethod)
	}

	pc, err := u.loadPricedCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	address, err := u.addressRepo.GetByID(ctx, in.AddressID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.PreconditionFailed("Add a delivery address before checking out")
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, apperror.Forbidden("Address does not belong to this user")
	}

	orderID := uuid.New().String()
	draft := &domain.OrderDraft{
		Order: domain.Order{
			ID:              orderID,
			UserID:          userID,
			Total:           pc.subtotal + u.deliveryFee,
			DeliveryFee:     u.deliveryFee,
			DeliveryFeePaid: false,
			PaymentOption:   "full",
			Status:          domain.OrderStatusPending,
			DeliveryName:    address.Name,
			DeliveryPhone:   address.PhoneNo,
			DeliveryAddress: formatAddress(address),
			PaymentMethod:   in.PaymentMethod,
			PaymentRef:      in.PaymentRef,
			CreatedAt:       time.Now(),
		},
		SessionID: pc.sessionID,
	}
	for _, item := range pc.items {
		draft.Items = append(draft.Items, domain.OrderItem{
			ID:            uuid.New().String(),
			OrderID:       orderID,
			ProductID:     item.ProductID,
			VariantID:     item.VariantID,
			Quantity:      item.Quantity,
			Price:         item.Product.Price,
			SelectedColor: item.SelectedColor,
			SelectedSize:  item.SelectedSize,
		})
	}

	createdID, err := u.orderRepo.CreateWithItems(ctx, draft)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return nil, apperror.Conflict("One or more items are out of stock")
		}
		return nil, err
	}

	if err := u.analytics.RecordOrder(ctx, draft.Order.Total); err != nil {
		slog.Warn("failed to record order stats", "order_id", createdID, "error", err)
	}

	return u.orderRepo.GetByID(ctx, createdID)
}

func formatAddress(a *domain.Address) string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.Street, a.City, a.State, a.Zip, a.Country)
}

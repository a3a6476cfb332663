package usecase

import (
	"context"
	"errors"

	"go-storefront-backend/internal/domain"
	"go-storefront-backend/pkg/apperror"
)

type orderUsecase struct {
	orderRepo domain.OrderRepository
}

func NewOrderUsecase(orderRepo domain.OrderRepository) domain.OrderUsecase {
	return &orderUsecase{orderRepo: orderRepo}
}

func (u *orderUsecase) GetOrder(ctx context.Context, userID, orderID string) (*domain.OrderWithItems, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Order not found")
		}
		return nil, err
	}
	if order.UserID != userID {
		// Admins read through ListAllOrders, not this path.
		return nil, apperror.NotFound("Order not found")
	}
	return order, nil
}

func (u *orderUsecase) ListOrders(ctx context.Context, userID string, page, pageSize int) ([]domain.Order, int64, error) {
	limit, offset := pagination(page, pageSize)
	return u.orderRepo.FetchByUser(ctx, userID, limit, offset)
}

func (u *orderUsecase) ListAllOrders(ctx context.Context, page, pageSize int) ([]domain.Order, int64, error) {
	limit, offset := pagination(page, pageSize)
	return u.orderRepo.Fetch(ctx, limit, offset)
}

func (u *orderUsecase) UpdateOrderStatus(ctx context.Context, orderID, status string, paymentRef *string) error {
	if !domain.ValidOrderStatus(status) {
		return apperror.BadRequest("Unknown order status: " + status)
	}
	if err := u.orderRepo.UpdateStatus(ctx, orderID, domain.OrderStatus(status), paymentRef); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Order not found")
		}
		return err
	}
	return nil
}

func pagination(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return pageSize, (page - 1) * pageSize
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-storefront-backend/internal/domain"
	"go-storefront-backend/internal/usecase"
)

func TestGetOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return the order with its items", func(t *testing.T) {
		repo := new(MockOrderRepo)
		uc := usecase.NewOrderUsecase(repo)

		repo.On("GetByID", ctx, "o1").Return(&domain.OrderWithItems{
			Order: domain.Order{ID: "o1", UserID: "user1", Total: 3500},
			Items: []domain.OrderItem{{ProductID: "p1", Quantity: 2}},
		}, nil)

		order, err := uc.GetOrder(ctx, "user1", "o1")
		assert.NoError(t, err)
		assert.Len(t, order.Items, 1)
	})

	t.Run("Should hide other users' orders behind not found", func(t *testing.T) {
		repo := new(MockOrderRepo)
		uc := usecase.NewOrderUsecase(repo)

		repo.On("GetByID", ctx, "o1").Return(&domain.OrderWithItems{
			Order: domain.Order{ID: "o1", UserID: "someone-else"},
		}, nil)

		_, err := uc.GetOrder(ctx, "user1", "o1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Order not found")
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject unknown status values", func(t *testing.T) {
		repo := new(MockOrderRepo)
		uc := usecase.NewOrderUsecase(repo)

		err := uc.UpdateOrderStatus(ctx, "o1", "refunded", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown order status")
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should pass a valid transition through", func(t *testing.T) {
		repo := new(MockOrderRepo)
		uc := usecase.NewOrderUsecase(repo)

		ref := "PSK-123"
		repo.On("UpdateStatus", ctx, "o1", domain.OrderStatusConfirmed, &ref).Return(nil)

		err := uc.UpdateOrderStatus(ctx, "o1", "confirmed", &ref)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestListOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("Should clamp pagination to sane defaults", func(t *testing.T) {
		repo := new(MockOrderRepo)
		uc := usecase.NewOrderUsecase(repo)

		repo.On("FetchByUser", ctx, "user1", 20, 0).Return([]domain.Order{}, int64(0), nil)

		_, _, err := uc.ListOrders(ctx, "user1", 0, 500)
		assert.NoError(t, err)
		repo.AssertCalled(t, "FetchByUser", ctx, "user1", 20, 0)
	})
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-storefront-backend/internal/domain"
	"go-storefront-backend/internal/usecase"
)

func newCheckoutFixture() (*MockCartRepo, *MockProductRepo, *MockAddressRepo, *MockOrderRepo, *MockStatsRepo, domain.CheckoutUsecase) {
	cartRepo := new(MockCartRepo)
	productRepo := new(MockProductRepo)
	addressRepo := new(MockAddressRepo)
	orderRepo := new(MockOrderRepo)
	statsRepo := new(MockStatsRepo)
	analytics := usecase.NewAnalyticsUsecase(statsRepo)
	uc := usecase.NewCheckoutUsecase(cartRepo, productRepo, addressRepo, orderRepo, analytics, 0)
	return cartRepo, productRepo, addressRepo, orderRepo, statsRepo, uc
}

func TestCheckoutSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("Should price at current product prices", func(t *testing.T) {
		cartRepo, productRepo, addressRepo, _, _, uc := newCheckoutFixture()

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{
			{ID: "l1", ProductID: "p1", Quantity: 2, PriceSnapshot: 1000}, // stale snapshot
			{ID: "l2", ProductID: "p2", Quantity: 1, PriceSnapshot: 1500},
		}, nil)
		productRepo.On("GetManyByIDs", ctx, []string{"p1", "p2"}).Return(map[string]*domain.Product{
			"p1": {ID: "p1", Price: 1000},
			"p2": {ID: "p2", Price: 1500},
		}, nil)
		addressRepo.On("FetchByUser", ctx, "user1").Return([]domain.Address{{ID: "a1", UserID: "user1"}}, nil)

		summary, err := uc.Summary(ctx, "user1")
		assert.NoError(t, err)
		assert.Equal(t, 3500.0, summary.Subtotal)
		assert.Equal(t, 3500.0, summary.Total)
		assert.Len(t, summary.Items, 2)
	})

	t.Run("Should fail on empty cart", func(t *testing.T) {
		cartRepo, _, _, _, _, uc := newCheckoutFixture()

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{}, nil)

		_, err := uc.Summary(ctx, "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Cart is empty")
	})

	t.Run("Should treat a cart of only saved items as empty", func(t *testing.T) {
		cartRepo, _, _, _, _, uc := newCheckoutFixture()

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{
			{ID: "l1", ProductID: "p1", Quantity: 1, IsSavedForLater: true},
		}, nil)

		_, err := uc.Summary(ctx, "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Cart is empty")
	})

	t.Run("Should block checkout without a delivery address", func(t *testing.T) {
		cartRepo, productRepo, addressRepo, _, _, uc := newCheckoutFixture()

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{
			{ID: "l1", ProductID: "p1", Quantity: 1},
		}, nil)
		productRepo.On("GetManyByIDs", ctx, []string{"p1"}).
			Return(map[string]*domain.Product{"p1": {ID: "p1", Price: 500}}, nil)
		addressRepo.On("FetchByUser", ctx, "user1").Return([]domain.Address{}, nil)

		_, err := uc.Summary(ctx, "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "delivery address")
	})
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	address := &domain.Address{
		ID: "a1", UserID: "user1",
		Street: "12 Allen Avenue", City: "Ikeja", State: "Lagos",
		Zip: "100001", Country: "Nigeria",
		Name: "Ada O", PhoneNo: "+2348012345678",
	}

	t.Run("Should create a pending order and clear active lines in one write", func(t *testing.T) {
		cartRepo, productRepo, addressRepo, orderRepo, statsRepo, uc := newCheckoutFixture()

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{
			{ID: "l1", ProductID: "p1", Quantity: 2},
			{ID: "l2", ProductID: "p2", Quantity: 1, IsSavedForLater: true}, // survives checkout
		}, nil)
		productRepo.On("GetManyByIDs", ctx, []string{"p1"}).
			Return(map[string]*domain.Product{"p1": {ID: "p1", Price: 1750}}, nil)
		addressRepo.On("GetByID", ctx, "a1").Return(address, nil)

		var captured *domain.OrderDraft
		orderRepo.On("CreateWithItems", ctx, mock.AnythingOfType("*domain.OrderDraft")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*domain.OrderDraft)
			}).
			Return("order1", nil)
		statsRepo.On("BumpDay", ctx, mock.Anything, int64(0), int64(1), 3500.0).Return(nil)
		orderRepo.On("GetByID", ctx, "order1").Return(&domain.OrderWithItems{
			Order: domain.Order{ID: "order1", UserID: "user1", Total: 3500, Status: domain.OrderStatusPending},
			Items: []domain.OrderItem{{ProductID: "p1", Quantity: 2, Price: 1750}},
		}, nil)

		receipt, err := uc.PlaceOrder(ctx, "user1", domain.PlaceOrderInput{
			AddressID:     "a1",
			PaymentMethod: domain.PaymentMethodPaystack,
		})
		assert.NoError(t, err)
		assert.Equal(t, 3500.0, receipt.Total)
		assert.Equal(t, domain.OrderStatusPending, receipt.Status)

		assert.NotNil(t, captured)
		assert.Equal(t, "s1", captured.SessionID)
		assert.Len(t, captured.Items, 1) // saved line excluded
		assert.Equal(t, "full", captured.Order.PaymentOption)
		assert.Equal(t, "Ada O", captured.Order.DeliveryName)
		assert.Contains(t, captured.Order.DeliveryAddress, "Ikeja")

		// The repository inserts the draft's IDs verbatim, so they
		// must be stamped and consistent before it runs.
		assert.NotEmpty(t, captured.Order.ID)
		assert.NotEmpty(t, captured.Items[0].ID)
		assert.Equal(t, captured.Order.ID, captured.Items[0].OrderID)
	})

	t.Run("Should reject an address owned by someone else", func(t *testing.T) {
		cartRepo, productRepo, addressRepo, orderRepo, _, uc := newCheckoutFixture()

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{
			{ID: "l1", ProductID: "p1", Quantity: 1},
		}, nil)
		productRepo.On("GetManyByIDs", ctx, []string{"p1"}).
			Return(map[string]*domain.Product{"p1": {ID: "p1", Price: 100}}, nil)
		addressRepo.On("GetByID", ctx, "a2").
			Return(&domain.Address{ID: "a2", UserID: "someone-else"}, nil)

		_, err := uc.PlaceOrder(ctx, "user1", domain.PlaceOrderInput{
			AddressID:     "a2",
			PaymentMethod: domain.PaymentMethodPaystack,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not belong")
		orderRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything)
	})

	t.Run("Should reject an unknown payment method before touching the cart", func(t *testing.T) {
		cartRepo, _, _, orderRepo, _, uc := newCheckoutFixture()

		_, err := uc.PlaceOrder(ctx, "user1", domain.PlaceOrderInput{
			AddressID:     "a1",
			PaymentMethod: "cash_on_delivery",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "payment method")
		cartRepo.AssertNotCalled(t, "GetOrCreateActiveSession", mock.Anything, mock.Anything)
		orderRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything)
	})

	t.Run("Should surface a stock conflict without retrying", func(t *testing.T) {
		cartRepo, productRepo, addressRepo, orderRepo, _, uc := newCheckoutFixture()

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{
			{ID: "l1", ProductID: "p1", Quantity: 10},
		}, nil)
		productRepo.On("GetManyByIDs", ctx, []string{"p1"}).
			Return(map[string]*domain.Product{"p1": {ID: "p1", Price: 100}}, nil)
		addressRepo.On("GetByID", ctx, "a1").Return(address, nil)
		orderRepo.On("CreateWithItems", ctx, mock.Anything).Return("", domain.ErrInsufficientStock)

		_, err := uc.PlaceOrder(ctx, "user1", domain.PlaceOrderInput{
			AddressID:     "a1",
			PaymentMethod: domain.PaymentMethodMixPay,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "out of stock")
		orderRepo.AssertNumberOfCalls(t, "CreateWithItems", 1)
	})
}

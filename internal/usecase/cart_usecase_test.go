package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-storefront-backend/internal/domain"
	"go-storefront-backend/internal/usecase"
)

func activeSession(id, userID string) *domain.ShoppingSession {
	return &domain.ShoppingSession{ID: id, UserID: userID, Status: domain.SessionActive}
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Should merge into matching line with the current price", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		uc := usecase.NewCartUsecase(cartRepo, productRepo)

		product := &domain.Product{ID: "p1", Name: "Tote Bag", Price: 4500}
		productRepo.On("GetByID", ctx, "p1").Return(product, nil)
		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)

		key := domain.LineKey{ProductID: "p1"}
		cartRepo.On("MergeLine", ctx, "s1", key, 2, 4500.0).Return(nil)

		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{
			{ID: "l1", SessionID: "s1", ProductID: "p1", Quantity: 5, PriceSnapshot: 4500},
		}, nil)
		productRepo.On("GetManyByIDs", ctx, []string{"p1"}).
			Return(map[string]*domain.Product{"p1": product}, nil)

		view, err := uc.AddToCart(ctx, "user1", domain.AddToCartInput{ProductID: "p1", Quantity: 2})
		assert.NoError(t, err)
		assert.Len(t, view.Items, 1)
		assert.Equal(t, 5, view.Items[0].Quantity)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Should refresh the price snapshot on re-add", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		uc := usecase.NewCartUsecase(cartRepo, productRepo)

		// Price changed since the line was first added.
		product := &domain.Product{ID: "p1", Price: 3000}
		productRepo.On("GetByID", ctx, "p1").Return(product, nil)
		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("MergeLine", ctx, "s1", domain.LineKey{ProductID: "p1"}, 1, 3000.0).Return(nil)
		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{}, nil)

		_, err := uc.AddToCart(ctx, "user1", domain.AddToCartInput{ProductID: "p1", Quantity: 1})
		assert.NoError(t, err)
		cartRepo.AssertCalled(t, "MergeLine", ctx, "s1", domain.LineKey{ProductID: "p1"}, 1, 3000.0)
	})

	t.Run("Should reject quantity below one without touching the session", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		uc := usecase.NewCartUsecase(cartRepo, productRepo)

		_, err := uc.AddToCart(ctx, "user1", domain.AddToCartInput{ProductID: "p1", Quantity: 0})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 1")
		cartRepo.AssertNotCalled(t, "GetOrCreateActiveSession", mock.Anything, mock.Anything)
	})

	t.Run("Should fail for unknown product", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		uc := usecase.NewCartUsecase(cartRepo, productRepo)

		productRepo.On("GetByID", ctx, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.AddToCart(ctx, "user1", domain.AddToCartInput{ProductID: "ghost", Quantity: 1})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Product not found")
	})

	t.Run("Should reject variant belonging to a different product", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		uc := usecase.NewCartUsecase(cartRepo, productRepo)

		variantID := "v9"
		productRepo.On("GetByID", ctx, "p1").Return(&domain.Product{ID: "p1", Price: 100}, nil)
		productRepo.On("GetVariant", ctx, "v9").
			Return(&domain.ProductVariant{ID: "v9", ProductID: "other-product"}, nil)

		_, err := uc.AddToCart(ctx, "user1", domain.AddToCartInput{ProductID: "p1", VariantID: &variantID, Quantity: 1})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not belong")
	})
}

func TestFetchCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Should partition saved-for-later lines from active ones", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		uc := usecase.NewCartUsecase(cartRepo, productRepo)

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{
			{ID: "l1", ProductID: "p1", Quantity: 1},
			{ID: "l2", ProductID: "p2", Quantity: 3, IsSavedForLater: true},
		}, nil)
		productRepo.On("GetManyByIDs", ctx, []string{"p1", "p2"}).Return(map[string]*domain.Product{
			"p1": {ID: "p1"},
			"p2": {ID: "p2"},
		}, nil)

		view, err := uc.FetchCart(ctx, "user1")
		assert.NoError(t, err)
		assert.Len(t, view.Items, 1)
		assert.Len(t, view.SavedItems, 1)
		assert.Equal(t, "p2", view.SavedItems[0].ProductID)
	})

	t.Run("Should drop lines whose product was deleted", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		uc := usecase.NewCartUsecase(cartRepo, productRepo)

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{
			{ID: "l1", ProductID: "p1", Quantity: 1},
			{ID: "l2", ProductID: "deleted", Quantity: 2},
		}, nil)
		productRepo.On("GetManyByIDs", ctx, []string{"p1", "deleted"}).
			Return(map[string]*domain.Product{"p1": {ID: "p1"}}, nil)

		view, err := uc.FetchCart(ctx, "user1")
		assert.NoError(t, err)
		assert.Len(t, view.Items, 1)
		assert.Equal(t, "p1", view.Items[0].ProductID)
	})

	t.Run("Should return empty view for a fresh session", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		uc := usecase.NewCartUsecase(cartRepo, productRepo)

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{}, nil)

		view, err := uc.FetchCart(ctx, "user1")
		assert.NoError(t, err)
		assert.Empty(t, view.Items)
		assert.Empty(t, view.SavedItems)
		productRepo.AssertNotCalled(t, "GetManyByIDs", mock.Anything, mock.Anything)
	})
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Should remove the product when quantity drops to zero", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		uc := usecase.NewCartUsecase(cartRepo, productRepo)

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("RemoveProduct", ctx, "s1", "p1").Return(int64(1), nil)
		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{}, nil)

		view, err := uc.UpdateQuantity(ctx, "user1", "p1", 0)
		assert.NoError(t, err)
		assert.Empty(t, view.Items)
		cartRepo.AssertNotCalled(t, "SetQuantityForProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should fail when the product is not in the cart", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		uc := usecase.NewCartUsecase(cartRepo, productRepo)

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("SetQuantityForProduct", ctx, "s1", "p1", 4).Return(int64(0), nil)

		_, err := uc.UpdateQuantity(ctx, "user1", "p1", 4)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not in the cart")
	})
}

func TestSaveForLater(t *testing.T) {
	ctx := context.Background()

	t.Run("Should flag the line and keep it out of the active items", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		uc := usecase.NewCartUsecase(cartRepo, productRepo)

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("SetSavedForLater", ctx, "s1", "p1", true).Return(int64(1), nil)
		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{
			{ID: "l1", ProductID: "p1", Quantity: 2, IsSavedForLater: true},
		}, nil)
		productRepo.On("GetManyByIDs", ctx, []string{"p1"}).
			Return(map[string]*domain.Product{"p1": {ID: "p1"}}, nil)

		view, err := uc.SaveForLater(ctx, "user1", "p1")
		assert.NoError(t, err)
		assert.Empty(t, view.Items)
		assert.Len(t, view.SavedItems, 1)
	})

	t.Run("Should move a saved line back to the cart", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		uc := usecase.NewCartUsecase(cartRepo, productRepo)

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("SetSavedForLater", ctx, "s1", "p1", false).Return(int64(1), nil)
		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{
			{ID: "l1", ProductID: "p1", Quantity: 2},
		}, nil)
		productRepo.On("GetManyByIDs", ctx, []string{"p1"}).
			Return(map[string]*domain.Product{"p1": {ID: "p1"}}, nil)

		view, err := uc.MoveToCart(ctx, "user1", "p1")
		assert.NoError(t, err)
		assert.Len(t, view.Items, 1)
		assert.Empty(t, view.SavedItems)
	})
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Should only clear active lines", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		uc := usecase.NewCartUsecase(cartRepo, productRepo)

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("ClearActiveLines", ctx, "s1").Return(nil)

		err := uc.ClearCart(ctx, "user1")
		assert.NoError(t, err)
		cartRepo.AssertCalled(t, "ClearActiveLines", ctx, "s1")
	})
}

func TestRemoveFromCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Should drop every line of the product, variants included", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		uc := usecase.NewCartUsecase(cartRepo, productRepo)

		// Two lines of p1 in different variants; removal is keyed by
		// product alone, so both go in one call.
		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("RemoveProduct", ctx, "s1", "p1").Return(int64(2), nil)
		cartRepo.On("FetchLines", ctx, "s1").Return([]domain.CartLine{}, nil)

		view, err := uc.RemoveFromCart(ctx, "user1", "p1")
		assert.NoError(t, err)
		assert.Empty(t, view.Items)
		cartRepo.AssertNumberOfCalls(t, "RemoveProduct", 1)
	})

	t.Run("Should fail when the product is not in the cart", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		uc := usecase.NewCartUsecase(cartRepo, productRepo)

		cartRepo.On("GetOrCreateActiveSession", ctx, "user1").Return(activeSession("s1", "user1"), nil)
		cartRepo.On("RemoveProduct", ctx, "s1", "p1").Return(int64(0), nil)

		_, err := uc.RemoveFromCart(ctx, "user1", "p1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not in the cart")
	})
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-storefront-backend/internal/domain"
	"go-storefront-backend/internal/usecase"
)

func TestCreateAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("Should force the first address to be primary", func(t *testing.T) {
		repo := new(MockAddressRepo)
		uc := usecase.NewAddressUsecase(repo)

		repo.On("CountByUser", ctx, "user1").Return(int64(0), nil)
		repo.On("Create", ctx, mock.MatchedBy(func(a *domain.Address) bool {
			return a.IsPrimary && a.UserID == "user1" && a.ID != ""
		})).Return(nil)

		err := uc.CreateAddress(ctx, "user1", &domain.Address{Street: "12 Allen Avenue", IsPrimary: false})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should keep later addresses non-primary unless requested", func(t *testing.T) {
		repo := new(MockAddressRepo)
		uc := usecase.NewAddressUsecase(repo)

		repo.On("CountByUser", ctx, "user1").Return(int64(2), nil)
		repo.On("Create", ctx, mock.MatchedBy(func(a *domain.Address) bool {
			return !a.IsPrimary
		})).Return(nil)

		err := uc.CreateAddress(ctx, "user1", &domain.Address{Street: "3 Marina Road"})
		assert.NoError(t, err)
	})
}

func TestSetPrimaryAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("Should swap primary through the repository transaction", func(t *testing.T) {
		repo := new(MockAddressRepo)
		uc := usecase.NewAddressUsecase(repo)

		repo.On("GetByID", ctx, "a2").Return(&domain.Address{ID: "a2", UserID: "user1"}, nil)
		repo.On("SetPrimary", ctx, "user1", "a2").Return(nil)

		err := uc.SetPrimaryAddress(ctx, "user1", "a2")
		assert.NoError(t, err)
		repo.AssertCalled(t, "SetPrimary", ctx, "user1", "a2")
	})

	t.Run("Should hide other users' addresses behind not found", func(t *testing.T) {
		repo := new(MockAddressRepo)
		uc := usecase.NewAddressUsecase(repo)

		repo.On("GetByID", ctx, "a9").Return(&domain.Address{ID: "a9", UserID: "someone-else"}, nil)

		err := uc.SetPrimaryAddress(ctx, "user1", "a9")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Address not found")
		repo.AssertNotCalled(t, "SetPrimary", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("Should preserve the stored primary flag", func(t *testing.T) {
		repo := new(MockAddressRepo)
		uc := usecase.NewAddressUsecase(repo)

		repo.On("GetByID", ctx, "a1").Return(&domain.Address{ID: "a1", UserID: "user1", IsPrimary: true}, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(a *domain.Address) bool {
			return a.IsPrimary // request tried to clear it
		})).Return(nil)

		err := uc.UpdateAddress(ctx, "user1", &domain.Address{ID: "a1", Street: "New Street", IsPrimary: false})
		assert.NoError(t, err)
	})
}

func TestDeleteAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse to delete an address the user does not own", func(t *testing.T) {
		repo := new(MockAddressRepo)
		uc := usecase.NewAddressUsecase(repo)

		repo.On("GetByID", ctx, "a1").Return(&domain.Address{ID: "a1", UserID: "other"}, nil)

		err := uc.DeleteAddress(ctx, "user1", "a1")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

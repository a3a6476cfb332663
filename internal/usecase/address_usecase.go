package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"go-storefront-backend/internal/domain"
	"go-storefront-backend/pkg/apperror"
)

type addressUsecase struct {
	addressRepo domain.AddressRepository
}

func NewAddressUsecase(addressRepo domain.AddressRepository) domain.AddressUsecase {
	return &addressUsecase{addressRepo: addressRepo}
}

func (u *addressUsecase) CreateAddress(ctx context.Context, userID string, a *domain.Address) error {
	a.ID = uuid.New().String()
	a.UserID = userID

	// The first address becomes primary no matter what the request
	// said, so checkout always has a default.
	count, err := u.addressRepo.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		a.IsPrimary = true
	}
	return u.addressRepo.Create(ctx, a)
}

func (u *addressUsecase) ListAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	return u.addressRepo.FetchByUser(ctx, userID)
}

func (u *addressUsecase) UpdateAddress(ctx context.Context, userID string, a *domain.Address) error {
	existing, err := u.ownedAddress(ctx, userID, a.ID)
	if err != nil {
		return err
	}
	a.UserID = userID
	// The primary flag is only changed through SetPrimaryAddress.
	a.IsPrimary = existing.IsPrimary
	return u.addressRepo.Update(ctx, a)
}

func (u *addressUsecase) SetPrimaryAddress(ctx context.Context, userID, addressID string) error {
	if _, err := u.ownedAddress(ctx, userID, addressID); err != nil {
		return err
	}
	return u.addressRepo.SetPrimary(ctx, userID, addressID)
}

func (u *addressUsecase) DeleteAddress(ctx context.Context, userID, addressID string) error {
	if _, err := u.ownedAddress(ctx, userID, addressID); err != nil {
		return err
	}
	return u.addressRepo.Delete(ctx, addressID)
}

func (u *addressUsecase) ownedAddress(ctx context.Context, userID, addressID string) (*domain.Address, error) {
	a, err := u.addressRepo.GetByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Address not found")
		}
		return nil, err
	}
	if a.UserID != userID {
		return nil, apperror.NotFound("Address not found")
	}
	return a, nil
}

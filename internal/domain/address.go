package domain

import "context"

// Address is a delivery address. At most one address per user is
// primary; the swap happens inside one transaction.
type Address struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Street    string  `json:"street"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Zip       string  `json:"zip"`
	Country   string  `json:"country"`
	Name      string  `json:"name"`
	PhoneNo   string  `json:"phone_no"`
	IsPrimary bool    `json:"is_primary"`
	Notes     *string `json:"notes"`
}

type AddressRepository interface {
	Create(ctx context.Context, a *Address) error
	GetByID(ctx context.Context, id string) (*Address, error)
	// FetchByUser returns the user's addresses ordered primary-first.
	FetchByUser(ctx context.Context, userID string) ([]Address, error)
	Update(ctx context.Context, a *Address) error
	// SetPrimary unsets the user's other primaries and sets the
	// target in one transaction.
	SetPrimary(ctx context.Context, userID, addressID string) error
	Delete(ctx context.Context, id string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type AddressUsecase interface {
	CreateAddress(ctx context.Context, userID string, a *Address) error
	ListAddresses(ctx context.Context, userID string) ([]Address, error)
	UpdateAddress(ctx context.Context, userID string, a *Address) error
	SetPrimaryAddress(ctx context.Context, userID, addressID string) error
	DeleteAddress(ctx context.Context, userID, addressID string) error
}

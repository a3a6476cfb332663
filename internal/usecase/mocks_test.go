package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"go-storefront-backend/internal/domain"
)

// Mock Repositories

type MockCartRepo struct {
	mock.Mock
}

func (m *MockCartRepo) GetOrCreateActiveSession(ctx context.Context, userID string) (*domain.ShoppingSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingSession), args.Error(1)
}

func (m *MockCartRepo) CloseActiveSession(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockCartRepo) FetchLines(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

func (m *MockCartRepo) MergeLine(ctx context.Context, sessionID string, key domain.LineKey, quantity int, priceSnapshot float64) error {
	return m.Called(ctx, sessionID, key, quantity, priceSnapshot).Error(0)
}

func (m *MockCartRepo) RemoveProduct(ctx context.Context, sessionID, productID string) (int64, error) {
	args := m.Called(ctx, sessionID, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartRepo) SetQuantityForProduct(ctx context.Context, sessionID, productID string, quantity int) (int64, error) {
	args := m.Called(ctx, sessionID, productID, quantity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartRepo) SetSavedForLater(ctx context.Context, sessionID, productID string, saved bool) (int64, error) {
	args := m.Called(ctx, sessionID, productID, saved)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartRepo) ClearActiveLines(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepo) GetManyByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.Product), args.Error(1)
}

func (m *MockProductRepo) Fetch(ctx context.Context, filter domain.ProductFilter, limit, offset int) ([]domain.Product, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepo) Update(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepo) UpdateImage(ctx context.Context, id, imageURL string) error {
	return m.Called(ctx, id, imageURL).Error(0)
}

func (m *MockProductRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepo) GetVariant(ctx context.Context, variantID string) (*domain.ProductVariant, error) {
	args := m.Called(ctx, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductVariant), args.Error(1)
}

type MockAddressRepo struct {
	mock.Mock
}

func (m *MockAddressRepo) Create(ctx context.Context, a *domain.Address) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAddressRepo) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *MockAddressRepo) FetchByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *MockAddressRepo) Update(ctx context.Context, a *domain.Address) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAddressRepo) SetPrimary(ctx context.Context, userID, addressID string) error {
	return m.Called(ctx, userID, addressID).Error(0)
}

func (m *MockAddressRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAddressRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) CreateWithItems(ctx context.Context, draft *domain.OrderDraft) (string, error) {
	args := m.Called(ctx, draft)
	return args.String(0), args.Error(1)
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id string) (*domain.OrderWithItems, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderWithItems), args.Error(1)
}

func (m *MockOrderRepo) FetchByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Order, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, paymentRef *string) error {
	return m.Called(ctx, id, status, paymentRef).Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) UpdateRole(ctx context.Context, id, role string) error {
	return m.Called(ctx, id, role).Error(0)
}

type MockPreferenceRepo struct {
	mock.Mock
}

func (m *MockPreferenceRepo) Get(ctx context.Context, userID string) (*domain.Preference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Preference), args.Error(1)
}

func (m *MockPreferenceRepo) Upsert(ctx context.Context, p *domain.Preference) error {
	return m.Called(ctx, p).Error(0)
}

type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) BumpDay(ctx context.Context, day time.Time, pageViews, orders int64, revenue float64) error {
	return m.Called(ctx, day, pageViews, orders, revenue).Error(0)
}

func (m *MockStatsRepo) FetchRange(ctx context.Context, from, to time.Time) ([]domain.DailyStat, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyStat), args.Error(1)
}

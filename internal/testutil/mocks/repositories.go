// Package mocks provides mock implementations of repository interfaces for testing.
// These mocks use testify/mock and can be used across all test packages.
package mocks

import (
	"context"

	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/repository/interfaces"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of interfaces.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Insert(ctx context.Context, id uuid.UUID, item models.User) error {
	args := m.Called(ctx, id, item)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, item models.User) error {
	args := m.Called(ctx, id, item)
	return args.Error(0)
}

func (m *MockUserRepository) Remove(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByField(ctx context.Context, field, value string) (*models.User, error) {
	args := m.Called(ctx, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindAllByField(ctx context.Context, field, value string) ([]interfaces.Identified[models.User], error) {
	args := m.Called(ctx, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.Identified[models.User]), args.Error(1)
}

func (m *MockUserRepository) Len(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) IsEmpty(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, email, password, givenName, familyName string) (*models.User, error) {
	args := m.Called(ctx, email, password, givenName, familyName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) VerifyUserEmail(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) DepositToUser(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.User, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) WithdrawFromUser(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.User, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserHolding(ctx context.Context, userID uuid.UUID, symbol string, delta int64, price decimal.Decimal) (*models.User, error) {
	args := m.Called(ctx, userID, symbol, delta, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockOrderRepository is a mock implementation of interfaces.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Insert(ctx context.Context, id uuid.UUID, item models.Order) error {
	args := m.Called(ctx, id, item)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, id uuid.UUID, item models.Order) error {
	args := m.Called(ctx, id, item)
	return args.Error(0)
}

func (m *MockOrderRepository) Remove(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByField(ctx context.Context, field, value string) (*models.Order, error) {
	args := m.Called(ctx, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllByField(ctx context.Context, field, value string) ([]interfaces.Identified[models.Order], error) {
	args := m.Called(ctx, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.Identified[models.Order]), args.Error(1)
}

func (m *MockOrderRepository) Len(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) IsEmpty(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrdersForUser(ctx context.Context, clientID uuid.UUID) ([]models.Order, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status string) ([]models.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

// MockSessionTokenRepository is a mock implementation of interfaces.SessionTokenRepository
type MockSessionTokenRepository struct {
	mock.Mock
}

func (m *MockSessionTokenRepository) Insert(ctx context.Context, id uuid.UUID, item models.SessionToken) error {
	args := m.Called(ctx, id, item)
	return args.Error(0)
}

func (m *MockSessionTokenRepository) Update(ctx context.Context, id uuid.UUID, item models.SessionToken) error {
	args := m.Called(ctx, id, item)
	return args.Error(0)
}

func (m *MockSessionTokenRepository) Remove(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionTokenRepository) Get(ctx context.Context, id uuid.UUID) (*models.SessionToken, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionToken), args.Error(1)
}

func (m *MockSessionTokenRepository) FindByField(ctx context.Context, field, value string) (*models.SessionToken, error) {
	args := m.Called(ctx, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionToken), args.Error(1)
}

func (m *MockSessionTokenRepository) FindAllByField(ctx context.Context, field, value string) ([]interfaces.Identified[models.SessionToken], error) {
	args := m.Called(ctx, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.Identified[models.SessionToken]), args.Error(1)
}

func (m *MockSessionTokenRepository) Len(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockSessionTokenRepository) IsEmpty(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.SessionToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionToken), args.Error(1)
}

func (m *MockSessionTokenRepository) GetActiveSessionsByUserID(ctx context.Context, userID uuid.UUID) ([]models.SessionToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SessionToken), args.Error(1)
}

func (m *MockSessionTokenRepository) RevokeByTokenHash(ctx context.Context, tokenHash, reason string) error {
	args := m.Called(ctx, tokenHash, reason)
	return args.Error(0)
}

func (m *MockSessionTokenRepository) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID, reason string) error {
	args := m.Called(ctx, userID, reason)
	return args.Error(0)
}

func (m *MockSessionTokenRepository) DeleteExpiredTokens(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

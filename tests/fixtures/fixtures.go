package fixtures

import (
	"context"

	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/repository/interfaces"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserFixture provides test user creation with sensible defaults.
type UserFixture struct {
	Email      string
	Password   string
	GivenName  string
	FamilyName string
}

// DefaultUser returns a user fixture with default values.
func DefaultUser() *UserFixture {
	id := uuid.New()
	return &UserFixture{
		Email:      "test-" + id.String()[:8] + "@example.com",
		Password:   "correct-horse-battery-staple",
		GivenName:  "Test",
		FamilyName: "User",
	}
}

// WithEmail sets a custom email.
func (u *UserFixture) WithEmail(email string) *UserFixture {
	u.Email = email
	return u
}

// WithPassword sets a custom password.
func (u *UserFixture) WithPassword(password string) *UserFixture {
	u.Password = password
	return u
}

// Create persists the user through the given repository.
func (u *UserFixture) Create(ctx context.Context, repo interfaces.UserRepository) (*models.User, error) {
	return repo.CreateUser(ctx, u.Email, u.Password, u.GivenName, u.FamilyName)
}

// OrderFixture provides test order creation with sensible defaults.
type OrderFixture struct {
	ClientID uuid.UUID
	Symbol   string
	Quantity uint64
	Side     models.OrderSide
	Type     models.OrderType
}

// DefaultOrder returns a market buy order fixture for the given client.
func DefaultOrder(clientID uuid.UUID) *OrderFixture {
	return &OrderFixture{
		ClientID: clientID,
		Symbol:   "AAPL",
		Quantity: 10,
		Side:     models.OrderSideBuy,
		Type:     models.NewMarketOrder(),
	}
}

// WithSymbol sets a custom symbol.
func (o *OrderFixture) WithSymbol(symbol string) *OrderFixture {
	o.Symbol = symbol
	return o
}

// WithQuantity sets a custom quantity.
func (o *OrderFixture) WithQuantity(quantity uint64) *OrderFixture {
	o.Quantity = quantity
	return o
}

// WithSide sets a custom side.
func (o *OrderFixture) WithSide(side models.OrderSide) *OrderFixture {
	o.Side = side
	return o
}

// WithLimitPrice switches the order to a limit order at the given price.
func (o *OrderFixture) WithLimitPrice(price decimal.Decimal) *OrderFixture {
	o.Type = models.NewLimitOrder(price)
	return o
}

// Create persists the order through the given repository.
func (o *OrderFixture) Create(ctx context.Context, repo interfaces.OrderRepository) (*models.Order, error) {
	return repo.CreateOrder(ctx, models.Order{
		ClientID: o.ClientID,
		Symbol:   o.Symbol,
		Quantity: o.Quantity,
		Side:     o.Side,
		Type:     o.Type,
	})
}

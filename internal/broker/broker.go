// Package broker implements the single submission/read entry point in
// front of the pre-trade validator, the order repository, and the
// worker pool: create an order, cancel one, or read back order state and
// pool diagnostics.
package broker

import (
	"context"

	"github.com/brokerx/engine/internal/engine"
	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/pretrade"
	"github.com/brokerx/engine/internal/repository/interfaces"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Broker is the facade the HTTP layer talks to. It never mutates state
// directly except by delegating to the order/user repositories and the
// worker pool.
type Broker struct {
	orderRepo interfaces.OrderRepository
	userRepo  interfaces.UserRepository
	validator *pretrade.Validator
	pool      *engine.Pool
}

func New(orderRepo interfaces.OrderRepository, userRepo interfaces.UserRepository, validator *pretrade.Validator, pool *engine.Pool) *Broker {
	return &Broker{orderRepo: orderRepo, userRepo: userRepo, validator: validator, pool: pool}
}

// Start releases the worker pool's goroutines.
func (b *Broker) Start(ctx context.Context) {
	b.pool.Start(ctx)
}

// Stop drains the worker pool before returning.
func (b *Broker) Stop() {
	b.pool.Stop()
}

// CreateOrder runs pre-trade validation against the user's current
// balance, then inserts the order and enqueues it for the worker pool. A
// missing user is treated as balance zero for validation purposes; a
// truly-absent user fails cleanly downstream at fill time.
func (b *Broker) CreateOrder(ctx context.Context, clientID uuid.UUID, symbol string, quantity uint64, side models.OrderSide, orderType models.OrderType) (*models.Order, error) {
	balance := decimal.Zero
	if user, err := b.userRepo.Get(ctx, clientID); err != nil {
		return nil, err
	} else if user != nil {
		balance = user.Balance
	}

	if err := b.validator.Validate(side, orderType, symbol, quantity, balance); err != nil {
		return nil, err
	}

	order := models.Order{
		ClientID: clientID,
		Symbol:   symbol,
		Quantity: quantity,
		Side:     side,
		Type:     orderType,
	}
	created, err := b.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	b.pool.Enqueue(created.ID)
	return created, nil
}

// CancelOrder delegates to the pool's cancel entry point.
func (b *Broker) CancelOrder(ctx context.Context, id uuid.UUID) error {
	return b.pool.CancelOrder(ctx, id)
}

func (b *Broker) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return b.orderRepo.Get(ctx, id)
}

func (b *Broker) GetOrdersForUser(ctx context.Context, clientID uuid.UUID) ([]models.Order, error) {
	return b.orderRepo.GetOrdersForUser(ctx, clientID)
}

// QueueDiagnostics returns queue length, worker count, and per-status
// order counts, consumed by the health/diagnostics HTTP handlers and the
// monitoring dashboard.
func (b *Broker) QueueDiagnostics(ctx context.Context) (engine.Diagnostics, error) {
	return b.pool.QueueDiagnostics(ctx)
}

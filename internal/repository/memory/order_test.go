package memory

import (
	"context"
	"testing"
	"time"

	"github.com/brokerx/engine/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder_AssignsIDAndQueuedStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	clientID := uuid.New()

	order, err := repo.CreateOrder(ctx, models.Order{
		ClientID: clientID,
		Symbol:   "AAPL",
		Quantity: 10,
		Side:     models.OrderSideBuy,
		Type:     models.NewMarketOrder(),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, models.StatusQueued, order.Status)
	assert.Nil(t, order.StatusDate)
	assert.False(t, order.SubmittedAt.IsZero())
}

func TestGetOrdersForUser_OrderedBySubmissionDescending(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	clientID := uuid.New()

	first, err := repo.CreateOrder(ctx, models.Order{ClientID: clientID, Symbol: "AAPL", Quantity: 1, Side: models.OrderSideBuy, Type: models.NewMarketOrder()})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := repo.CreateOrder(ctx, models.Order{ClientID: clientID, Symbol: "MSFT", Quantity: 2, Side: models.OrderSideBuy, Type: models.NewMarketOrder()})
	require.NoError(t, err)

	orders, err := repo.GetOrdersForUser(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestGetOrdersForUser_OnlyReturnsMatchingClient(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	clientA := uuid.New()
	clientB := uuid.New()

	_, err := repo.CreateOrder(ctx, models.Order{ClientID: clientA, Symbol: "AAPL", Quantity: 1, Side: models.OrderSideBuy, Type: models.NewMarketOrder()})
	require.NoError(t, err)
	_, err = repo.CreateOrder(ctx, models.Order{ClientID: clientB, Symbol: "AAPL", Quantity: 1, Side: models.OrderSideBuy, Type: models.NewMarketOrder()})
	require.NoError(t, err)

	orders, err := repo.GetOrdersForUser(ctx, clientA)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestFindByStatus_ReturnsOnlyMatching(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	clientID := uuid.New()

	queued, err := repo.CreateOrder(ctx, models.Order{ClientID: clientID, Symbol: "AAPL", Quantity: 1, Side: models.OrderSideBuy, Type: models.NewMarketOrder()})
	require.NoError(t, err)

	filled, err := repo.CreateOrder(ctx, models.Order{ClientID: clientID, Symbol: "MSFT", Quantity: 1, Side: models.OrderSideBuy, Type: models.NewMarketOrder()})
	require.NoError(t, err)
	filled.TransitionTo(models.StatusFilled, time.Now())
	require.NoError(t, repo.Update(ctx, filled.ID, *filled))

	queuedOrders, err := repo.FindByStatus(ctx, models.StatusQueued)
	require.NoError(t, err)
	require.Len(t, queuedOrders, 1)
	assert.Equal(t, queued.ID, queuedOrders[0].ID)

	filledOrders, err := repo.FindByStatus(ctx, models.StatusFilled)
	require.NoError(t, err)
	require.Len(t, filledOrders, 1)
	assert.Equal(t, filled.ID, filledOrders[0].ID)
}

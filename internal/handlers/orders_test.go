package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brokerx/engine/internal/broker"
	"github.com/brokerx/engine/internal/engine"
	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/pretrade"
	"github.com/brokerx/engine/internal/repository/interfaces"
	"github.com/brokerx/engine/internal/repository/memory"
	"github.com/brokerx/engine/internal/validators"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderTestFixture struct {
	handler   *OrderHandler
	broker    *broker.Broker
	orderRepo interfaces.OrderRepository
	userRepo  interfaces.UserRepository
}

func newOrderTestFixture(t *testing.T) *orderTestFixture {
	t.Helper()
	ctx := context.Background()
	orderRepo := memory.NewOrderRepository()
	userRepo := memory.NewUserRepository()
	pool, err := engine.New(ctx, orderRepo, userRepo, engine.DefaultPriceSource(), 1)
	require.NoError(t, err)
	b := broker.New(orderRepo, userRepo, pretrade.WithDefaultConfig(), pool)
	return &orderTestFixture{
		handler:   NewOrderHandler(b, validators.New()),
		broker:    b,
		orderRepo: orderRepo,
		userRepo:  userRepo,
	}
}

func (f *orderTestFixture) fundedUser(t *testing.T, email string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	user, err := f.userRepo.CreateUser(ctx, email, "correct-horse-battery", "A", "B")
	require.NoError(t, err)
	_, err = f.userRepo.DepositToUser(ctx, user.ID, decimal.RequireFromString("10000"))
	require.NoError(t, err)
	return user.ID
}

func TestCreateOrder_InsufficientBalanceReturns400(t *testing.T) {
	f := newOrderTestFixture(t)

	req := requestWithIDParam(http.MethodPost, "/api/v1/orders", "", models.CreateOrderRequest{
		ClientID: uuid.New().String(), Symbol: "AAPL", Quantity: 1,
		Side: models.OrderSideBuy, Type: models.NewMarketOrder(),
	})
	rec := httptest.NewRecorder()
	f.handler.CreateOrder(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_ValidOrderReturns201(t *testing.T) {
	f := newOrderTestFixture(t)
	clientID := f.fundedUser(t, "buyer@example.com")

	req := requestWithIDParam(http.MethodPost, "/api/v1/orders", "", models.CreateOrderRequest{
		ClientID: clientID.String(), Symbol: "AAPL", Quantity: 1,
		Side: models.OrderSideBuy, Type: models.NewMarketOrder(),
	})
	rec := httptest.NewRecorder()
	f.handler.CreateOrder(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateOrder_InvalidClientIDReturns400(t *testing.T) {
	f := newOrderTestFixture(t)

	req := requestWithIDParam(http.MethodPost, "/api/v1/orders", "", models.CreateOrderRequest{
		ClientID: "not-a-uuid", Symbol: "AAPL", Quantity: 1,
		Side: models.OrderSideBuy, Type: models.NewMarketOrder(),
	})
	rec := httptest.NewRecorder()
	f.handler.CreateOrder(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_ZeroQuantityReturns400(t *testing.T) {
	f := newOrderTestFixture(t)

	req := requestWithIDParam(http.MethodPost, "/api/v1/orders", "", models.CreateOrderRequest{
		ClientID: uuid.New().String(), Symbol: "AAPL", Quantity: 0,
		Side: models.OrderSideBuy, Type: models.NewMarketOrder(),
	})
	rec := httptest.NewRecorder()
	f.handler.CreateOrder(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_UnknownIDReturns404(t *testing.T) {
	f := newOrderTestFixture(t)

	req := requestWithIDParam(http.MethodGet, "/api/v1/orders/"+uuid.New().String(), uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	f.handler.GetOrder(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelOrder_UnknownIDReturns404(t *testing.T) {
	f := newOrderTestFixture(t)

	req := requestWithIDParam(http.MethodDelete, "/api/v1/orders/"+uuid.New().String(), uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	f.handler.CancelOrder(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelOrder_AlreadyTerminalReturns409(t *testing.T) {
	f := newOrderTestFixture(t)
	ctx := context.Background()
	clientID := f.fundedUser(t, "terminal@example.com")

	order, err := f.orderRepo.CreateOrder(ctx, models.Order{
		ClientID: clientID, Symbol: "AAPL", Quantity: 1,
		Side: models.OrderSideBuy, Type: models.NewMarketOrder(),
	})
	require.NoError(t, err)
	order.TransitionTo(models.StatusFilled, time.Now())
	require.NoError(t, f.orderRepo.Update(ctx, order.ID, *order))

	req := requestWithIDParam(http.MethodDelete, "/api/v1/orders/"+order.ID.String(), order.ID.String(), nil)
	rec := httptest.NewRecorder()
	f.handler.CancelOrder(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateOrder_NonCancelStatusReturns400(t *testing.T) {
	f := newOrderTestFixture(t)
	ctx := context.Background()
	clientID := f.fundedUser(t, "updater@example.com")

	order, err := f.orderRepo.CreateOrder(ctx, models.Order{
		ClientID: clientID, Symbol: "AAPL", Quantity: 1,
		Side: models.OrderSideBuy, Type: models.NewMarketOrder(),
	})
	require.NoError(t, err)

	status := models.StatusFilled
	req := requestWithIDParam(http.MethodPut, "/api/v1/orders/"+order.ID.String(), order.ID.String(),
		models.UpdateOrderRequest{Status: &status})
	rec := httptest.NewRecorder()
	f.handler.UpdateOrder(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrdersForUser_ReturnsOrdersAndTotal(t *testing.T) {
	f := newOrderTestFixture(t)
	ctx := context.Background()
	clientID := f.fundedUser(t, "lister@example.com")

	_, err := f.orderRepo.CreateOrder(ctx, models.Order{
		ClientID: clientID, Symbol: "AAPL", Quantity: 1,
		Side: models.OrderSideBuy, Type: models.NewMarketOrder(),
	})
	require.NoError(t, err)

	req := requestWithIDParam(http.MethodGet, "/api/v1/users/"+clientID.String()+"/orders", clientID.String(), nil)
	rec := httptest.NewRecorder()
	f.handler.GetOrdersForUser(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Orders []models.Order `json:"orders"`
			Total  int            `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.Total)
}

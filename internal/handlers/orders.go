package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/brokerx/engine/internal/broker"
	"github.com/brokerx/engine/internal/engine"
	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/pretrade"
	"github.com/brokerx/engine/internal/validators"
	"github.com/brokerx/engine/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type OrderHandler struct {
	broker    *broker.Broker
	validator *validators.Validator
}

func NewOrderHandler(b *broker.Broker, validator *validators.Validator) *OrderHandler {
	return &OrderHandler{broker: b, validator: validator}
}

// CreateOrder handles POST /api/v1/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON payload", err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatErrors(err))
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		response.BadRequest(w, "Invalid client ID", nil)
		return
	}

	order, err := h.broker.CreateOrder(r.Context(), clientID, req.Symbol, req.Quantity, req.Side, req.Type)
	if err != nil {
		if pretradeErr, ok := err.(*pretrade.Error); ok {
			response.BadRequest(w, pretradeErr.Error(), nil)
			return
		}
		log.Printf("create order for %s: %v", clientID, err)
		response.InternalServerError(w, "Failed to create order")
		return
	}

	response.Success(w, http.StatusCreated, order)
}

// GetOrder handles GET /api/v1/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid order ID", nil)
		return
	}

	order, err := h.broker.GetOrder(r.Context(), orderID)
	if err != nil {
		log.Printf("get order %s: %v", orderID, err)
		response.InternalServerError(w, "Failed to retrieve order")
		return
	}
	if order == nil {
		response.NotFound(w, "Order not found")
		return
	}

	response.Success(w, http.StatusOK, order)
}

// UpdateOrder handles PUT /api/v1/orders/{id}. Only a transition to
// Cancelled is accepted; any other or missing status is rejected with 400.
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid order ID", nil)
		return
	}

	var req models.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON payload", err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatErrors(err))
		return
	}

	if req.Status == nil || *req.Status != models.StatusCancelled {
		response.BadRequest(w, "Only a transition to Cancelled is supported", nil)
		return
	}

	h.cancel(w, r, orderID)
}

// CancelOrder handles DELETE /api/v1/orders/{id}; equivalent to
// UpdateOrder with {"status": "Cancelled"}.
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid order ID", nil)
		return
	}
	h.cancel(w, r, orderID)
}

func (h *OrderHandler) cancel(w http.ResponseWriter, r *http.Request, orderID uuid.UUID) {
	err := h.broker.CancelOrder(r.Context(), orderID)
	switch err {
	case nil:
		response.Success(w, http.StatusOK, map[string]interface{}{"message": "Order cancellation requested"})
	case engine.ErrOrderNotFound:
		response.NotFound(w, "Order not found")
	case engine.ErrCantCancel:
		response.Conflict(w, "Order cannot be cancelled from its current status", nil)
	default:
		log.Printf("cancel order %s: %v", orderID, err)
		response.InternalServerError(w, "Failed to cancel order")
	}
}

// GetOrdersForUser handles GET /api/v1/users/{id}/orders
func (h *OrderHandler) GetOrdersForUser(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID", nil)
		return
	}

	orders, err := h.broker.GetOrdersForUser(r.Context(), clientID)
	if err != nil {
		log.Printf("get orders for %s: %v", clientID, err)
		response.InternalServerError(w, "Failed to retrieve orders")
		return
	}

	response.Success(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  len(orders),
	})
}

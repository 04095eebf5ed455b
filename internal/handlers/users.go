package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/brokerx/engine/internal/ledger"
	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/services"
	"github.com/brokerx/engine/internal/validators"
	"github.com/brokerx/engine/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserHandler struct {
	userService *services.UserService
	validator   *validators.Validator
}

func NewUserHandler(userService *services.UserService, validator *validators.Validator) *UserHandler {
	return &UserHandler{userService: userService, validator: validator}
}

// GetUser handles GET /api/v1/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID", nil)
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		log.Printf("get user %s: %v", userID, err)
		response.InternalServerError(w, "Failed to retrieve user")
		return
	}
	if user == nil {
		response.NotFound(w, "User not found")
		return
	}

	response.Success(w, http.StatusOK, user)
}

// Deposit handles POST /api/v1/users/{id}/deposit
func (h *UserHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.adjustBalance(w, r, h.userService.Deposit)
}

// Withdraw handles POST /api/v1/users/{id}/withdraw
func (h *UserHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.adjustBalance(w, r, h.userService.Withdraw)
}

func (h *UserHandler) adjustBalance(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.User, error)) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID", nil)
		return
	}

	var req models.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON payload", err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatErrors(err))
		return
	}
	if !req.Amount.IsPositive() {
		response.BadRequest(w, "Amount must be greater than zero", nil)
		return
	}

	user, err := op(r.Context(), userID, req.Amount)
	if err != nil {
		switch err {
		case ledger.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case ledger.ErrInsufficientFunds:
			response.BadRequest(w, "Insufficient funds", nil)
		default:
			log.Printf("adjust balance for %s: %v", userID, err)
			response.InternalServerError(w, "Failed to update balance")
		}
		return
	}

	response.Success(w, http.StatusOK, user)
}

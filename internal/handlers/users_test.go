package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/repository/memory"
	"github.com/brokerx/engine/internal/services"
	"github.com/brokerx/engine/internal/validators"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requestWithIDParam(method, target, id string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetUser_UnknownIDReturns404(t *testing.T) {
	userRepo := memory.NewUserRepository()
	h := NewUserHandler(services.NewUserService(userRepo), validators.New())

	req := requestWithIDParam(http.MethodGet, "/api/v1/users/"+uuid.New().String(), uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	h.GetUser(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetUser_InvalidIDReturns400(t *testing.T) {
	userRepo := memory.NewUserRepository()
	h := NewUserHandler(services.NewUserService(userRepo), validators.New())

	req := requestWithIDParam(http.MethodGet, "/api/v1/users/bad", "not-a-uuid", nil)
	rec := httptest.NewRecorder()
	h.GetUser(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeposit_CreditsBalance(t *testing.T) {
	ctx := context.Background()
	userRepo := memory.NewUserRepository()
	h := NewUserHandler(services.NewUserService(userRepo), validators.New())

	user, err := userRepo.CreateUser(ctx, "depositor@example.com", "correct-horse-battery", "A", "B")
	require.NoError(t, err)

	req := requestWithIDParam(http.MethodPost, "/api/v1/users/"+user.ID.String()+"/deposit", user.ID.String(),
		models.AmountRequest{Amount: dec("100")})
	rec := httptest.NewRecorder()
	h.Deposit(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, dec("100").Equal(body.Data.Balance))
}

func TestDeposit_ZeroAmountReturns400(t *testing.T) {
	ctx := context.Background()
	userRepo := memory.NewUserRepository()
	h := NewUserHandler(services.NewUserService(userRepo), validators.New())

	user, err := userRepo.CreateUser(ctx, "zerodeposit@example.com", "correct-horse-battery", "A", "B")
	require.NoError(t, err)

	req := requestWithIDParam(http.MethodPost, "/api/v1/users/"+user.ID.String()+"/deposit", user.ID.String(),
		models.AmountRequest{Amount: dec("0")})
	rec := httptest.NewRecorder()
	h.Deposit(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWithdraw_InsufficientFundsReturns400(t *testing.T) {
	ctx := context.Background()
	userRepo := memory.NewUserRepository()
	h := NewUserHandler(services.NewUserService(userRepo), validators.New())

	user, err := userRepo.CreateUser(ctx, "poorwithdraw@example.com", "correct-horse-battery", "A", "B")
	require.NoError(t, err)

	req := requestWithIDParam(http.MethodPost, "/api/v1/users/"+user.ID.String()+"/withdraw", user.ID.String(),
		models.AmountRequest{Amount: dec("10")})
	rec := httptest.NewRecorder()
	h.Withdraw(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

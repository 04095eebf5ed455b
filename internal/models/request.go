package models

import "github.com/shopspring/decimal"

// RegisterRequest is the POST /api/v1/auth/register body.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	GivenName  string `json:"given_name" validate:"required"`
	FamilyName string `json:"family_name" validate:"required"`
}

// VerifyEmailRequest is the POST /api/v1/auth/verify-email body.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// LoginRequest is the POST /api/v1/auth/login body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AmountRequest is the body shared by deposit and withdraw endpoints.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// CreateOrderRequest is the POST /api/v1/orders body. OrderType accepts
// either the bare string "Market" or {"Limit": price}.
type CreateOrderRequest struct {
	ClientID string    `json:"client_id" validate:"required,uuid"`
	Symbol   string    `json:"symbol" validate:"required,uppercase"`
	Quantity uint64    `json:"quantity" validate:"required,gt=0"`
	Side     OrderSide `json:"order_side" validate:"required,oneof=Buy Sell"`
	Type     OrderType `json:"order_type" validate:"-"`
}

// UpdateOrderRequest is the PUT /api/v1/orders/{id} body; only a
// transition to Cancelled is semantically meaningful.
type UpdateOrderRequest struct {
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=Cancelled"`
}

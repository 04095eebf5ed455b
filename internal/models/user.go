package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is an account holder: identity, password hash, cash balance, and
// open positions. Balance and holdings are mutated exclusively through the
// ledger package, never by direct field assignment outside it.
type User struct {
	ID           uuid.UUID           `json:"id" db:"id"`
	Email        string              `json:"email" db:"email"`
	PasswordHash string              `json:"-" db:"password_hash"`
	GivenName    string              `json:"given_name" db:"given_name"`
	FamilyName   string              `json:"family_name" db:"family_name"`
	Balance      decimal.Decimal     `json:"balance" db:"balance"`
	IsVerified   bool                `json:"is_verified" db:"is_verified"`
	Holdings     map[string]Holding  `json:"holdings" db:"holdings"`
	CreatedAt    time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" db:"updated_at"`
}

// Holding is a user's open position in one symbol.
type Holding struct {
	Symbol      string          `json:"symbol"`
	Quantity    uint64          `json:"quantity"`
	AverageCost decimal.Decimal `json:"average_cost"`
	LastUpdated time.Time       `json:"last_updated"`
}

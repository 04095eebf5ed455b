package interfaces

import (
	"context"

	"github.com/brokerx/engine/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository layers the ledger's domain operations on top of the
// generic document store.
type UserRepository interface {
	Store[models.User]

	// CreateUser hashes password, rejects a duplicate email with
	// ledger.ErrUserAlreadyExists, and rejects passwords shorter than
	// ledger.MinPasswordLength with ledger.ErrWeakPassword.
	CreateUser(ctx context.Context, email, password, givenName, familyName string) (*models.User, error)

	// AuthenticateUser returns ledger.ErrUserNotFound, ErrNotVerified, or
	// ErrInvalidPassword as appropriate, or the user on success.
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)

	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyUserEmail(ctx context.Context, userID uuid.UUID) error

	// DepositToUser and WithdrawFromUser perform their read-mutate-write
	// sequence without an external lock; callers invoking them as part of
	// a larger serializable operation (the worker pool's fill step) must
	// hold the shared-state lock around the call themselves.
	DepositToUser(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.User, error)
	WithdrawFromUser(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.User, error)
	UpdateUserHolding(ctx context.Context, userID uuid.UUID, symbol string, delta int64, price decimal.Decimal) (*models.User, error)
}

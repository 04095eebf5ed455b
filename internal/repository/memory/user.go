package memory

import (
	"context"
	"time"

	"github.com/brokerx/engine/internal/ledger"
	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/repository/interfaces"
	"github.com/brokerx/engine/internal/security"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type userRepository struct {
	*Store[models.User]
}

// NewUserRepository returns an in-memory UserRepository.
func NewUserRepository() interfaces.UserRepository {
	return &userRepository{Store: NewStore[models.User]()}
}

func (r *userRepository) CreateUser(ctx context.Context, email, password, givenName, familyName string) (*models.User, error) {
	if existing, err := r.GetUserByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ledger.ErrUserAlreadyExists
	}
	if len(password) < ledger.MinPasswordLength {
		return nil, ledger.ErrWeakPassword
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, interfaces.NewStoreError("hash password", err)
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		GivenName:    givenName,
		FamilyName:   familyName,
		Balance:      decimal.Zero,
		IsVerified:   false,
		Holdings:     map[string]models.Holding{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := r.Insert(ctx, user.ID, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ledger.ErrUserNotFound
	}
	if !user.IsVerified {
		return nil, ledger.ErrNotVerified
	}
	if !ledger.VerifyPassword(user, password) {
		return nil, ledger.ErrInvalidPassword
	}
	return user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.FindByField(ctx, "email", email)
}

func (r *userRepository) VerifyUserEmail(ctx context.Context, userID uuid.UUID) error {
	user, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ledger.ErrUserNotFound
	}
	user.IsVerified = true
	user.UpdatedAt = time.Now()
	return r.Update(ctx, userID, *user)
}

func (r *userRepository) DepositToUser(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.User, error) {
	user, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ledger.ErrUserNotFound
	}
	ledger.Deposit(user, amount)
	user.UpdatedAt = time.Now()
	if err := r.Update(ctx, userID, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) WithdrawFromUser(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.User, error) {
	user, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ledger.ErrUserNotFound
	}
	if err := ledger.Withdraw(user, amount); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now()
	if err := r.Update(ctx, userID, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) UpdateUserHolding(ctx context.Context, userID uuid.UUID, symbol string, delta int64, price decimal.Decimal) (*models.User, error) {
	user, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ledger.ErrUserNotFound
	}
	ledger.UpdateHolding(user, symbol, delta, price)
	user.UpdatedAt = time.Now()
	if err := r.Update(ctx, userID, *user); err != nil {
		return nil, err
	}
	return user, nil
}

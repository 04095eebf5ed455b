package services

import (
	"context"

	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/repository/interfaces"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserService wraps the user repository's ledger operations for the HTTP
// layer: balance reads, deposits, and withdrawals.
type UserService struct {
	userRepo interfaces.UserRepository
}

func NewUserService(userRepo interfaces.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.Get(ctx, userID)
}

// Deposit credits amount to the user's balance. amount must be positive;
// the caller (the HTTP handler's own amount check) is responsible for rejecting
// non-positive amounts before this is reached.
func (s *UserService) Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.User, error) {
	return s.userRepo.DepositToUser(ctx, userID, amount)
}

// Withdraw debits amount from the user's balance, failing with
// ledger.ErrInsufficientFunds if the balance is too low.
func (s *UserService) Withdraw(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.User, error) {
	return s.userRepo.WithdrawFromUser(ctx, userID, amount)
}

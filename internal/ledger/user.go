package ledger

import (
	"time"

	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/security"
	"github.com/shopspring/decimal"
)

// Deposit increments the user's balance unconditionally. The caller is
// responsible for ensuring amount is positive.
func Deposit(u *models.User, amount decimal.Decimal) {
	u.Balance = u.Balance.Add(amount)
}

// Withdraw decrements the user's balance, failing with ErrInsufficientFunds
// rather than letting the balance go negative.
func Withdraw(u *models.User, amount decimal.Decimal) error {
	if u.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	u.Balance = u.Balance.Sub(amount)
	return nil
}

// UpdateHolding applies a signed quantity delta at the given price to the
// user's position in symbol. A positive delta is a buy: it creates the
// holding if absent, or recomputes the weighted average cost if present. A
// negative delta is a sell: quantity is reduced and the holding removed
// once it reaches zero. Average cost is never adjusted on a sell.
func UpdateHolding(u *models.User, symbol string, delta int64, price decimal.Decimal) {
	if u.Holdings == nil {
		u.Holdings = make(map[string]models.Holding)
	}
	now := time.Now()

	if delta > 0 {
		added := uint64(delta)
		existing, ok := u.Holdings[symbol]
		if !ok {
			u.Holdings[symbol] = models.Holding{
				Symbol:      symbol,
				Quantity:    added,
				AverageCost: price,
				LastUpdated: now,
			}
			return
		}
		oldQty := decimal.NewFromInt(int64(existing.Quantity))
		addedDec := decimal.NewFromInt(int64(added))
		newQty := existing.Quantity + added
		totalCost := existing.AverageCost.Mul(oldQty).Add(price.Mul(addedDec))
		u.Holdings[symbol] = models.Holding{
			Symbol:      symbol,
			Quantity:    newQty,
			AverageCost: totalCost.Div(decimal.NewFromInt(int64(newQty))),
			LastUpdated: now,
		}
		return
	}

	if delta < 0 {
		existing, ok := u.Holdings[symbol]
		if !ok {
			return
		}
		sold := uint64(-delta)
		if sold >= existing.Quantity {
			delete(u.Holdings, symbol)
			return
		}
		existing.Quantity -= sold
		existing.LastUpdated = now
		u.Holdings[symbol] = existing
	}
}

// VerifyPassword runs a constant-time comparison of candidate against the
// user's stored Argon2id hash.
func VerifyPassword(u *models.User, candidate string) bool {
	return security.VerifyPassword(candidate, u.PasswordHash)
}

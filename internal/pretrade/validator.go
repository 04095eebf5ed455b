// Package pretrade implements the stateless pre-trade risk checks every
// order must pass before it is accepted into the order-processing engine.
package pretrade

import (
	"github.com/brokerx/engine/internal/models"
	"github.com/shopspring/decimal"
)

// Validator is pure and reentrant: it never reads or writes persistent
// state, and identical inputs always yield identical outcomes.
type Validator struct {
	cfg Config
}

func New(cfg Config) *Validator {
	return &Validator{cfg: cfg}
}

func WithDefaultConfig() *Validator {
	return New(DefaultConfig())
}

// Validate runs the checks in the order the engine's external contract
// fixes, returning the first failure.
func (v *Validator) Validate(side models.OrderSide, orderType models.OrderType, symbol string, quantity uint64, userBalance decimal.Decimal) error {
	if quantity == 0 {
		return invalidQuantity()
	}

	if _, active := v.cfg.ActiveInstruments[symbol]; !active {
		return inactiveInstrument(symbol)
	}

	if quantity > v.cfg.MaxPositionSize {
		return exceedsPositionLimit(v.cfg.MaxPositionSize, quantity)
	}

	switch orderType.Kind {
	case models.OrderTypeLimit:
		return v.validateLimitPrice(symbol, orderType.Price, quantity, side, userBalance)
	case models.OrderTypeMarket:
		return v.validateMarket(symbol, quantity, side, userBalance)
	}
	return nil
}

func (v *Validator) validateLimitPrice(symbol string, price decimal.Decimal, quantity uint64, side models.OrderSide, userBalance decimal.Decimal) error {
	if band, ok := v.cfg.PriceBands[symbol]; ok {
		if price.LessThan(band.Min) || price.GreaterThan(band.Max) {
			return invalidPrice("price outside allowed band for " + symbol)
		}
	}

	if tick, ok := v.cfg.TickSizes[symbol]; ok && !tick.IsZero() {
		scale := decimal.NewFromInt(1).Div(tick)
		rounded := price.Mul(scale).Round(0)
		reconstructed := rounded.Div(scale)
		if !reconstructed.Equal(price) {
			return invalidTickSize(symbol, price, tick)
		}
	}

	notional := price.Mul(decimal.NewFromInt(int64(quantity)))
	if notional.GreaterThan(v.cfg.MaxNotionalPerOrder) {
		return exceedsNotionalLimit(v.cfg.MaxNotionalPerOrder, notional)
	}

	if side == models.OrderSideBuy && notional.GreaterThan(userBalance) {
		return insufficientBuyingPower(notional, userBalance)
	}
	return nil
}

func (v *Validator) validateMarket(symbol string, quantity uint64, side models.OrderSide, userBalance decimal.Decimal) error {
	estimated := v.cfg.estimatedPrice(symbol)
	notional := estimated.Mul(decimal.NewFromInt(int64(quantity)))

	if notional.GreaterThan(v.cfg.MaxNotionalPerOrder) {
		return exceedsNotionalLimit(v.cfg.MaxNotionalPerOrder, notional)
	}
	if side == models.OrderSideBuy && notional.GreaterThan(userBalance) {
		return insufficientBuyingPower(notional, userBalance)
	}
	return nil
}

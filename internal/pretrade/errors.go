package pretrade

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind discriminates the PreTradeError variants.
type Kind string

const (
	KindInvalidQuantity         Kind = "invalid_quantity"
	KindInactiveInstrument      Kind = "inactive_instrument"
	KindExceedsPositionLimit    Kind = "exceeds_position_limit"
	KindInvalidPrice            Kind = "invalid_price"
	KindInvalidTickSize         Kind = "invalid_tick_size"
	KindExceedsNotionalLimit    Kind = "exceeds_notional_limit"
	KindInsufficientBuyingPower Kind = "insufficient_buying_power"
)

// Error is the PreTradeError family: a single type carrying whichever
// payload its Kind calls for. Returned synchronously from the submission
// path; on any Error the order is neither written nor enqueued.
type Error struct {
	Kind           Kind
	Symbol         string
	Limit          uint64
	Requested      uint64
	Reason         string
	Price          decimal.Decimal
	TickSize       decimal.Decimal
	NotionalLimit  decimal.Decimal
	NotionalAmount decimal.Decimal
	Required       decimal.Decimal
	Available      decimal.Decimal
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidQuantity:
		return "invalid quantity: must be greater than 0"
	case KindInactiveInstrument:
		return fmt.Sprintf("instrument %s is not active", e.Symbol)
	case KindExceedsPositionLimit:
		return fmt.Sprintf("exceeds position limit: limit %d, requested %d", e.Limit, e.Requested)
	case KindInvalidPrice:
		return fmt.Sprintf("invalid price: %s", e.Reason)
	case KindInvalidTickSize:
		return fmt.Sprintf("invalid tick size for %s: price %s not aligned to tick size %s", e.Symbol, e.Price, e.TickSize)
	case KindExceedsNotionalLimit:
		return fmt.Sprintf("exceeds notional limit: limit $%s, requested $%s", e.NotionalLimit, e.NotionalAmount)
	case KindInsufficientBuyingPower:
		return fmt.Sprintf("insufficient buying power: required $%s, available $%s", e.Required, e.Available)
	default:
		return "pre-trade validation failed"
	}
}

func invalidQuantity() error { return &Error{Kind: KindInvalidQuantity} }

func inactiveInstrument(symbol string) error {
	return &Error{Kind: KindInactiveInstrument, Symbol: symbol}
}

func exceedsPositionLimit(limit, requested uint64) error {
	return &Error{Kind: KindExceedsPositionLimit, Limit: limit, Requested: requested}
}

func invalidPrice(reason string) error {
	return &Error{Kind: KindInvalidPrice, Reason: reason}
}

func invalidTickSize(symbol string, price, tick decimal.Decimal) error {
	return &Error{Kind: KindInvalidTickSize, Symbol: symbol, Price: price, TickSize: tick}
}

func exceedsNotionalLimit(limit, requested decimal.Decimal) error {
	return &Error{Kind: KindExceedsNotionalLimit, NotionalLimit: limit, NotionalAmount: requested}
}

func insufficientBuyingPower(required, available decimal.Decimal) error {
	return &Error{Kind: KindInsufficientBuyingPower, Required: required, Available: available}
}

package engine

import "github.com/shopspring/decimal"

// ExecutionPriceSource supplies the price a fill executes at. The core
// leaves this pluggable; tests and the default wiring use a fixed-table
// implementation, but a future venue-feed-backed implementation can
// satisfy the same interface without touching the worker pool.
type ExecutionPriceSource interface {
	ExecutionPrice(symbol string) decimal.Decimal
}

// FixedTablePriceSource returns a constant price per symbol, matching the
// pretrade validator's estimated-price table so a Market order's notional
// estimate and its eventual fill price agree.
type FixedTablePriceSource struct {
	prices       map[string]decimal.Decimal
	defaultPrice decimal.Decimal
}

func NewFixedTablePriceSource(prices map[string]decimal.Decimal, defaultPrice decimal.Decimal) *FixedTablePriceSource {
	return &FixedTablePriceSource{prices: prices, defaultPrice: defaultPrice}
}

func (s *FixedTablePriceSource) ExecutionPrice(symbol string) decimal.Decimal {
	if p, ok := s.prices[symbol]; ok {
		return p
	}
	return s.defaultPrice
}

// DefaultPriceSource reproduces the pretrade validator's default
// estimated-price table, so the wired-by-default pool and validator agree
// without requiring the caller to duplicate the table.
func DefaultPriceSource() *FixedTablePriceSource {
	return NewFixedTablePriceSource(map[string]decimal.Decimal{
		"AAPL":  decimal.RequireFromString("150"),
		"GOOGL": decimal.RequireFromString("2800"),
		"MSFT":  decimal.RequireFromString("420"),
		"TSLA":  decimal.RequireFromString("245"),
	}, decimal.RequireFromString("100"))
}

package pretrade

import "github.com/shopspring/decimal"

// PriceBand is an inclusive [min, max] range of admissible limit prices.
type PriceBand struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Config enumerates the rules the validator checks. It is constructed once
// at broker construction and never mutated afterward.
type Config struct {
	MaxPositionSize     uint64
	MaxNotionalPerOrder decimal.Decimal
	ActiveInstruments   map[string]struct{}
	TickSizes           map[string]decimal.Decimal
	PriceBands          map[string]PriceBand
	EstimatedPrices     map[string]decimal.Decimal
	DefaultEstimate     decimal.Decimal
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DefaultConfig mirrors the reference engine's fixed instrument universe:
// four large-cap symbols, a one-cent tick size on all of them, and a
// per-symbol price band and estimated price used for Market-order and
// tick-size checks.
func DefaultConfig() Config {
	return Config{
		MaxPositionSize:     10000,
		MaxNotionalPerOrder: dec("100000"),
		ActiveInstruments: map[string]struct{}{
			"AAPL": {}, "GOOGL": {}, "MSFT": {}, "TSLA": {},
		},
		TickSizes: map[string]decimal.Decimal{
			"AAPL": dec("0.01"), "GOOGL": dec("0.01"), "MSFT": dec("0.01"), "TSLA": dec("0.01"),
		},
		PriceBands: map[string]PriceBand{
			"AAPL":  {Min: dec("1"), Max: dec("1000")},
			"GOOGL": {Min: dec("1"), Max: dec("5000")},
			"MSFT":  {Min: dec("1"), Max: dec("1000")},
			"TSLA":  {Min: dec("1"), Max: dec("2000")},
		},
		EstimatedPrices: map[string]decimal.Decimal{
			"AAPL": dec("150.0"), "GOOGL": dec("2800.0"), "MSFT": dec("420.0"), "TSLA": dec("245.0"),
		},
		DefaultEstimate: dec("100.0"),
	}
}

func (c Config) estimatedPrice(symbol string) decimal.Decimal {
	if p, ok := c.EstimatedPrices[symbol]; ok {
		return p
	}
	return c.DefaultEstimate
}

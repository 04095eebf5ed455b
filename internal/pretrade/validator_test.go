package pretrade

import (
	"testing"

	"github.com/brokerx/engine/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dollars(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidate_ZeroQuantityRejected(t *testing.T) {
	v := WithDefaultConfig()
	err := v.Validate(models.OrderSideBuy, models.NewMarketOrder(), "AAPL", 0, dollars("1000000"))
	require.Error(t, err)
	assert.Equal(t, KindInvalidQuantity, err.(*Error).Kind)
}

func TestValidate_InactiveInstrumentRejected(t *testing.T) {
	v := WithDefaultConfig()
	err := v.Validate(models.OrderSideBuy, models.NewMarketOrder(), "NFLX", 1, dollars("1000000"))
	require.Error(t, err)
	assert.Equal(t, KindInactiveInstrument, err.(*Error).Kind)
}

func TestValidate_ExceedsPositionLimit(t *testing.T) {
	v := WithDefaultConfig()
	err := v.Validate(models.OrderSideBuy, models.NewMarketOrder(), "AAPL", 10001, dollars("10000000"))
	require.Error(t, err)
	assert.Equal(t, KindExceedsPositionLimit, err.(*Error).Kind)
}

func TestValidate_LimitPriceOutsideBand(t *testing.T) {
	v := WithDefaultConfig()
	err := v.Validate(models.OrderSideBuy, models.NewLimitOrder(dollars("5000")), "AAPL", 1, dollars("1000000"))
	require.Error(t, err)
	assert.Equal(t, KindInvalidPrice, err.(*Error).Kind)
}

func TestValidate_LimitPriceMisalignedTick(t *testing.T) {
	v := WithDefaultConfig()
	err := v.Validate(models.OrderSideBuy, models.NewLimitOrder(dollars("150.005")), "AAPL", 1, dollars("1000000"))
	require.Error(t, err)
	assert.Equal(t, KindInvalidTickSize, err.(*Error).Kind)
}

func TestValidate_LimitOrderExceedsNotionalLimit(t *testing.T) {
	v := WithDefaultConfig()
	err := v.Validate(models.OrderSideBuy, models.NewLimitOrder(dollars("900")), "AAPL", 200, dollars("100000000"))
	require.Error(t, err)
	assert.Equal(t, KindExceedsNotionalLimit, err.(*Error).Kind)
}

func TestValidate_BuyInsufficientBuyingPower(t *testing.T) {
	v := WithDefaultConfig()
	err := v.Validate(models.OrderSideBuy, models.NewLimitOrder(dollars("100")), "AAPL", 10, dollars("500"))
	require.Error(t, err)
	assert.Equal(t, KindInsufficientBuyingPower, err.(*Error).Kind)
}

func TestValidate_SellIgnoresBuyingPower(t *testing.T) {
	v := WithDefaultConfig()
	err := v.Validate(models.OrderSideSell, models.NewLimitOrder(dollars("100")), "AAPL", 10, decimal.Zero)
	assert.NoError(t, err)
}

func TestValidate_ValidLimitOrderPasses(t *testing.T) {
	v := WithDefaultConfig()
	err := v.Validate(models.OrderSideBuy, models.NewLimitOrder(dollars("150.00")), "AAPL", 10, dollars("5000"))
	assert.NoError(t, err)
}

func TestValidate_ValidMarketOrderPasses(t *testing.T) {
	v := WithDefaultConfig()
	err := v.Validate(models.OrderSideBuy, models.NewMarketOrder(), "GOOGL", 1, dollars("5000"))
	assert.NoError(t, err)
}

func TestValidate_MarketOrderUsesEstimatedPriceForNotional(t *testing.T) {
	v := WithDefaultConfig()
	// TSLA estimated price 245; 500 shares = $122,500 > MaxNotionalPerOrder (100000).
	err := v.Validate(models.OrderSideBuy, models.NewMarketOrder(), "TSLA", 500, dollars("10000000"))
	require.Error(t, err)
	assert.Equal(t, KindExceedsNotionalLimit, err.(*Error).Kind)
}

func TestError_MessagesAreDescriptive(t *testing.T) {
	cases := []*Error{
		{Kind: KindInvalidQuantity},
		{Kind: KindInactiveInstrument, Symbol: "NFLX"},
		{Kind: KindExceedsPositionLimit, Limit: 10, Requested: 20},
		{Kind: KindInvalidPrice, Reason: "too low"},
		{Kind: KindInvalidTickSize, Symbol: "AAPL", Price: dollars("1.005"), TickSize: dollars("0.01")},
		{Kind: KindExceedsNotionalLimit, NotionalLimit: dollars("100"), NotionalAmount: dollars("200")},
		{Kind: KindInsufficientBuyingPower, Required: dollars("100"), Available: dollars("50")},
	}
	for _, c := range cases {
		assert.NotEmpty(t, c.Error())
	}
}

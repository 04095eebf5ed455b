package ledger

import (
	"testing"

	"github.com/brokerx/engine/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDeposit_IncrementsBalance(t *testing.T) {
	u := &models.User{Balance: dec("100")}
	Deposit(u, dec("50"))
	assert.True(t, dec("150").Equal(u.Balance))
}

func TestWithdraw_DecrementsBalance(t *testing.T) {
	u := &models.User{Balance: dec("100")}
	err := Withdraw(u, dec("40"))
	require.NoError(t, err)
	assert.True(t, dec("60").Equal(u.Balance))
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	u := &models.User{Balance: dec("10")}
	err := Withdraw(u, dec("20"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, dec("10").Equal(u.Balance))
}

func TestUpdateHolding_BuyCreatesHolding(t *testing.T) {
	u := &models.User{}
	UpdateHolding(u, "AAPL", 10, dec("100"))

	h, ok := u.Holdings["AAPL"]
	require.True(t, ok)
	assert.Equal(t, uint64(10), h.Quantity)
	assert.True(t, dec("100").Equal(h.AverageCost))
}

func TestUpdateHolding_BuyRecomputesWeightedAverageCost(t *testing.T) {
	u := &models.User{}
	UpdateHolding(u, "AAPL", 10, dec("100"))
	UpdateHolding(u, "AAPL", 10, dec("200"))

	h := u.Holdings["AAPL"]
	assert.Equal(t, uint64(20), h.Quantity)
	// (10*100 + 10*200) / 20 = 150
	assert.True(t, dec("150").Equal(h.AverageCost))
}

func TestUpdateHolding_SellReducesQuantityWithoutChangingAverageCost(t *testing.T) {
	u := &models.User{}
	UpdateHolding(u, "AAPL", 10, dec("100"))
	UpdateHolding(u, "AAPL", -4, dec("999"))

	h := u.Holdings["AAPL"]
	assert.Equal(t, uint64(6), h.Quantity)
	assert.True(t, dec("100").Equal(h.AverageCost))
}

func TestUpdateHolding_SellToZeroRemovesHolding(t *testing.T) {
	u := &models.User{}
	UpdateHolding(u, "AAPL", 10, dec("100"))
	UpdateHolding(u, "AAPL", -10, dec("120"))

	_, ok := u.Holdings["AAPL"]
	assert.False(t, ok)
}

func TestUpdateHolding_SellOverQuantityRemovesHolding(t *testing.T) {
	u := &models.User{}
	UpdateHolding(u, "AAPL", 5, dec("100"))
	UpdateHolding(u, "AAPL", -10, dec("120"))

	_, ok := u.Holdings["AAPL"]
	assert.False(t, ok)
}

func TestUpdateHolding_SellOnMissingHoldingIsNoop(t *testing.T) {
	u := &models.User{}
	UpdateHolding(u, "AAPL", -5, dec("120"))
	assert.Empty(t, u.Holdings)
}

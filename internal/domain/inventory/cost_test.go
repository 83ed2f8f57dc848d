package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestAverageCost(t *testing.T) {
	got := AverageCost(decimal.NewFromInt(10), decimal.NewFromInt(2), decimal.NewFromInt(30), decimal.NewFromInt(4))
	assert.True(t, decimal.RequireFromString("3.5").Equal(got))

	assert.True(t, AverageCost(decimal.Zero, decimal.Zero, decimal.Zero, decimal.NewFromInt(9)).IsZero())
}

func TestEntryCost(t *testing.T) {
	total, avg, priced := EntryCost([]LineCost{
		{Quantity: 10, UnitCost: dec("2.50")},
		{Quantity: 5, UnitCost: nil},
		{Quantity: 30, UnitCost: dec("1.10")},
	})
	assert.True(t, priced)
	assert.Equal(t, "58", total.String())
	assert.Equal(t, "1.45", avg.String())
}

func TestEntryCost_SinCostos(t *testing.T) {
	total, _, priced := EntryCost([]LineCost{{Quantity: 3}})
	assert.False(t, priced)
	assert.True(t, total.IsZero())
}

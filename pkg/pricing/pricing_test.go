package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate_FreeShippingOverThreshold(t *testing.T) {
	b := Calculate([]LineItem{{Price: d("150.00"), Qty: 1}})

	assert.True(t, b.ItemsPrice.Equal(d("150.00")), b.ItemsPrice.String())
	assert.True(t, b.ShippingPrice.IsZero())
	assert.True(t, b.TaxPrice.Equal(d("22.50")), b.TaxPrice.String())
	assert.True(t, b.TotalPrice.Equal(d("172.50")), b.TotalPrice.String())
}

func TestCalculate_FlatShippingUnderThreshold(t *testing.T) {
	b := Calculate([]LineItem{{Price: d("20.00"), Qty: 2}})

	assert.True(t, b.ItemsPrice.Equal(d("40.00")))
	assert.True(t, b.ShippingPrice.Equal(d("10.00")))
	assert.True(t, b.TaxPrice.Equal(d("6.00")))
	assert.True(t, b.TotalPrice.Equal(d("56.00")))
}

func TestCalculate_ExactlyThresholdPaysShipping(t *testing.T) {
	b := Calculate([]LineItem{{Price: d("50"), Qty: 2}})

	assert.True(t, b.ItemsPrice.Equal(d("100")))
	assert.True(t, b.ShippingPrice.Equal(d("10")))
}

func TestCalculate_EmptyCart(t *testing.T) {
	b := Calculate(nil)

	assert.True(t, b.ItemsPrice.IsZero())
	assert.True(t, b.ShippingPrice.IsZero())
	assert.True(t, b.TaxPrice.IsZero())
	assert.True(t, b.TotalPrice.IsZero())
}

func TestCalculate_RoundsHalfUp(t *testing.T) {
	// 0.15 * 3.30 = 0.495 -> 0.50
	b := Calculate([]LineItem{{Price: d("1.10"), Qty: 3}})

	assert.True(t, b.ItemsPrice.Equal(d("3.30")))
	assert.True(t, b.TaxPrice.Equal(d("0.50")), b.TaxPrice.String())
	assert.True(t, b.TotalPrice.Equal(d("13.80")), b.TotalPrice.String())
}

func TestCalculate_TotalIsSumOfParts(t *testing.T) {
	carts := [][]LineItem{
		{{Price: d("89.99"), Qty: 1}},
		{{Price: d("599.99"), Qty: 2}, {Price: d("29.99"), Qty: 3}},
		{{Price: d("0.01"), Qty: 1}},
		{{Price: d("33.33"), Qty: 3}, {Price: d("0.34"), Qty: 1}},
		{{Price: d("100.01"), Qty: 1}},
	}

	for _, items := range carts {
		b := Calculate(items)
		sum := b.ItemsPrice.Add(b.ShippingPrice).Add(b.TaxPrice)
		assert.True(t, b.TotalPrice.Equal(sum), "total %s != %s", b.TotalPrice, sum)
		assert.Equal(t, b.ShippingPrice.IsZero(), b.ItemsPrice.GreaterThan(d("100")))
	}
}

func TestCalculator_CustomPolicy(t *testing.T) {
	c := Calculator{
		FreeShippingOver: d("50"),
		ShippingFee:      d("5"),
		TaxRate:          d("0.2"),
	}

	b := c.Calculate([]LineItem{{Price: d("10"), Qty: 1}})

	assert.True(t, b.ShippingPrice.Equal(d("5")))
	assert.True(t, b.TaxPrice.Equal(d("2")))
	assert.True(t, b.TotalPrice.Equal(d("17")))
	assert.True(t, b.Equal(c.Calculate([]LineItem{{Price: d("10"), Qty: 1}})))
}

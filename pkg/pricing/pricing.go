// pkg/pricing/pricing.go
package pricing

import (
	"github.com/shopspring/decimal"
)

// LineItem is the part of a cart row that affects the price.
type LineItem struct {
	Price decimal.Decimal `json:"price"`
	Qty   int             `json:"qty"`
}

// Breakdown holds the four amounts shown at checkout and stored on an order.
type Breakdown struct {
	ItemsPrice    decimal.Decimal `json:"itemsPrice"`
	ShippingPrice decimal.Decimal `json:"shippingPrice"`
	TaxPrice      decimal.Decimal `json:"taxPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}

// Calculator carries the shipping and tax policy.
// Shipping is free when the items total is strictly greater than FreeShippingOver.
type Calculator struct {
	FreeShippingOver decimal.Decimal
	ShippingFee      decimal.Decimal
	TaxRate          decimal.Decimal
}

// Default is the storefront policy: free shipping over 100, otherwise 10, 15% tax.
var Default = Calculator{
	FreeShippingOver: decimal.NewFromInt(100),
	ShippingFee:      decimal.NewFromInt(10),
	TaxRate:          decimal.RequireFromString("0.15"),
}

// Calculate prices items with the Default policy.
func Calculate(items []LineItem) Breakdown {
	return Default.Calculate(items)
}

func (c Calculator) Calculate(items []LineItem) Breakdown {
	if len(items) == 0 {
		return Breakdown{
			ItemsPrice:    decimal.Zero,
			ShippingPrice: decimal.Zero,
			TaxPrice:      decimal.Zero,
			TotalPrice:    decimal.Zero,
		}
	}

	itemsPrice := decimal.Zero
	for _, item := range items {
		itemsPrice = itemsPrice.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	itemsPrice = Round(itemsPrice)

	shippingPrice := c.ShippingFee
	if itemsPrice.GreaterThan(c.FreeShippingOver) {
		shippingPrice = decimal.Zero
	}
	shippingPrice = Round(shippingPrice)

	taxPrice := Round(itemsPrice.Mul(c.TaxRate))

	return Breakdown{
		ItemsPrice:    itemsPrice,
		ShippingPrice: shippingPrice,
		TaxPrice:      taxPrice,
		TotalPrice:    Round(itemsPrice.Add(shippingPrice).Add(taxPrice)),
	}
}

// Round rounds an amount to cents, halves away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Equal reports whether two breakdowns carry the same amounts.
func (b Breakdown) Equal(other Breakdown) bool {
	return b.ItemsPrice.Equal(other.ItemsPrice) &&
		b.ShippingPrice.Equal(other.ShippingPrice) &&
		b.TaxPrice.Equal(other.TaxPrice) &&
		b.TotalPrice.Equal(other.TotalPrice)
}

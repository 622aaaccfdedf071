// pkg/client/state/cart.go
package state

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/javajoker/storefront/pkg/client/api"
	"github.com/javajoker/storefront/pkg/pricing"
)

// CartItem is a product snapshot plus the wanted quantity.
type CartItem struct {
	Product      string          `json:"product"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Price        decimal.Decimal `json:"price"`
	CountInStock int             `json:"countInStock"`
	Qty          int             `json:"qty"`
}

type CartState struct {
	CartItems       []CartItem
	ShippingAddress api.ShippingAddress
	PaymentMethod   string
}

func (s *CartState) reduce(a Action) (bool, error) {
	switch a := a.(type) {
	case AddItem:
		if a.Qty < 1 || a.Qty > a.Product.CountInStock {
			return false, fmt.Errorf("%w: quantity must be between 1 and %d", ErrValidation, a.Product.CountInStock)
		}
		item := CartItem{
			Product:      a.Product.ID,
			Name:         a.Product.Name,
			Image:        a.Product.Image,
			Price:        a.Product.Price,
			CountInStock: a.Product.CountInStock,
			Qty:          a.Qty,
		}
		for i := range s.CartItems {
			if s.CartItems[i].Product == item.Product {
				s.CartItems[i] = item
				return true, nil
			}
		}
		s.CartItems = append(s.CartItems, item)
		return true, nil

	case RemoveItem:
		kept := make([]CartItem, 0, len(s.CartItems))
		for _, item := range s.CartItems {
			if item.Product != a.ProductID {
				kept = append(kept, item)
			}
		}
		s.CartItems = kept
		return true, nil

	case SaveShippingAddress:
		if !addressComplete(a.Address) {
			return false, fmt.Errorf("%w: address, city, postal code and country are required", ErrValidation)
		}
		s.ShippingAddress = a.Address
		return true, nil

	case SavePaymentMethod:
		method := strings.TrimSpace(a.Method)
		if method == "" {
			return false, fmt.Errorf("%w: payment method is required", ErrValidation)
		}
		s.PaymentMethod = method
		return true, nil

	case ClearItems:
		s.CartItems = []CartItem{}
		return true, nil
	}
	return false, nil
}

func addressComplete(a api.ShippingAddress) bool {
	for _, field := range []string{a.Address, a.City, a.PostalCode, a.Country} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

func (s CartState) LineItems() []pricing.LineItem {
	items := make([]pricing.LineItem, 0, len(s.CartItems))
	for _, item := range s.CartItems {
		items = append(items, pricing.LineItem{Price: item.Price, Qty: item.Qty})
	}
	return items
}

// Prices is the checkout summary of the cart.
func (s CartState) Prices() pricing.Breakdown {
	return pricing.Calculate(s.LineItems())
}

func (s CartState) ItemCount() int {
	n := 0
	for _, item := range s.CartItems {
		n += item.Qty
	}
	return n
}

// HasShippingAddress gates the payment step.
func (s CartState) HasShippingAddress() bool {
	return addressComplete(s.ShippingAddress)
}

// ReadyToOrder gates the place order step.
func (s CartState) ReadyToOrder() bool {
	return len(s.CartItems) > 0 && s.HasShippingAddress() && s.PaymentMethod != ""
}

func (s CartState) clone() CartState {
	items := make([]CartItem, len(s.CartItems))
	copy(items, s.CartItems)
	s.CartItems = items
	return s
}

// internal/models/order.go
package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/javajoker/storefront/pkg/pricing"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDelivered OrderStatus = "delivered"
)

type ShippingAddress struct {
	Address    string `json:"address" bson:"address" gorm:"size:255" validate:"required"`
	City       string `json:"city" bson:"city" gorm:"size:100" validate:"required"`
	PostalCode string `json:"postalCode" bson:"postalCode" gorm:"size:20" validate:"required"`
	Country    string `json:"country" bson:"country" gorm:"size:100" validate:"required"`
}

// PaymentResult is stored exactly as reported by the payment provider.
type PaymentResult struct {
	ID           string `json:"id" bson:"id" gorm:"size:255"`
	Status       string `json:"status" bson:"status" gorm:"size:50"`
	UpdateTime   string `json:"update_time" bson:"update_time" gorm:"size:50"`
	EmailAddress string `json:"email_address" bson:"email_address" gorm:"size:255"`
	Provider     string `json:"provider,omitempty" bson:"provider,omitempty" gorm:"size:20"`
}

// OrderItem is a copy of a cart row taken when the order is placed. Later
// catalog changes never touch it.
type OrderItem struct {
	ID      uint            `json:"-" bson:"-" gorm:"primaryKey"`
	OrderID string          `json:"-" bson:"-" gorm:"type:varchar(36);index;not null"`
	Product string          `json:"product" bson:"product" gorm:"column:product_id;type:varchar(36);not null"`
	Name    string          `json:"name" bson:"name" gorm:"size:255;not null"`
	Image   string          `json:"image" bson:"image" gorm:"size:512"`
	Price   decimal.Decimal `json:"price" bson:"price" gorm:"type:decimal(12,2);not null"`
	Qty     int             `json:"qty" bson:"qty" gorm:"not null"`
}

type Order struct {
	BaseModel       `bson:",inline"`
	UserID          string          `json:"user" bson:"user" gorm:"type:varchar(36);index;not null"`
	OrderItems      []OrderItem     `json:"orderItems" bson:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentMethod" gorm:"size:50;not null"`
	PaymentResult   PaymentResult   `json:"paymentResult" bson:"paymentResult" gorm:"embedded;embeddedPrefix:payment_"`
	ItemsPrice      decimal.Decimal `json:"itemsPrice" bson:"itemsPrice" gorm:"type:decimal(12,2);not null"`
	ShippingPrice   decimal.Decimal `json:"shippingPrice" bson:"shippingPrice" gorm:"type:decimal(12,2);not null"`
	TaxPrice        decimal.Decimal `json:"taxPrice" bson:"taxPrice" gorm:"type:decimal(12,2);not null"`
	TotalPrice      decimal.Decimal `json:"totalPrice" bson:"totalPrice" gorm:"type:decimal(12,2);not null"`
	IsPaid          bool            `json:"isPaid" bson:"isPaid" gorm:"not null;default:false"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	IsDelivered     bool            `json:"isDelivered" bson:"isDelivered" gorm:"not null;default:false"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`

	// Filled on read, never stored.
	Customer *UserSummary `json:"customer,omitempty" bson:"-" gorm:"-"`
}

// Status collapses the two independent flags into a display state.
// Delivery wins over payment because it is the later step in the normal flow.
func (o *Order) Status() OrderStatus {
	switch {
	case o.IsDelivered:
		return OrderStatusDelivered
	case o.IsPaid:
		return OrderStatusPaid
	default:
		return OrderStatusPlaced
	}
}

func (o *Order) OwnedBy(userID string) bool {
	return o.UserID == userID
}

func (o *Order) SetPrices(b pricing.Breakdown) {
	o.ItemsPrice = b.ItemsPrice
	o.ShippingPrice = b.ShippingPrice
	o.TaxPrice = b.TaxPrice
	o.TotalPrice = b.TotalPrice
}

func (o *Order) LineItems() []pricing.LineItem {
	items := make([]pricing.LineItem, 0, len(o.OrderItems))
	for _, it := range o.OrderItems {
		items = append(items, pricing.LineItem{Price: it.Price, Qty: it.Qty})
	}
	return items
}

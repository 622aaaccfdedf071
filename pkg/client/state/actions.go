// pkg/client/state/actions.go
package state

import (
	"github.com/javajoker/storefront/pkg/client/api"
)

// Action is a typed state change. Each slice reducer handles the actions
// it knows and ignores the rest.
type Action interface {
	Type() string
}

// Cart

type AddItem struct {
	Product api.Product
	Qty     int
}

type RemoveItem struct {
	ProductID string
}

type SaveShippingAddress struct {
	Address api.ShippingAddress
}

type SavePaymentMethod struct {
	Method string
}

// ClearItems empties the cart after an order was placed. The shipping
// address and payment method are kept for the next checkout.
type ClearItems struct{}

func (AddItem) Type() string             { return "cart/addItem" }
func (RemoveItem) Type() string          { return "cart/removeItem" }
func (SaveShippingAddress) Type() string { return "cart/saveShippingAddress" }
func (SavePaymentMethod) Type() string   { return "cart/savePaymentMethod" }
func (ClearItems) Type() string          { return "cart/clearItems" }

// User

type SetUserInfo struct {
	Info api.UserInfo
}

type ClearUserInfo struct{}

type SetUsers struct {
	Users []api.User
}

func (SetUserInfo) Type() string   { return "user/setUserInfo" }
func (ClearUserInfo) Type() string { return "user/logout" }
func (SetUsers) Type() string      { return "user/setUsers" }

// Product

type SetProductPage struct {
	Page api.ProductPage
}

type SetProduct struct {
	Product api.Product
}

type SetTopProducts struct {
	Products []api.Product
}

func (SetProductPage) Type() string { return "products/setPage" }
func (SetProduct) Type() string     { return "products/setProduct" }
func (SetTopProducts) Type() string { return "products/setTop" }

// Order

type SetOrder struct {
	Order api.Order
}

type SetMyOrders struct {
	Orders []api.Order
}

type SetOrderList struct {
	Orders []api.Order
}

func (SetOrder) Type() string     { return "order/setOrder" }
func (SetMyOrders) Type() string  { return "order/setMyOrders" }
func (SetOrderList) Type() string { return "order/setOrderList" }

// Request tracking

type RequestPending struct {
	Op string
}

type RequestFulfilled struct {
	Op string
}

type RequestRejected struct {
	Op    string
	Error string
}

func (RequestPending) Type() string   { return "request/pending" }
func (RequestFulfilled) Type() string { return "request/fulfilled" }
func (RequestRejected) Type() string  { return "request/rejected" }

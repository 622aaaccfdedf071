// pkg/client/state/slices.go
package state

import (
	"github.com/javajoker/storefront/pkg/client/api"
)

type UserState struct {
	UserInfo *api.UserInfo
	Users    []api.User
}

func (s *UserState) reduce(a Action) (bool, error) {
	switch a := a.(type) {
	case SetUserInfo:
		info := a.Info
		s.UserInfo = &info
	case ClearUserInfo:
		s.UserInfo = nil
		s.Users = nil
	case SetUsers:
		s.Users = a.Users
	default:
		return false, nil
	}
	return true, nil
}

type ProductState struct {
	Page    api.ProductPage
	Product *api.Product
	Top     []api.Product
}

func (s *ProductState) reduce(a Action) (bool, error) {
	switch a := a.(type) {
	case SetProductPage:
		s.Page = a.Page
	case SetProduct:
		p := a.Product
		s.Product = &p
	case SetTopProducts:
		s.Top = a.Products
	default:
		return false, nil
	}
	return true, nil
}

type OrderState struct {
	Order    *api.Order
	MyOrders []api.Order
	Orders   []api.Order
}

func (s *OrderState) reduce(a Action) (bool, error) {
	switch a := a.(type) {
	case SetOrder:
		o := a.Order
		s.Order = &o
	case SetMyOrders:
		s.MyOrders = a.Orders
	case SetOrderList:
		s.Orders = a.Orders
	case ClearUserInfo:
		s.Order = nil
		s.MyOrders = nil
		s.Orders = nil
	default:
		return false, nil
	}
	return true, nil
}

// Status of one asynchronous operation.
type Status string

const (
	StatusIdle      Status = ""
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusRejected  Status = "rejected"
)

type Request struct {
	Status Status
	Error  string
}

func (r Request) Loading() bool {
	return r.Status == StatusPending
}

type requestState map[string]Request

func (s requestState) reduce(a Action) (bool, error) {
	switch a := a.(type) {
	case RequestPending:
		s[a.Op] = Request{Status: StatusPending}
	case RequestFulfilled:
		s[a.Op] = Request{Status: StatusFulfilled}
	case RequestRejected:
		s[a.Op] = Request{Status: StatusRejected, Error: a.Error}
	default:
		return false, nil
	}
	return true, nil
}

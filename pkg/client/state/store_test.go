package state

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront/pkg/client/api"
)

func product(id, price string, stock int) api.Product {
	return api.Product{
		ID:           id,
		Name:         "Product " + id,
		Image:        "/images/" + id + ".jpg",
		Price:        decimal.RequireFromString(price),
		CountInStock: stock,
	}
}

var address = api.ShippingAddress{Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"}

func newStore(t *testing.T, storage Storage) *Store {
	t.Helper()
	s, err := NewStore(storage)
	require.NoError(t, err)
	return s
}

func TestCart_AddItemReplacesByProduct(t *testing.T) {
	s := newStore(t, NewMemoryStorage())

	require.NoError(t, s.Dispatch(AddItem{Product: product("p1", "20.00", 5), Qty: 2}))
	require.NoError(t, s.Dispatch(AddItem{Product: product("p2", "5.00", 5), Qty: 1}))
	require.NoError(t, s.Dispatch(AddItem{Product: product("p1", "20.00", 5), Qty: 3}))

	cart := s.State().Cart
	require.Len(t, cart.CartItems, 2)
	assert.Equal(t, "p1", cart.CartItems[0].Product)
	assert.Equal(t, 3, cart.CartItems[0].Qty)
	assert.Equal(t, 4, cart.ItemCount())

	// Adding the same line twice is the same as adding it once.
	before := s.State().Cart
	require.NoError(t, s.Dispatch(AddItem{Product: product("p1", "20.00", 5), Qty: 3}))
	assert.Equal(t, before.CartItems, s.State().Cart.CartItems)

	require.NoError(t, s.Dispatch(RemoveItem{ProductID: "p1"}))
	cart = s.State().Cart
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, "p2", cart.CartItems[0].Product)

	require.NoError(t, s.Dispatch(RemoveItem{ProductID: "unknown"}))
	assert.Len(t, s.State().Cart.CartItems, 1)
}

func TestCart_RejectedActionsLeaveStateUnchanged(t *testing.T) {
	storage := NewMemoryStorage()
	s := newStore(t, storage)
	require.NoError(t, s.Dispatch(AddItem{Product: product("p1", "20.00", 5), Qty: 2}))
	before := s.State()

	var notified int
	s.Subscribe(func(State, Action) { notified++ })

	for _, a := range []Action{
		AddItem{Product: product("p1", "20.00", 5), Qty: 0},
		AddItem{Product: product("p1", "20.00", 5), Qty: 6},
		SaveShippingAddress{Address: api.ShippingAddress{Address: "1 Main St", City: "Springfield"}},
		SavePaymentMethod{Method: "  "},
	} {
		err := s.Dispatch(a)
		assert.ErrorIs(t, err, ErrValidation, a.Type())
	}

	assert.Equal(t, before.Cart, s.State().Cart)
	assert.Zero(t, notified)
	assert.False(t, storage.Has(KeyUserInfo))
}

func TestCart_CheckoutSteps(t *testing.T) {
	s := newStore(t, NewMemoryStorage())
	require.NoError(t, s.Dispatch(AddItem{Product: product("p1", "20.00", 5), Qty: 2}))

	cart := s.State().Cart
	assert.False(t, cart.HasShippingAddress())
	assert.False(t, cart.ReadyToOrder())

	require.NoError(t, s.Dispatch(SaveShippingAddress{Address: address}))
	require.NoError(t, s.Dispatch(SavePaymentMethod{Method: " PayPal "}))

	cart = s.State().Cart
	assert.True(t, cart.ReadyToOrder())
	assert.Equal(t, "PayPal", cart.PaymentMethod)

	prices := cart.Prices()
	assert.Equal(t, "40.00", prices.ItemsPrice.StringFixed(2))
	assert.Equal(t, "10.00", prices.ShippingPrice.StringFixed(2))
	assert.Equal(t, "6.00", prices.TaxPrice.StringFixed(2))
	assert.Equal(t, "56.00", prices.TotalPrice.StringFixed(2))

	require.NoError(t, s.Dispatch(ClearItems{}))
	cart = s.State().Cart
	assert.Empty(t, cart.CartItems)
	assert.NotNil(t, cart.CartItems)
	assert.Equal(t, address, cart.ShippingAddress)
	assert.Equal(t, "PayPal", cart.PaymentMethod)
}

func TestStore_PersistsAndRehydrates(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewFileStorage(dir)
	require.NoError(t, err)

	s := newStore(t, storage)
	require.NoError(t, s.Dispatch(AddItem{Product: product("p1", "19.99", 5), Qty: 2}))
	require.NoError(t, s.Dispatch(SaveShippingAddress{Address: address}))
	require.NoError(t, s.Dispatch(SavePaymentMethod{Method: "Stripe"}))
	require.NoError(t, s.Dispatch(SetUserInfo{Info: api.UserInfo{ID: "u1", Name: "John", Token: "tok"}}))
	require.NoError(t, s.Dispatch(SetProductPage{Page: api.ProductPage{Page: 1, Pages: 1}}))

	reopened, err := NewFileStorage(dir)
	require.NoError(t, err)
	restored := newStore(t, reopened).State()

	require.Len(t, restored.Cart.CartItems, 1)
	assert.True(t, restored.Cart.CartItems[0].Price.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, 2, restored.Cart.CartItems[0].Qty)
	assert.Equal(t, address, restored.Cart.ShippingAddress)
	assert.Equal(t, "Stripe", restored.Cart.PaymentMethod)
	require.NotNil(t, restored.User.UserInfo)
	assert.Equal(t, "tok", restored.User.UserInfo.Token)
	// Only the cart and the session are durable.
	assert.Zero(t, restored.Product.Page.Page)

	require.NoError(t, s.Dispatch(ClearUserInfo{}))
	reopened, err = NewFileStorage(dir)
	require.NoError(t, err)
	restored = newStore(t, reopened).State()
	assert.Nil(t, restored.User.UserInfo)
	assert.Len(t, restored.Cart.CartItems, 1)
}

func TestStore_IgnoresSessionWithoutToken(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(KeyUserInfo, api.UserInfo{ID: "u1"}))

	s := newStore(t, storage)
	assert.Nil(t, s.State().User.UserInfo)
	assert.Empty(t, s.State().Cart.CartItems)
}

func TestStore_SubscribeAndRequests(t *testing.T) {
	s := newStore(t, NewMemoryStorage())

	var seen []string
	unsubscribe := s.Subscribe(func(st State, a Action) {
		seen = append(seen, a.Type())
	})

	require.NoError(t, s.Dispatch(RequestPending{Op: "user/login"}))
	assert.True(t, s.State().Request("user/login").Loading())

	require.NoError(t, s.Dispatch(RequestRejected{Op: "user/login", Error: "Invalid email or password"}))
	req := s.State().Request("user/login")
	assert.Equal(t, StatusRejected, req.Status)
	assert.Equal(t, "Invalid email or password", req.Error)
	assert.Equal(t, StatusIdle, s.State().Request("order/createOrder").Status)

	unsubscribe()
	require.NoError(t, s.Dispatch(RequestFulfilled{Op: "user/login"}))
	assert.Equal(t, []string{"request/pending", "request/rejected"}, seen)
}

func TestStore_StateIsACopy(t *testing.T) {
	s := newStore(t, NewMemoryStorage())
	require.NoError(t, s.Dispatch(AddItem{Product: product("p1", "1.00", 5), Qty: 1}))

	st := s.State()
	st.Cart.CartItems[0].Qty = 99
	st.Requests["x"] = Request{Status: StatusPending}

	assert.Equal(t, 1, s.State().Cart.CartItems[0].Qty)
	assert.NotContains(t, s.State().Requests, "x")
}

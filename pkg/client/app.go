// pkg/client/app.go
package client

import (
	"context"
	"errors"

	"github.com/javajoker/storefront/pkg/client/api"
	"github.com/javajoker/storefront/pkg/client/state"
)

// Operation names used to track request status in the store.
const (
	OpLogin          = "user/login"
	OpRegister       = "user/register"
	OpLogout         = "user/logout"
	OpUpdateProfile  = "user/updateProfile"
	OpListUsers      = "user/listUsers"
	OpUpdateUser     = "user/updateUser"
	OpDeleteUser     = "user/deleteUser"
	OpListProducts   = "products/listProducts"
	OpProductDetails = "products/listProductDetails"
	OpTopProducts    = "products/getTopProducts"
	OpCreateReview   = "products/createProductReview"
	OpCreateProduct  = "products/createProduct"
	OpUpdateProduct  = "products/updateProduct"
	OpDeleteProduct  = "products/deleteProduct"
	OpCreateOrder    = "order/createOrder"
	OpOrderDetails   = "order/getOrderDetails"
	OpPayOrder       = "order/payOrder"
	OpListMyOrders   = "order/listMyOrders"
	OpListOrders     = "order/listOrders"
	OpDeliverOrder   = "order/deliverOrder"
)

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrNotLoggedIn = errors.New("not logged in")
)

// App binds the REST client to a state store. Every call records its
// pending, fulfilled or rejected status under its operation name. Calls are
// neither cancelled nor de-duplicated; the last response wins.
type App struct {
	api   *api.Client
	store *state.Store
}

func NewApp(c *api.Client, store *state.Store) *App {
	if info := store.State().User.UserInfo; info != nil {
		c.SetToken(info.Token)
	}
	return &App{api: c, store: store}
}

func (a *App) Store() *state.Store {
	return a.store
}

// run records op as pending, calls fn and records the outcome. Errors from
// the store are joined into the returned error.
func (a *App) run(op string, fn func() error) error {
	if err := a.store.Dispatch(state.RequestPending{Op: op}); err != nil {
		return err
	}

	err := fn()
	if err == nil {
		return a.store.Dispatch(state.RequestFulfilled{Op: op})
	}

	// An invalid or expired session ends it. A rejected login says nothing
	// about the current session.
	if api.IsUnauthorized(err) && op != OpLogin && op != OpRegister {
		a.api.SetToken("")
		err = errors.Join(err, a.store.Dispatch(state.ClearUserInfo{}))
	}
	return errors.Join(err, a.store.Dispatch(state.RequestRejected{Op: op, Error: err.Error()}))
}

// Session

func (a *App) Login(ctx context.Context, email, password string) error {
	return a.run(OpLogin, func() error {
		info, err := a.api.Login(ctx, api.Credentials{Email: email, Password: password})
		if err != nil {
			return err
		}
		return a.startSession(info)
	})
}

func (a *App) Register(ctx context.Context, name, email, password string) error {
	return a.run(OpRegister, func() error {
		info, err := a.api.Register(ctx, api.Registration{Name: name, Email: email, Password: password})
		if err != nil {
			return err
		}
		return a.startSession(info)
	})
}

func (a *App) startSession(info *api.UserInfo) error {
	a.api.SetToken(info.Token)
	return a.store.Dispatch(state.SetUserInfo{Info: *info})
}

// Logout drops the session locally even when the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	return a.run(OpLogout, func() error {
		_ = a.api.Logout(ctx)
		a.api.SetToken("")
		return a.store.Dispatch(state.ClearUserInfo{})
	})
}

func (a *App) UpdateProfile(ctx context.Context, update api.ProfileUpdate) error {
	return a.run(OpUpdateProfile, func() error {
		user, err := a.api.UpdateProfile(ctx, update)
		if err != nil {
			return err
		}
		current := a.store.State().User.UserInfo
		if current == nil {
			return ErrNotLoggedIn
		}
		info := *current
		info.Name = user.Name
		info.Email = user.Email
		info.IsAdmin = user.IsAdmin
		return a.store.Dispatch(state.SetUserInfo{Info: info})
	})
}

// Catalog

func (a *App) ListProducts(ctx context.Context, q api.ProductQuery) error {
	return a.run(OpListProducts, func() error {
		page, err := a.api.ListProducts(ctx, q)
		if err != nil {
			return err
		}
		return a.store.Dispatch(state.SetProductPage{Page: *page})
	})
}

func (a *App) ProductDetails(ctx context.Context, id string) error {
	return a.run(OpProductDetails, func() error {
		product, err := a.api.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		return a.store.Dispatch(state.SetProduct{Product: *product})
	})
}

func (a *App) TopProducts(ctx context.Context) error {
	return a.run(OpTopProducts, func() error {
		products, err := a.api.TopProducts(ctx)
		if err != nil {
			return err
		}
		return a.store.Dispatch(state.SetTopProducts{Products: products})
	})
}

func (a *App) CreateReview(ctx context.Context, productID string, rating int, comment string) error {
	return a.run(OpCreateReview, func() error {
		return a.api.CreateReview(ctx, productID, rating, comment)
	})
}

// Cart

// AddToCart loads the current product so the cart keeps a fresh snapshot
// of its price and stock.
func (a *App) AddToCart(ctx context.Context, productID string, qty int) error {
	product, err := a.api.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	return a.store.Dispatch(state.AddItem{Product: *product, Qty: qty})
}

func (a *App) RemoveFromCart(productID string) error {
	return a.store.Dispatch(state.RemoveItem{ProductID: productID})
}

func (a *App) SaveShippingAddress(addr api.ShippingAddress) error {
	return a.store.Dispatch(state.SaveShippingAddress{Address: addr})
}

func (a *App) SavePaymentMethod(method string) error {
	return a.store.Dispatch(state.SavePaymentMethod{Method: method})
}

// Orders

// PlaceOrder submits the cart with the client's price summary and empties
// the cart once the server accepted the order.
func (a *App) PlaceOrder(ctx context.Context) (*api.Order, error) {
	var created *api.Order
	err := a.run(OpCreateOrder, func() error {
		cart := a.store.State().Cart
		if len(cart.CartItems) == 0 {
			return ErrEmptyCart
		}

		prices := cart.Prices()
		lines := make([]api.OrderLine, 0, len(cart.CartItems))
		for _, item := range cart.CartItems {
			lines = append(lines, api.OrderLine{Product: item.Product, Qty: item.Qty})
		}

		order, err := a.api.CreateOrder(ctx, api.NewOrder{
			OrderItems:      lines,
			ShippingAddress: cart.ShippingAddress,
			PaymentMethod:   cart.PaymentMethod,
			ItemsPrice:      prices.ItemsPrice,
			ShippingPrice:   prices.ShippingPrice,
			TaxPrice:        prices.TaxPrice,
			TotalPrice:      prices.TotalPrice,
		})
		if err != nil {
			return err
		}
		created = order

		if err := a.store.Dispatch(state.SetOrder{Order: *order}); err != nil {
			return err
		}
		return a.store.Dispatch(state.ClearItems{})
	})
	return created, err
}

func (a *App) OrderDetails(ctx context.Context, id string) error {
	return a.run(OpOrderDetails, func() error {
		order, err := a.api.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		return a.store.Dispatch(state.SetOrder{Order: *order})
	})
}

func (a *App) PayOrder(ctx context.Context, id string, result api.PaymentResult) error {
	return a.run(OpPayOrder, func() error {
		order, err := a.api.PayOrder(ctx, id, result)
		if err != nil {
			return err
		}
		return a.store.Dispatch(state.SetOrder{Order: *order})
	})
}

func (a *App) ListMyOrders(ctx context.Context) error {
	return a.run(OpListMyOrders, func() error {
		orders, err := a.api.MyOrders(ctx)
		if err != nil {
			return err
		}
		return a.store.Dispatch(state.SetMyOrders{Orders: orders})
	})
}

// Admin

func (a *App) ListOrders(ctx context.Context) error {
	return a.run(OpListOrders, func() error {
		orders, err := a.api.ListOrders(ctx)
		if err != nil {
			return err
		}
		return a.store.Dispatch(state.SetOrderList{Orders: orders})
	})
}

func (a *App) DeliverOrder(ctx context.Context, id string) error {
	return a.run(OpDeliverOrder, func() error {
		order, err := a.api.DeliverOrder(ctx, id)
		if err != nil {
			return err
		}
		return a.store.Dispatch(state.SetOrder{Order: *order})
	})
}

func (a *App) ListUsers(ctx context.Context) error {
	return a.run(OpListUsers, func() error {
		users, err := a.api.ListUsers(ctx)
		if err != nil {
			return err
		}
		return a.store.Dispatch(state.SetUsers{Users: users})
	})
}

func (a *App) UpdateUser(ctx context.Context, id string, update api.UserUpdate) error {
	return a.run(OpUpdateUser, func() error {
		_, err := a.api.UpdateUser(ctx, id, update)
		return err
	})
}

func (a *App) DeleteUser(ctx context.Context, id string) error {
	return a.run(OpDeleteUser, func() error {
		return a.api.DeleteUser(ctx, id)
	})
}

func (a *App) CreateProduct(ctx context.Context) (*api.Product, error) {
	var created *api.Product
	err := a.run(OpCreateProduct, func() error {
		product, err := a.api.CreateProduct(ctx)
		created = product
		return err
	})
	return created, err
}

func (a *App) UpdateProduct(ctx context.Context, id string, update api.ProductUpdate) error {
	return a.run(OpUpdateProduct, func() error {
		product, err := a.api.UpdateProduct(ctx, id, update)
		if err != nil {
			return err
		}
		return a.store.Dispatch(state.SetProduct{Product: *product})
	})
}

func (a *App) DeleteProduct(ctx context.Context, id string) error {
	return a.run(OpDeleteProduct, func() error {
		return a.api.DeleteProduct(ctx, id)
	})
}

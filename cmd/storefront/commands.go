// cmd/storefront/commands.go
package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/javajoker/storefront/pkg/client"
	"github.com/javajoker/storefront/pkg/client/api"
	"github.com/javajoker/storefront/pkg/client/state"
)

type command struct {
	app *client.App
	out io.Writer
}

func (c *command) run(ctx context.Context, name string, args []string) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	switch name {
	case "products":
		keyword := fs.StringP("keyword", "k", "", "name filter")
		page := fs.IntP("page", "p", 1, "page number")
		category := fs.String("category", "", "category id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := c.app.ListProducts(ctx, api.ProductQuery{Keyword: *keyword, Page: *page, Category: *category}); err != nil {
			return err
		}
		result := c.app.Store().State().Product.Page
		c.printProducts(result.Products)
		fmt.Fprintf(c.out, "page %d of %d\n", result.Page, result.Pages)
		return nil

	case "top":
		if err := c.app.TopProducts(ctx); err != nil {
			return err
		}
		c.printProducts(c.app.Store().State().Product.Top)
		return nil

	case "product":
		id, err := arg(args, 0, "product id")
		if err != nil {
			return err
		}
		if err := c.app.ProductDetails(ctx, id); err != nil {
			return err
		}
		p := c.app.Store().State().Product.Product
		fmt.Fprintf(c.out, "%s\n%s by %s\nprice %s  stock %d  rating %.1f (%d reviews)\n%s\n",
			p.Name, p.ID, p.Brand, p.Price.StringFixed(2), p.CountInStock, p.Rating, p.NumReviews, p.Description)
		for _, r := range p.Reviews {
			fmt.Fprintf(c.out, "  %d/5 %s: %s\n", r.Rating, r.Name, r.Comment)
		}
		return nil

	case "review":
		rating := fs.IntP("rating", "r", 0, "1 to 5")
		comment := fs.StringP("comment", "c", "", "review text")
		if err := fs.Parse(args); err != nil {
			return err
		}
		id, err := arg(fs.Args(), 0, "product id")
		if err != nil {
			return err
		}
		if err := c.app.CreateReview(ctx, id, *rating, *comment); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Review added")
		return nil

	case "register", "login":
		nameFlag := fs.StringP("name", "n", "", "display name")
		email := fs.StringP("email", "e", "", "email")
		password := fs.StringP("password", "p", "", "password")
		if err := fs.Parse(args); err != nil {
			return err
		}
		var err error
		if name == "register" {
			err = c.app.Register(ctx, *nameFlag, *email, *password)
		} else {
			err = c.app.Login(ctx, *email, *password)
		}
		if err != nil {
			return err
		}
		info := c.app.Store().State().User.UserInfo
		fmt.Fprintf(c.out, "Signed in as %s <%s>\n", info.Name, info.Email)
		return nil

	case "logout":
		if err := c.app.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Signed out")
		return nil

	case "cart":
		c.printCart(c.app.Store().State().Cart)
		return nil

	case "add":
		id, err := arg(args, 0, "product id")
		if err != nil {
			return err
		}
		qty := 1
		if len(args) > 1 {
			if qty, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
		}
		if err := c.app.AddToCart(ctx, id, qty); err != nil {
			return err
		}
		c.printCart(c.app.Store().State().Cart)
		return nil

	case "remove":
		id, err := arg(args, 0, "product id")
		if err != nil {
			return err
		}
		if err := c.app.RemoveFromCart(id); err != nil {
			return err
		}
		c.printCart(c.app.Store().State().Cart)
		return nil

	case "shipping":
		addr := api.ShippingAddress{}
		fs.StringVarP(&addr.Address, "address", "a", "", "street address")
		fs.StringVarP(&addr.City, "city", "c", "", "city")
		fs.StringVarP(&addr.PostalCode, "postal-code", "z", "", "postal code")
		fs.StringVarP(&addr.Country, "country", "n", "", "country")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return c.app.SaveShippingAddress(addr)

	case "payment":
		method, err := arg(args, 0, "payment method")
		if err != nil {
			return err
		}
		return c.app.SavePaymentMethod(method)

	case "place":
		cart := c.app.Store().State().Cart
		if !cart.HasShippingAddress() {
			return fmt.Errorf("set a shipping address first")
		}
		if cart.PaymentMethod == "" {
			return fmt.Errorf("choose a payment method first")
		}
		order, err := c.app.PlaceOrder(ctx)
		if err != nil {
			return err
		}
		c.printOrder(order)
		return nil

	case "orders":
		if err := c.app.ListMyOrders(ctx); err != nil {
			return err
		}
		w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tTOTAL\tPAID\tDELIVERED")
		for _, o := range c.app.Store().State().Order.MyOrders {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%t\n", o.ID, o.CreatedAt.Format("2006-01-02"), o.TotalPrice.StringFixed(2), o.IsPaid, o.IsDelivered)
		}
		return w.Flush()

	case "order":
		id, err := arg(args, 0, "order id")
		if err != nil {
			return err
		}
		if err := c.app.OrderDetails(ctx, id); err != nil {
			return err
		}
		c.printOrder(c.app.Store().State().Order.Order)
		return nil

	case "pay":
		result := api.PaymentResult{}
		fs.StringVar(&result.ID, "id", "", "payment id from the provider")
		fs.StringVar(&result.Status, "status", "COMPLETED", "payment status")
		fs.StringVar(&result.EmailAddress, "email", "", "payer email")
		fs.StringVar(&result.Provider, "provider", "", "paypal or stripe")
		if err := fs.Parse(args); err != nil {
			return err
		}
		id, err := arg(fs.Args(), 0, "order id")
		if err != nil {
			return err
		}
		if err := c.app.PayOrder(ctx, id, result); err != nil {
			return err
		}
		c.printOrder(c.app.Store().State().Order.Order)
		return nil

	case "deliver":
		id, err := arg(args, 0, "order id")
		if err != nil {
			return err
		}
		if err := c.app.DeliverOrder(ctx, id); err != nil {
			return err
		}
		c.printOrder(c.app.Store().State().Order.Order)
		return nil
	}

	return fmt.Errorf("unknown command %q", name)
}

func arg(args []string, i int, what string) (string, error) {
	if len(args) <= i || args[i] == "" {
		return "", fmt.Errorf("missing %s", what)
	}
	return args[i], nil
}

func (c *command) printProducts(products []api.Product) {
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tRATING\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%d\n", p.ID, p.Name, p.Price.StringFixed(2), p.Rating, p.CountInStock)
	}
	w.Flush()
}

func (c *command) printCart(cart state.CartState) {
	if len(cart.CartItems) == 0 {
		fmt.Fprintln(c.out, "Your cart is empty")
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tNAME\tQTY\tPRICE")
	for _, item := range cart.CartItems {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", item.Product, item.Name, item.Qty, item.Price.StringFixed(2))
	}
	w.Flush()

	prices := cart.Prices()
	fmt.Fprintf(c.out, "items %s  shipping %s  tax %s  total %s\n",
		prices.ItemsPrice.StringFixed(2), prices.ShippingPrice.StringFixed(2),
		prices.TaxPrice.StringFixed(2), prices.TotalPrice.StringFixed(2))
}

func (c *command) printOrder(o *api.Order) {
	if o == nil {
		return
	}
	fmt.Fprintf(c.out, "Order %s\n", o.ID)
	for _, item := range o.OrderItems {
		fmt.Fprintf(c.out, "  %d x %s @ %s\n", item.Qty, item.Name, item.Price.StringFixed(2))
	}
	a := o.ShippingAddress
	fmt.Fprintf(c.out, "ship to %s, %s %s, %s via %s\n", a.Address, a.City, a.PostalCode, a.Country, o.PaymentMethod)
	fmt.Fprintf(c.out, "items %s  shipping %s  tax %s  total %s\n",
		o.ItemsPrice.StringFixed(2), o.ShippingPrice.StringFixed(2), o.TaxPrice.StringFixed(2), o.TotalPrice.StringFixed(2))
	fmt.Fprintf(c.out, "paid %t  delivered %t\n", o.IsPaid, o.IsDelivered)
}

// cmd/storefront/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/javajoker/storefront/pkg/client"
	"github.com/javajoker/storefront/pkg/client/api"
	"github.com/javajoker/storefront/pkg/client/state"
)

const usage = `usage: storefront [flags] <command> [args]

commands:
  products [-k keyword] [-p page]   list the catalog
  top                               top rated products
  product <id>                      product details
  review <id> -r rating -c comment  review a product
  register -n name -e email -p pw   create an account
  login -e email -p pw              start a session
  logout                            end the session
  cart                              show the cart and its totals
  add <id> [qty]                    put a product in the cart
  remove <id>                       take a product out of the cart
  shipping -a addr -c city -z postal -n country
  payment <method>                  choose PayPal, Stripe, ...
  place                             place the order
  orders                            my orders
  order <id>                        order details
  pay <id> --id result-id [--status s] [--email e] [--provider p]
  deliver <id>                      mark an order delivered (admin)
`

func main() {
	global := flag.NewFlagSet("storefront", flag.ContinueOnError)
	apiURL := global.String("api", envOr("STOREFRONT_API", "http://localhost:5000"), "API base URL")
	stateDir := global.String("state", defaultStateDir(), "directory holding the cart and session")
	lang := global.String("lang", os.Getenv("STOREFRONT_LANG"), "preferred response language")
	timeout := global.Duration("timeout", 30*time.Second, "request timeout")
	global.SetInterspersed(false)
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	if err := global.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	args := global.Args()
	if len(args) == 0 {
		global.Usage()
		os.Exit(2)
	}

	storage, err := state.NewFileStorage(*stateDir)
	if err != nil {
		logrus.Fatal(err)
	}
	store, err := state.NewStore(storage)
	if err != nil {
		logrus.Fatal(err)
	}
	c, err := api.New(*apiURL, api.WithLanguage(*lang))
	if err != nil {
		logrus.Fatal(err)
	}
	app := client.NewApp(c, store)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cmd := &command{app: app, out: os.Stdout}
	if err := cmd.run(ctx, args[0], args[1:]); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "error (%d): %s\n", apiErr.StatusCode, apiErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "storefront")
	}
	return ".storefront"
}

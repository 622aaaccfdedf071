package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

type orderView struct {
	ID            string          `json:"_id"`
	ItemsPrice    decimal.Decimal `json:"itemsPrice"`
	ShippingPrice decimal.Decimal `json:"shippingPrice"`
	TaxPrice      decimal.Decimal `json:"taxPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	IsPaid        bool            `json:"isPaid"`
	IsDelivered   bool            `json:"isDelivered"`
}

type storefrontContext struct {
	app      *app
	tokens   map[string]string
	products map[string]string
	orderID  string
	resp     *httptest.ResponseRecorder
	env      envelope
}

func (sc *storefrontContext) reset() error {
	dir, err := os.MkdirTemp("", "storefront-uploads-")
	if err != nil {
		return err
	}
	a, err := newApp(dir)
	if err != nil {
		return err
	}
	sc.app = a
	sc.tokens = make(map[string]string)
	sc.products = make(map[string]string)
	sc.orderID = ""
	sc.resp = nil
	sc.env = envelope{}
	return nil
}

func (sc *storefrontContext) call(method, path, user string, body interface{}) error {
	w, env, err := sc.app.do(method, path, sc.tokens[user], body)
	if err != nil {
		return err
	}
	sc.resp, sc.env = w, env
	return nil
}

func (sc *storefrontContext) theCatalogContains(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		stock, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return err
		}
		p, err := sc.app.seedProduct(row.Cells[0].Value, row.Cells[1].Value, stock)
		if err != nil {
			return err
		}
		sc.products[p.Name] = p.ID
	}
	return nil
}

func (sc *storefrontContext) seedAndLogin(name string, admin bool) error {
	if _, err := sc.app.seedUser(name, admin); err != nil {
		return err
	}
	if err := sc.logsInWithPassword(name, "123456"); err != nil {
		return err
	}
	if _, ok := sc.tokens[name]; !ok {
		return fmt.Errorf("%s could not log in: %s", name, sc.resp.Body.String())
	}
	return nil
}

func (sc *storefrontContext) aCustomer(name string) error {
	return sc.seedAndLogin(name, false)
}

func (sc *storefrontContext) anAdmin(name string) error {
	return sc.seedAndLogin(name, true)
}

func (sc *storefrontContext) keepToken() {
	var info struct {
		Name  string `json:"name"`
		Token string `json:"token"`
	}
	if sc.env.Success && json.Unmarshal(sc.env.Data, &info) == nil && info.Token != "" {
		sc.tokens[info.Name] = info.Token
	}
}

func (sc *storefrontContext) registersWithPassword(name, password string) error {
	if err := sc.call(http.MethodPost, "/api/users", "", map[string]string{
		"name": name, "email": name + "@example.com", "password": password,
	}); err != nil {
		return err
	}
	sc.keepToken()
	return nil
}

func (sc *storefrontContext) logsInWithPassword(name, password string) error {
	delete(sc.tokens, name)
	if err := sc.call(http.MethodPost, "/api/users/login", "", map[string]string{
		"email": name + "@example.com", "password": password,
	}); err != nil {
		return err
	}
	sc.keepToken()
	return nil
}

func (sc *storefrontContext) hasAToken(name string) error {
	if sc.tokens[name] == "" {
		return fmt.Errorf("expected %s to hold a token", name)
	}
	return nil
}

func (sc *storefrontContext) hasNoToken(name string) error {
	if sc.tokens[name] != "" {
		return fmt.Errorf("expected %s to hold no token", name)
	}
	return nil
}

func (sc *storefrontContext) orders(name string, qty int, product string) error {
	if err := sc.call(http.MethodPost, "/api/orders", name, map[string]interface{}{
		"orderItems": []map[string]interface{}{{"product": sc.products[product], "qty": qty}},
		"shippingAddress": map[string]string{
			"address": "1 Main St", "city": "Boston", "postalCode": "02101", "country": "US",
		},
		"paymentMethod": "PayPal",
	}); err != nil {
		return err
	}

	var order orderView
	if sc.resp.Code == http.StatusCreated && json.Unmarshal(sc.env.Data, &order) == nil {
		sc.orderID = order.ID
	}
	return nil
}

func (sc *storefrontContext) hasOrdered(name string, qty int, product string) error {
	if err := sc.orders(name, qty, product); err != nil {
		return err
	}
	return sc.theOrderIsAccepted()
}

func (sc *storefrontContext) paysTheOrder(name string) error {
	return sc.call(http.MethodPut, "/api/orders/"+sc.orderID+"/pay", name, map[string]string{
		"id": "PAY-" + name, "status": "COMPLETED", "update_time": "2024-01-01T00:00:00Z",
	})
}

func (sc *storefrontContext) marksTheOrderDelivered(name string) error {
	return sc.call(http.MethodPut, "/api/orders/"+sc.orderID+"/deliver", name, nil)
}

func (sc *storefrontContext) viewsTheOrder(name string) error {
	return sc.call(http.MethodGet, "/api/orders/"+sc.orderID, name, nil)
}

func (sc *storefrontContext) theRequestSucceeds() error {
	return sc.theRequestSucceedsWithStatus(http.StatusOK)
}

func (sc *storefrontContext) theRequestSucceedsWithStatus(status int) error {
	if sc.resp.Code != status || !sc.env.Success {
		return fmt.Errorf("expected status %d, got %d: %s", status, sc.resp.Code, sc.resp.Body.String())
	}
	return nil
}

func (sc *storefrontContext) theRequestFailsWithStatus(status int) error {
	if sc.resp.Code != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, sc.resp.Code, sc.resp.Body.String())
	}
	if sc.env.Success || sc.env.Error == nil {
		return fmt.Errorf("expected an error envelope, got %s", sc.resp.Body.String())
	}
	return nil
}

func (sc *storefrontContext) theOrderIsAccepted() error {
	if err := sc.theRequestSucceedsWithStatus(http.StatusCreated); err != nil {
		return err
	}
	if sc.orderID == "" {
		return fmt.Errorf("no order id in %s", sc.resp.Body.String())
	}
	return nil
}

func (sc *storefrontContext) currentOrder() (*orderView, error) {
	var order orderView
	if err := json.Unmarshal(sc.env.Data, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (sc *storefrontContext) theOrderTotalsAre(items, shipping, tax, total string) error {
	order, err := sc.currentOrder()
	if err != nil {
		return err
	}
	want := []string{items, shipping, tax, total}
	got := []decimal.Decimal{order.ItemsPrice, order.ShippingPrice, order.TaxPrice, order.TotalPrice}
	for i := range want {
		if !got[i].Equal(decimal.RequireFromString(want[i])) {
			return fmt.Errorf("expected totals %v, got %v", want, got)
		}
	}
	return nil
}

func (sc *storefrontContext) theOrderIsPaid() error {
	if err := sc.theRequestSucceeds(); err != nil {
		return err
	}
	order, err := sc.currentOrder()
	if err != nil {
		return err
	}
	if !order.IsPaid {
		return fmt.Errorf("expected order %s to be paid", order.ID)
	}
	return nil
}

func (sc *storefrontContext) theOrderIsDelivered() error {
	if err := sc.theRequestSucceeds(); err != nil {
		return err
	}
	order, err := sc.currentOrder()
	if err != nil {
		return err
	}
	if !order.IsDelivered {
		return fmt.Errorf("expected order %s to be delivered", order.ID)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	sc := &storefrontContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		return ctx, sc.reset()
	})
	ctx.After(func(ctx context.Context, s *godog.Scenario, err error) (context.Context, error) {
		if sc.app != nil {
			sc.app.limits.Stop()
			os.RemoveAll(sc.app.uploadDir)
		}
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the catalog contains:$`, sc.theCatalogContains)
	ctx.Step(`^a customer "([^"]*)"$`, sc.aCustomer)
	ctx.Step(`^an admin "([^"]*)"$`, sc.anAdmin)
	ctx.Step(`^"([^"]*)" has ordered (\d+) of "([^"]*)"$`, sc.hasOrdered)

	// When steps
	ctx.Step(`^"([^"]*)" registers with password "([^"]*)"$`, sc.registersWithPassword)
	ctx.Step(`^"([^"]*)" logs in with password "([^"]*)"$`, sc.logsInWithPassword)
	ctx.Step(`^"([^"]*)" orders (\d+) of "([^"]*)"$`, sc.orders)
	ctx.Step(`^"([^"]*)" pays the order$`, sc.paysTheOrder)
	ctx.Step(`^"([^"]*)" marks the order delivered$`, sc.marksTheOrderDelivered)
	ctx.Step(`^"([^"]*)" views the order$`, sc.viewsTheOrder)

	// Then steps
	ctx.Step(`^the request succeeds$`, sc.theRequestSucceeds)
	ctx.Step(`^the request succeeds with status (\d+)$`, sc.theRequestSucceedsWithStatus)
	ctx.Step(`^the request fails with status (\d+)$`, sc.theRequestFailsWithStatus)
	ctx.Step(`^"([^"]*)" has a token$`, sc.hasAToken)
	ctx.Step(`^"([^"]*)" has no token$`, sc.hasNoToken)
	ctx.Step(`^the order is accepted$`, sc.theOrderIsAccepted)
	ctx.Step(`^the order totals are items ([\d.]+), shipping ([\d.]+), tax ([\d.]+), total ([\d.]+)$`, sc.theOrderTotalsAre)
	ctx.Step(`^the order is paid$`, sc.theOrderIsPaid)
	ctx.Step(`^the order is delivered$`, sc.theOrderIsDelivered)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

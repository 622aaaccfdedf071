// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/apperror"
	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
	"github.com/javajoker/storefront/pkg/pricing"
)

// OrderService owns the order lifecycle: placed, then paid and delivered.
// Both transitions are one-way and go through conditional repository updates.
type OrderService struct {
	orders      repository.OrderRepository
	products    repository.ProductRepository
	users       repository.UserRepository
	payments    *PaymentService
	requirePaid bool
}

type OrderItemRequest struct {
	Product string `json:"product" validate:"required"`
	Qty     int    `json:"qty" validate:"min=1"`
}

// CreateOrderRequest is what the storefront posts at checkout. The price
// fields are the client's own calculation and only compared, never trusted.
type CreateOrderRequest struct {
	OrderItems      []OrderItemRequest     `json:"orderItems" validate:"dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"notblank,max=50"`
	ItemsPrice      *decimal.Decimal       `json:"itemsPrice,omitempty"`
	ShippingPrice   *decimal.Decimal       `json:"shippingPrice,omitempty"`
	TaxPrice        *decimal.Decimal       `json:"taxPrice,omitempty"`
	TotalPrice      *decimal.Decimal       `json:"totalPrice,omitempty"`
}

type PayerInfo struct {
	EmailAddress string `json:"email_address"`
}

// PayOrderRequest accepts the PayPal capture shape as well as a flat one.
type PayOrderRequest struct {
	ID           string     `json:"id" validate:"notblank,max=255"`
	Status       string     `json:"status" validate:"max=50"`
	UpdateTime   string     `json:"update_time" validate:"max=50"`
	EmailAddress string     `json:"email_address" validate:"max=255"`
	Payer        *PayerInfo `json:"payer,omitempty"`
	Provider     string     `json:"provider" validate:"max=20"`
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	payments *PaymentService,
	cfg config.OrdersConfig,
) *OrderService {
	return &OrderService{
		orders:      orders,
		products:    products,
		users:       users,
		payments:    payments,
		requirePaid: cfg.RequirePaymentBeforeDelivery,
	}
}

// Create places an order for user. Line items are snapshotted from the
// catalog and priced on the server.
func (s *OrderService) Create(ctx context.Context, user *models.User, req *CreateOrderRequest) (*models.Order, error) {
	if len(req.OrderItems) == 0 {
		return nil, apperror.Validation(i18n.KeyOrderNoItems)
	}
	req.PaymentMethod = strings.TrimSpace(req.PaymentMethod)
	if err := validate(req); err != nil {
		return nil, err
	}

	// One line per product, so stock is checked against the full quantity.
	seen := make(map[string]struct{}, len(req.OrderItems))
	for _, line := range req.OrderItems {
		if _, dup := seen[line.Product]; dup {
			return nil, apperror.Validation(i18n.KeyOrderDuplicateItem)
		}
		seen[line.Product] = struct{}{}
	}

	items := make([]models.OrderItem, 0, len(req.OrderItems))
	for _, line := range req.OrderItems {
		product, err := s.products.FindByID(ctx, line.Product)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperror.Validation(i18n.KeyProductNotFound)
			}
			return nil, fmt.Errorf("failed to load product: %w", err)
		}
		if line.Qty > product.CountInStock {
			return nil, apperror.New(apperror.ErrValidation, i18n.KeyProductOutOfStock, product.Name)
		}
		items = append(items, models.OrderItem{
			Product: product.ID,
			Name:    product.Name,
			Image:   product.Image,
			Price:   product.Price,
			Qty:     line.Qty,
		})
	}

	order := &models.Order{
		UserID:          user.ID,
		OrderItems:      items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}
	breakdown := pricing.Calculate(order.LineItems())
	order.SetPrices(breakdown)
	s.checkClientTotals(user, req, breakdown)

	order.Init(nowUTC())
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  user.ID,
		"total":    order.TotalPrice.StringFixed(2),
	}).Info("Order placed")

	order.Customer = user.Summary()
	return order, nil
}

func (s *OrderService) checkClientTotals(user *models.User, req *CreateOrderRequest, server pricing.Breakdown) {
	if req.TotalPrice == nil {
		return
	}
	client := pricing.Breakdown{
		ItemsPrice:    valueOrZero(req.ItemsPrice),
		ShippingPrice: valueOrZero(req.ShippingPrice),
		TaxPrice:      valueOrZero(req.TaxPrice),
		TotalPrice:    *req.TotalPrice,
	}
	if !client.Equal(server) {
		logrus.WithFields(logrus.Fields{
			"user_id":      user.ID,
			"client_total": client.TotalPrice.String(),
			"server_total": server.TotalPrice.String(),
		}).Warn("Client order totals differ from server pricing")
	}
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// Get returns an order to its owner or to an admin.
func (s *OrderService) Get(ctx context.Context, actor *models.User, id string) (*models.Order, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(actor.ID) && !actor.IsAdmin {
		return nil, apperror.Forbidden(i18n.KeyOrderForbidden)
	}
	s.attachCustomers(ctx, []*models.Order{order})
	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, user *models.User) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	for i := range orders {
		orders[i].Customer = user.Summary()
	}
	return orders, nil
}

// ListAll returns every order, newest first, with its customer attached.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	refs := make([]*models.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	s.attachCustomers(ctx, refs)
	return orders, nil
}

// Pay records a payment result. Only the owner or an admin may pay, and an
// order is paid at most once.
func (s *OrderService) Pay(ctx context.Context, actor *models.User, id string, req *PayOrderRequest) (*models.Order, error) {
	req.ID = strings.TrimSpace(req.ID)
	if err := validate(req); err != nil {
		return nil, err
	}

	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(actor.ID) && !actor.IsAdmin {
		return nil, apperror.Forbidden(i18n.KeyOrderForbidden)
	}
	if order.IsPaid {
		return nil, apperror.Conflict(i18n.KeyOrderAlreadyPaid)
	}

	result := models.PaymentResult{
		ID:           req.ID,
		Status:       req.Status,
		UpdateTime:   req.UpdateTime,
		EmailAddress: req.EmailAddress,
		Provider:     strings.ToLower(strings.TrimSpace(req.Provider)),
	}
	if result.EmailAddress == "" && req.Payer != nil {
		result.EmailAddress = req.Payer.EmailAddress
	}
	if result.Provider == "" {
		result.Provider = strings.ToLower(order.PaymentMethod)
	}

	if err := s.payments.VerifyResult(ctx, order, result); err != nil {
		return nil, err
	}

	paid, err := s.orders.MarkPaid(ctx, id, nowUTC(), result)
	if err != nil {
		if errors.Is(err, repository.ErrPrecondition) {
			return nil, apperror.Conflict(i18n.KeyOrderAlreadyPaid)
		}
		return nil, notFound(err, i18n.KeyOrderNotFound, "mark order paid")
	}

	logrus.WithFields(logrus.Fields{
		"order_id": id,
		"provider": result.Provider,
	}).Info("Order paid")

	s.attachCustomers(ctx, []*models.Order{paid})
	return paid, nil
}

// Deliver marks an order delivered. Admin only.
func (s *OrderService) Deliver(ctx context.Context, actor *models.User, id string) (*models.Order, error) {
	if actor == nil || !actor.IsAdmin {
		return nil, apperror.Forbidden(i18n.KeyAdminAccessDenied)
	}

	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsDelivered {
		return nil, apperror.Conflict(i18n.KeyOrderAlreadyDelivered)
	}
	if s.requirePaid && !order.IsPaid {
		return nil, apperror.Conflict(i18n.KeyOrderNotPaid)
	}

	delivered, err := s.orders.MarkDelivered(ctx, id, nowUTC(), s.requirePaid)
	if err != nil {
		if errors.Is(err, repository.ErrPrecondition) {
			// Lost a race with another transition; re-read to report which.
			if current, ferr := s.find(ctx, id); ferr == nil && !current.IsDelivered {
				return nil, apperror.Conflict(i18n.KeyOrderNotPaid)
			}
			return nil, apperror.Conflict(i18n.KeyOrderAlreadyDelivered)
		}
		return nil, notFound(err, i18n.KeyOrderNotFound, "mark order delivered")
	}

	logrus.WithField("order_id", id).Info("Order delivered")

	s.attachCustomers(ctx, []*models.Order{delivered})
	return delivered, nil
}

// CreatePaymentIntent starts a card payment for an unpaid order of the owner.
func (s *OrderService) CreatePaymentIntent(ctx context.Context, actor *models.User, id string) (*PaymentIntentResponse, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(actor.ID) {
		return nil, apperror.Forbidden(i18n.KeyOrderForbidden)
	}
	if order.IsPaid {
		return nil, apperror.Conflict(i18n.KeyOrderAlreadyPaid)
	}
	return s.payments.CreateIntent(ctx, order)
}

func (s *OrderService) find(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, i18n.KeyOrderNotFound, "get order")
	}
	return order, nil
}

// attachCustomers fills the customer view of each order. Orders whose owner
// no longer exists keep a nil customer.
func (s *OrderService) attachCustomers(ctx context.Context, orders []*models.Order) {
	seen := make(map[string]*models.UserSummary)
	for _, order := range orders {
		summary, ok := seen[order.UserID]
		if !ok {
			user, err := s.users.FindByID(ctx, order.UserID)
			if err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					logrus.WithError(err).WithField("user_id", order.UserID).Warn("Failed to load order customer")
				}
			} else {
				summary = user.Summary()
			}
			seen[order.UserID] = summary
		}
		order.Customer = summary
	}
}

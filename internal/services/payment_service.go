// internal/services/payment_service.go
package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/javajoker/storefront/internal/apperror"
	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/models"
)

const (
	ProviderStripe = "stripe"
	ProviderPayPal = "paypal"
)

type PaymentService struct {
	config config.PaymentConfig

	newIntent func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	getIntent func(string, *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type PaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	Status          string `json:"status"`
}

type PayPalConfig struct {
	ClientID string `json:"clientId"`
}

func NewPaymentService(cfg *config.Config) *PaymentService {
	// Initialize Stripe
	stripe.Key = cfg.Payment.StripeSecretKey

	return &PaymentService{
		config:    cfg.Payment,
		newIntent: paymentintent.New,
		getIntent: paymentintent.Get,
	}
}

func (s *PaymentService) StripeEnabled() bool {
	return s.config.StripeSecretKey != ""
}

func (s *PaymentService) PayPalConfig() PayPalConfig {
	return PayPalConfig{ClientID: s.config.PayPalClientID}
}

// CreateIntent opens a Stripe PaymentIntent for the order total.
func (s *PaymentService) CreateIntent(ctx context.Context, order *models.Order) (*PaymentIntentResponse, error) {
	if !s.StripeEnabled() {
		return nil, apperror.Validation(i18n.KeyPaymentNotConfigured)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(order.TotalPrice.Shift(2).IntPart()),
		Currency: stripe.String(s.config.Currency),
	}
	params.Context = ctx
	params.AddMetadata("order_id", order.ID)
	params.AddMetadata("user_id", order.UserID)

	pi, err := s.newIntent(params)
	if err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to create payment intent")
		return nil, apperror.Validation(i18n.KeyPaymentNotVerified)
	}

	return &PaymentIntentResponse{
		ClientSecret:    pi.ClientSecret,
		PaymentIntentID: pi.ID,
		Status:          string(pi.Status),
	}, nil
}

// VerifyResult checks a payment result reported by the client before the
// order is marked paid. Stripe results must name a succeeded intent for
// exactly the order total. Results from other providers are stored as reported.
func (s *PaymentService) VerifyResult(ctx context.Context, order *models.Order, result models.PaymentResult) error {
	if !strings.EqualFold(result.Provider, ProviderStripe) {
		return nil
	}
	if !s.StripeEnabled() {
		return apperror.Validation(i18n.KeyPaymentNotConfigured)
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := s.getIntent(result.ID, params)
	if err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Warn("Failed to fetch payment intent")
		return apperror.Validation(i18n.KeyPaymentNotVerified)
	}

	log := logrus.WithFields(logrus.Fields{
		"order_id":          order.ID,
		"payment_intent_id": pi.ID,
	})
	switch {
	case pi.Status != stripe.PaymentIntentStatusSucceeded:
		log.WithField("status", pi.Status).Warn("Payment intent not succeeded")
	case pi.Amount != order.TotalPrice.Shift(2).IntPart():
		log.WithField("amount", pi.Amount).Warn("Payment intent amount does not match order total")
	case !strings.EqualFold(string(pi.Currency), s.config.Currency):
		log.WithField("currency", pi.Currency).Warn("Payment intent currency mismatch")
	case pi.Metadata["order_id"] != "" && pi.Metadata["order_id"] != order.ID:
		log.Warn("Payment intent belongs to another order")
	default:
		return nil
	}
	return apperror.Validation(i18n.KeyPaymentNotVerified)
}

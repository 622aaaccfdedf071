// internal/services/services.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/javajoker/storefront/internal/apperror"
	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/repository"
	"github.com/javajoker/storefront/internal/utils"
)

// Services wires every service over one repository backend.
type Services struct {
	Auth       *AuthService
	Users      *UserService
	Products   *ProductService
	Categories *CategoryService
	Orders     *OrderService
	Payments   *PaymentService
	Storage    *StorageService
}

func New(store *repository.Store, cfg *config.Config) (*Services, error) {
	storage, err := NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	tokens := utils.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
	payments := NewPaymentService(cfg)

	return &Services{
		Auth:       NewAuthService(store.Users, tokens),
		Users:      NewUserService(store.Users),
		Products:   NewProductService(store.Products, store.Categories, cfg.Catalog),
		Categories: NewCategoryService(store.Categories, store.Products),
		Orders:     NewOrderService(store.Orders, store.Products, store.Users, payments, cfg.Orders),
		Payments:   payments,
		Storage:    storage,
	}, nil
}

// validate runs the struct rules of req and reports failures as a
// validation error whose details list the offending fields.
func validate(req interface{}) error {
	if err := utils.ValidateStruct(req); err != nil {
		return &apperror.Error{
			Kind:    apperror.ErrValidation,
			Message: i18n.KeyValidationInvalid,
			Args:    []interface{}{"input"},
			Details: utils.GetValidationErrors(err),
		}
	}
	return nil
}

// notFound turns repository.ErrNotFound into a not-found error with the
// given message key and wraps anything else.
func notFound(err error, key, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(key)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/javajoker/storefront/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrPrecondition is returned by conditional updates whose guard did not
	// hold, e.g. paying an order that is already paid.
	ErrPrecondition = errors.New("precondition failed")
)

// ProductQuery selects a page of the catalogue. Keyword is matched
// case-insensitively as a substring of the product name.
type ProductQuery struct {
	Keyword    string
	CategoryID string
	Offset     int
	Limit      int
}

type ProductRepository interface {
	Search(ctx context.Context, q ProductQuery) ([]models.Product, int64, error)
	TopRated(ctx context.Context, limit int) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	Create(ctx context.Context, p *models.Product) error
	// Update writes the scalar fields of p. Reviews are only changed through AddReview.
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	// AddReview appends r and recomputes rating/numReviews in one atomic step.
	// It returns ErrDuplicate when r.UserID already reviewed the product.
	AddReview(ctx context.Context, productID string, r models.Review) (*models.Product, error)
	DeleteAll(ctx context.Context) error
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c *models.Category) error
	FindByID(ctx context.Context, id string) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	// MarkPaid flips isPaid from false to true. ErrPrecondition when already paid.
	MarkPaid(ctx context.Context, id string, paidAt time.Time, result models.PaymentResult) (*models.Order, error)
	// MarkDelivered flips isDelivered from false to true. With requirePaid the
	// order must also be paid. ErrPrecondition when the guard does not hold.
	MarkDelivered(ctx context.Context, id string, deliveredAt time.Time, requirePaid bool) (*models.Order, error)
	DeleteAll(ctx context.Context) error
}

// Store groups the collections of one backend.
type Store struct {
	Products   ProductRepository
	Users      UserRepository
	Categories CategoryRepository
	Orders     OrderRepository

	closer func(context.Context) error
}

func NewStore(products ProductRepository, users UserRepository, categories CategoryRepository, orders OrderRepository, closer func(context.Context) error) *Store {
	return &Store{
		Products:   products,
		Users:      users,
		Categories: categories,
		Orders:     orders,
		closer:     closer,
	}
}

func (s *Store) Close(ctx context.Context) error {
	if s.closer == nil {
		return nil
	}
	return s.closer(ctx)
}


// internal/repository/memstore/store.go
package memstore

import (
	"sync"
	"time"

	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
)

// DB is an in-process document store used for local development and tests.
// One RWMutex guards every collection, which gives each operation the same
// single-document atomicity the real backends provide.
type DB struct {
	mu         sync.RWMutex
	products   map[string]*models.Product
	users      map[string]*models.User
	categories map[string]*models.Category
	orders     map[string]*models.Order
}

func New() *repository.Store {
	db := &DB{
		products:   make(map[string]*models.Product),
		users:      make(map[string]*models.User),
		categories: make(map[string]*models.Category),
		orders:     make(map[string]*models.Order),
	}
	return repository.NewStore(
		&productRepo{db},
		&userRepo{db},
		&categoryRepo{db},
		&orderRepo{db},
		nil,
	)
}

func copyProduct(p *models.Product) *models.Product {
	cp := *p
	cp.Reviews = append([]models.Review(nil), p.Reviews...)
	return &cp
}

func copyOrder(o *models.Order) *models.Order {
	cp := *o
	cp.OrderItems = append([]models.OrderItem(nil), o.OrderItems...)
	if o.PaidAt != nil {
		t := *o.PaidAt
		cp.PaidAt = &t
	}
	if o.DeliveredAt != nil {
		t := *o.DeliveredAt
		cp.DeliveredAt = &t
	}
	return &cp
}

// byCreated orders documents oldest first, ties broken by id.
func byCreated(aCreated, bCreated time.Time, aID, bID string) bool {
	if !aCreated.Equal(bCreated) {
		return aCreated.Before(bCreated)
	}
	return aID < bID
}

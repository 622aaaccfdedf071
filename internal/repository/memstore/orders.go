// internal/repository/memstore/orders.go
package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
)

type orderRepo struct{ db *DB }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.orders[o.ID]; exists {
		return repository.ErrDuplicate
	}
	r.db.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*models.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	o, ok := r.db.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyOrder(o), nil
}

func (r *orderRepo) collect(keep func(*models.Order) bool) []models.Order {
	orders := make([]models.Order, 0)
	for _, o := range r.db.orders {
		if keep(o) {
			orders = append(orders, *copyOrder(o))
		}
	}
	// newest first
	sort.Slice(orders, func(i, j int) bool {
		return byCreated(orders[j].CreatedAt, orders[i].CreatedAt, orders[j].ID, orders[i].ID)
	})
	return orders
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.collect(func(o *models.Order) bool { return o.UserID == userID }), nil
}

func (r *orderRepo) List(ctx context.Context) ([]models.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.collect(func(*models.Order) bool { return true }), nil
}

func (r *orderRepo) MarkPaid(ctx context.Context, id string, paidAt time.Time, result models.PaymentResult) (*models.Order, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	o, ok := r.db.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if o.IsPaid {
		return nil, repository.ErrPrecondition
	}

	updated := copyOrder(o)
	updated.IsPaid = true
	updated.PaidAt = &paidAt
	updated.PaymentResult = result
	updated.UpdatedAt = paidAt
	r.db.orders[id] = updated
	return copyOrder(updated), nil
}

func (r *orderRepo) MarkDelivered(ctx context.Context, id string, deliveredAt time.Time, requirePaid bool) (*models.Order, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	o, ok := r.db.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if o.IsDelivered || (requirePaid && !o.IsPaid) {
		return nil, repository.ErrPrecondition
	}

	updated := copyOrder(o)
	updated.IsDelivered = true
	updated.DeliveredAt = &deliveredAt
	updated.UpdatedAt = deliveredAt
	r.db.orders[id] = updated
	return copyOrder(updated), nil
}

func (r *orderRepo) DeleteAll(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.orders = make(map[string]*models.Order)
	return nil
}

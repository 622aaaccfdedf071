// internal/repository/gormstore/orders.go
package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
)

type orderRepo struct {
	db *gorm.DB
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return translate(r.db.WithContext(ctx).Create(o).Error)
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if err := withItems(r.db.WithContext(ctx)).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *orderRepo) find(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := withItems(r.db.WithContext(ctx)).
		Scopes(scope).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.find(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("user_id = ?", userID) })
}

func (r *orderRepo) List(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, func(db *gorm.DB) *gorm.DB { return db })
}

// transition runs a guarded UPDATE; zero affected rows means the order is
// missing or the guard rejected it.
func (r *orderRepo) transition(ctx context.Context, id string, guard func(*gorm.DB) *gorm.DB, values map[string]interface{}) (*models.Order, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&models.Order{}).Where("id = ?", id).Scopes(guard).Updates(values)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		found, err := exists(db, &models.Order{}, id)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, repository.ErrNotFound
		}
		return nil, repository.ErrPrecondition
	}
	return r.FindByID(ctx, id)
}

func (r *orderRepo) MarkPaid(ctx context.Context, id string, paidAt time.Time, result models.PaymentResult) (*models.Order, error) {
	return r.transition(ctx, id,
		func(db *gorm.DB) *gorm.DB { return db.Where("is_paid = ?", false) },
		map[string]interface{}{
			"is_paid":               true,
			"paid_at":               paidAt,
			"payment_id":            result.ID,
			"payment_status":        result.Status,
			"payment_update_time":   result.UpdateTime,
			"payment_email_address": result.EmailAddress,
			"payment_provider":      result.Provider,
			"updated_at":            paidAt,
		})
}

func (r *orderRepo) MarkDelivered(ctx context.Context, id string, deliveredAt time.Time, requirePaid bool) (*models.Order, error) {
	return r.transition(ctx, id,
		func(db *gorm.DB) *gorm.DB {
			db = db.Where("is_delivered = ?", false)
			if requirePaid {
				db = db.Where("is_paid = ?", true)
			}
			return db
		},
		map[string]interface{}{
			"is_delivered": true,
			"delivered_at": deliveredAt,
			"updated_at":   deliveredAt,
		})
}

func (r *orderRepo) DeleteAll(ctx context.Context) error {
	return WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Order{}).Error
	})
}

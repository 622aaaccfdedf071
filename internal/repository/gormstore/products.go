// internal/repository/gormstore/products.go
package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
)

type productRepo struct {
	db *gorm.DB
}

func withReviews(db *gorm.DB) *gorm.DB {
	return db.Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC, id ASC")
	})
}

func (r *productRepo) Search(ctx context.Context, q repository.ProductQuery) ([]models.Product, int64, error) {
	if q.Offset < 0 {
		return nil, 0, fmt.Errorf("negative offset %d", q.Offset)
	}
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if q.Keyword != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(q.Keyword))
	}
	if q.CategoryID != "" {
		query = query.Where("category_id = ?", q.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = withReviews(query).Order("created_at ASC, id ASC").Offset(q.Offset)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	products := make([]models.Product, 0)
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepo) TopRated(ctx context.Context, limit int) ([]models.Product, error) {
	query := withReviews(r.db.WithContext(ctx)).Order("rating DESC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	products := make([]models.Product, 0)
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*models.Product, error) {
	return findProduct(withReviews(r.db.WithContext(ctx)), id)
}

func findProduct(db *gorm.DB, id string) (*models.Product, error) {
	var p models.Product
	if err := db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *productRepo) Update(ctx context.Context, p *models.Product) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":           p.Name,
		"image":          p.Image,
		"brand":          p.Brand,
		"category_id":    p.CategoryID,
		"description":    p.Description,
		"price":          p.Price,
		"count_in_stock": p.CountInStock,
		"updated_at":     p.UpdatedAt,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddReview locks the product row so the duplicate check, the insert and
// the aggregate refresh happen as one step. The unique (product_id, user_id)
// index backs the duplicate check.
func (r *productRepo) AddReview(ctx context.Context, productID string, review models.Review) (*models.Product, error) {
	var updated *models.Product
	err := WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if _, err := findProduct(tx.Clauses(clause.Locking{Strength: "UPDATE"}), productID); err != nil {
			return err
		}

		var dup int64
		if err := tx.Model(&models.Review{}).
			Where("product_id = ? AND user_id = ?", productID, review.UserID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return repository.ErrDuplicate
		}

		review.ProductID = productID
		if err := tx.Create(&review).Error; err != nil {
			return translate(err)
		}

		var agg struct {
			Count int
			Avg   float64
		}
		if err := tx.Model(&models.Review{}).
			Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
			Where("product_id = ?", productID).
			Scan(&agg).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Product{}).Where("id = ?", productID).Updates(map[string]interface{}{
			"num_reviews": agg.Count,
			"rating":      agg.Avg,
			"updated_at":  review.CreatedAt,
		}).Error; err != nil {
			return err
		}

		p, err := findProduct(withReviews(tx), productID)
		updated = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *productRepo) DeleteAll(ctx context.Context) error {
	return WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Product{}).Error
	})
}

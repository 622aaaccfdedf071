// internal/repository/memstore/products.go
package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
)

type productRepo struct{ db *DB }

func (r *productRepo) Search(ctx context.Context, q repository.ProductQuery) ([]models.Product, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	keyword := strings.ToLower(q.Keyword)
	var matched []*models.Product
	for _, p := range r.db.products {
		if keyword != "" && !strings.Contains(strings.ToLower(p.Name), keyword) {
			continue
		}
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		return byCreated(matched[i].CreatedAt, matched[j].CreatedAt, matched[i].ID, matched[j].ID)
	})

	total := int64(len(matched))
	products := make([]models.Product, 0)
	if q.Offset >= 0 && q.Offset < len(matched) {
		end := len(matched)
		if q.Limit > 0 && q.Limit < end-q.Offset {
			end = q.Offset + q.Limit
		}
		for _, p := range matched[q.Offset:end] {
			products = append(products, *copyProduct(p))
		}
	}
	return products, total, nil
}

func (r *productRepo) TopRated(ctx context.Context, limit int) ([]models.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	all := make([]*models.Product, 0, len(r.db.products))
	for _, p := range r.db.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Rating != all[j].Rating {
			return all[i].Rating > all[j].Rating
		}
		return all[i].ID < all[j].ID
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	products := make([]models.Product, 0, len(all))
	for _, p := range all {
		products = append(products, *copyProduct(p))
	}
	return products, nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*models.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyProduct(p), nil
}

func (r *productRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var n int64
	for _, p := range r.db.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.products[p.ID]; exists {
		return repository.ErrDuplicate
	}
	r.db.products[p.ID] = copyProduct(p)
	return nil
}

func (r *productRepo) Update(ctx context.Context, p *models.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.products[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := copyProduct(p)
	updated.Reviews = existing.Reviews
	updated.RecomputeRating()
	r.db.products[p.ID] = updated
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.products, id)
	return nil
}

func (r *productRepo) AddReview(ctx context.Context, productID string, review models.Review) (*models.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.products[productID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.HasReviewFrom(review.UserID) {
		return nil, repository.ErrDuplicate
	}

	updated := copyProduct(p)
	review.ProductID = productID
	updated.AddReview(review)
	updated.UpdatedAt = review.CreatedAt
	r.db.products[productID] = updated
	return copyProduct(updated), nil
}

func (r *productRepo) DeleteAll(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.products = make(map[string]*models.Product)
	return nil
}

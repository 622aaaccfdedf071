// internal/repository/memstore/categories.go
package memstore

import (
	"context"
	"sort"

	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
)

type categoryRepo struct{ db *DB }

func (r *categoryRepo) nameTaken(name, exceptID string) bool {
	for _, c := range r.db.categories {
		if c.Name == name && c.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.categories[c.ID]; exists || r.nameTaken(c.Name, "") {
		return repository.ErrDuplicate
	}
	cp := *c
	r.db.categories[c.ID] = &cp
	return nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id string) (*models.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *categoryRepo) FindByName(ctx context.Context, name string) (*models.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, c := range r.db.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *categoryRepo) List(ctx context.Context) ([]models.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	categories := make([]models.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return byCreated(categories[i].CreatedAt, categories[j].CreatedAt, categories[i].ID, categories[j].ID)
	})
	return categories, nil
}

func (r *categoryRepo) Update(ctx context.Context, c *models.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.categories[c.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(c.Name, c.ID) {
		return repository.ErrDuplicate
	}
	cp := *c
	r.db.categories[c.ID] = &cp
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.categories, id)
	return nil
}

func (r *categoryRepo) DeleteAll(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.categories = make(map[string]*models.Category)
	return nil
}

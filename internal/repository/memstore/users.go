// internal/repository/memstore/users.go
package memstore

import (
	"context"
	"sort"

	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
)

type userRepo struct{ db *DB }

func (r *userRepo) emailTaken(email, exceptID string) bool {
	for _, u := range r.db.users {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.users[u.ID]; exists || r.emailTaken(u.Email, "") {
		return repository.ErrDuplicate
	}
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	users := make([]models.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool {
		return byCreated(users[i].CreatedAt, users[j].CreatedAt, users[i].ID, users[j].ID)
	})
	return users, nil
}

func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return repository.ErrDuplicate
	}
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.users, id)
	return nil
}

func (r *userRepo) DeleteAll(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.users = make(map[string]*models.User)
	return nil
}

// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/javajoker/storefront/internal/apperror"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
)

type UserService struct {
	users repository.UserRepository
}

// UpdateProfileRequest changes only the fields that are present.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,notblank,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
}

type AdminUpdateUserRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,notblank,max=100"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	IsAdmin *bool   `json:"isAdmin,omitempty"`
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, i18n.KeyUserNotFound, "get user")
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, req *UpdateProfileRequest) (*models.User, error) {
	normalize(req.Name, req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	updated := *user
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.Password != nil {
		if err := updated.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}
	return s.save(ctx, &updated)
}

func (s *UserService) Update(ctx context.Context, id string, req *AdminUpdateUserRequest) (*models.User, error) {
	normalize(req.Name, req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	return s.save(ctx, user)
}

func (s *UserService) save(ctx context.Context, user *models.User) (*models.User, error) {
	user.Touch(nowUTC())
	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperror.Conflict(i18n.KeyAuthUserExists)
		default:
			return nil, notFound(err, i18n.KeyUserNotFound, "update user")
		}
	}
	return user, nil
}

// Delete removes a user. Administrators are never deleted, and nobody can
// delete their own account this way.
func (s *UserService) Delete(ctx context.Context, actor *models.User, id string) error {
	if actor.ID == id {
		return apperror.Validation(i18n.KeyUserDeleteSelf)
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if user.IsAdmin {
		return apperror.Validation(i18n.KeyUserDeleteAdmin)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return notFound(err, i18n.KeyUserNotFound, "delete user")
	}
	return nil
}

func normalize(name, email *string) {
	if name != nil {
		*name = strings.TrimSpace(*name)
	}
	if email != nil {
		*email = models.NormalizeEmail(*email)
	}
}

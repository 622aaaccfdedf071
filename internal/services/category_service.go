// internal/services/category_service.go
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

type CategoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

type CategoryRequest struct {
	Name string `json:"name" validate:"notblank,max=100"`
}

func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository) *CategoryService {
	return &CategoryService{
		categories: categories,
		products:   products,
	}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, i18n.KeyCategoryNotFound, "get category")
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, req *CategoryRequest) (*models.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	category := &models.Category{Name: req.Name}
	category.Init(nowUTC())
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(i18n.KeyCategoryExists)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, req *CategoryRequest) (*models.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = req.Name
	category.Touch(nowUTC())

	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(i18n.KeyCategoryExists)
		}
		return nil, notFound(err, i18n.KeyCategoryNotFound, "update category")
	}
	return category, nil
}

// Delete refuses categories that products still point at.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	n, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if n > 0 {
		return apperror.Conflict(i18n.KeyCategoryInUse)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return notFound(err, i18n.KeyCategoryNotFound, "delete category")
	}
	return nil
}

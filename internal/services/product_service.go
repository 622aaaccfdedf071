// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/javajoker/storefront/internal/apperror"
	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
	"github.com/javajoker/storefront/internal/utils"
	"github.com/javajoker/storefront/pkg/pricing"
)

// ProductService is the catalog: paged search, top rated, product detail,
// reviews and the admin product editor.
type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	pageSize   int
	topLimit   int
}

// ProductPage is one page of search results. Pages is ceil(total/pageSize).
type ProductPage struct {
	Products []models.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"notblank,max=2000"`
}

type UpdateProductRequest struct {
	Name         string          `json:"name" validate:"notblank,max=255"`
	Price        decimal.Decimal `json:"price" validate:"gte=0"`
	Image        string          `json:"image" validate:"max=512"`
	Brand        string          `json:"brand" validate:"max=100"`
	Category     string          `json:"category"`
	CountInStock int             `json:"countInStock" validate:"gte=0"`
	Description  string          `json:"description"`
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, cfg config.CatalogConfig) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		pageSize:   cfg.PageSize,
		topLimit:   cfg.TopLimit,
	}
}

func (s *ProductService) PageSize() int {
	return s.pageSize
}

// Search returns page params.Page of the products whose name contains the
// keyword, ignoring case. A page past the end is empty, not an error.
func (s *ProductService) Search(ctx context.Context, params utils.PaginationParams) (*ProductPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	params.Limit = s.pageSize

	query := repository.ProductQuery{
		Keyword:    params.Keyword,
		CategoryID: params.Category,
		Limit:      params.Limit,
	}
	offset, ok := params.Offset()
	if ok {
		query.Offset = offset
	} else {
		// Only the total is needed.
		query.Limit = 1
	}

	products, total, err := s.products.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	pages := utils.TotalPages(total, s.pageSize)
	if !ok || params.Page > pages {
		products = []models.Product{}
	}

	return &ProductPage{
		Products: products,
		Page:     params.Page,
		Pages:    pages,
	}, nil
}

func (s *ProductService) TopRated(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.TopRated(ctx, s.topLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}
	return products, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, i18n.KeyProductNotFound, "get product")
	}
	return product, nil
}

// AddReview records one review per user and product. Rating and review
// count are recomputed by the repository in the same atomic step.
func (s *ProductService) AddReview(ctx context.Context, user *models.User, productID string, req *ReviewRequest) (*models.Product, error) {
	req.Comment = strings.TrimSpace(req.Comment)
	if err := validate(req); err != nil {
		return nil, err
	}

	now := nowUTC()
	product, err := s.products.AddReview(ctx, productID, models.Review{
		ID:        models.NewID(),
		UserID:    user.ID,
		Name:      user.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(i18n.KeyReviewDuplicate)
		}
		return nil, notFound(err, i18n.KeyProductNotFound, "add review")
	}
	return product, nil
}

// Create adds a placeholder product owned by admin, to be filled in through Update.
func (s *ProductService) Create(ctx context.Context, admin *models.User) (*models.Product, error) {
	product := &models.Product{
		UserID:      admin.ID,
		Name:        "Sample name",
		Image:       "/images/sample.jpg",
		Brand:       "Sample brand",
		Description: "Sample description",
		Price:       decimal.Zero,
		Reviews:     []models.Review{},
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(categories) > 0 {
		product.CategoryID = categories[0].ID
	}

	product.Init(nowUTC())
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, req *UpdateProductRequest) (*models.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if err := validate(req); err != nil {
		return nil, err
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// An empty category keeps the current one.
	if req.Category == "" {
		req.Category = product.CategoryID
	} else if req.Category != product.CategoryID {
		if _, err := s.categories.FindByID(ctx, req.Category); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperror.Validation(i18n.KeyCategoryNotFound)
			}
			return nil, fmt.Errorf("failed to load category: %w", err)
		}
	}

	product.Name = req.Name
	product.Price = pricing.Round(req.Price)
	product.Image = req.Image
	product.Brand = req.Brand
	product.CategoryID = req.Category
	product.CountInStock = req.CountInStock
	product.Description = req.Description
	product.Touch(nowUTC())

	if err := s.products.Update(ctx, product); err != nil {
		return nil, notFound(err, i18n.KeyProductNotFound, "update product")
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return notFound(err, i18n.KeyProductNotFound, "delete product")
	}
	return nil
}

// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/middleware"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /api/products?keyword=&pageNumber=&category=
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c, h.productService.PageSize())

	page, err := h.productService.Search(c.Request.Context(), params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, page)
}

// GET /api/products/top
func (h *ProductHandler) GetTopProducts(c *gin.Context) {
	products, err := h.productService.TopRated(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, products)
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /api/products/:id/reviews
func (h *ProductHandler) CreateReview(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req services.ReviewRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	if _, err := h.productService.AddReview(c.Request.Context(), user, c.Param("id"), &req); err != nil {
		utils.HandleError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.CreatedResponse(c, utils.MessageResponse{Message: i18n.T(lang, i18n.KeyReviewAdded)})
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	admin, _ := middleware.CurrentUser(c)

	product, err := h.productService.Create(c.Request.Context(), admin)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, product)
}

// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req services.UpdateProductRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.MessageSuccess(c, i18n.KeyProductDeleted)
}

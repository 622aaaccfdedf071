// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/middleware"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /api/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req services.CreateOrderRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), user, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, order)
}

// GET /api/orders/myorders
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	orders, err := h.orderService.ListMine(c.Request.Context(), user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, orders)
}

// GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	order, err := h.orderService.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// PUT /api/orders/:id/pay
func (h *OrderHandler) PayOrder(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req services.PayOrderRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Pay(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

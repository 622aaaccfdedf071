// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/middleware"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

// AdminHandler serves the user and order management screens.
type AdminHandler struct {
	userService  *services.UserService
	orderService *services.OrderService
}

func NewAdminHandler(userService *services.UserService, orderService *services.OrderService) *AdminHandler {
	return &AdminHandler{
		userService:  userService,
		orderService: orderService,
	}
}

// GET /api/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, users)
}

// GET /api/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// PUT /api/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req services.AdminUpdateUserRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// DELETE /api/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	if err := h.userService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.MessageSuccess(c, i18n.KeyUserDeleted)
}

// GET /api/orders
func (h *AdminHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.ListAll(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, orders)
}

// PUT /api/orders/:id/deliver
func (h *AdminHandler) DeliverOrder(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	order, err := h.orderService.Deliver(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// internal/handlers/payment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/middleware"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	orderService   *services.OrderService
}

func NewPaymentHandler(paymentService *services.PaymentService, orderService *services.OrderService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		orderService:   orderService,
	}
}

// GET /api/config/paypal
func (h *PaymentHandler) GetPayPalConfig(c *gin.Context) {
	utils.SuccessResponse(c, h.paymentService.PayPalConfig())
}

// POST /api/orders/:id/payment-intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	intent, err := h.orderService.CreatePaymentIntent(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, intent)
}

// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/middleware"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GET /api/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	utils.SuccessResponse(c, user)
}

// PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req services.UpdateProfileRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), user, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, updated)
}

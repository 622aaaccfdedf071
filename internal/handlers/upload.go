// internal/handlers/upload.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/apperror"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
	}
}

// POST /api/upload (multipart field "image")
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.HandleError(c, apperror.Validation(i18n.KeyUploadMissingFile))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.HandleError(c, apperror.Validation(i18n.KeyUploadMissingFile))
		return
	}
	defer file.Close()

	result, err := h.storageService.SaveImage(c.Request.Context(), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

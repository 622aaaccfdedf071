// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/apperror"
	"github.com/javajoker/storefront/internal/i18n"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

// MessageSuccess answers {"message": ...} with the translated key.
func MessageSuccess(c *gin.Context, key string, args ...interface{}) {
	SuccessResponse(c, MessageResponse{Message: i18n.T(GetLangFromContext(c), key, args...)})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// AbortWithError writes the error envelope and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	HandleError(c, err)
	c.Abort()
}

// HandleError renders err with the status of its kind. Errors of no known
// kind are logged with the request id and answered with a generic 500.
func HandleError(c *gin.Context, err error) {
	lang := GetLangFromContext(c)

	if apperror.IsInternal(err) {
		logrus.WithError(err).WithFields(logrus.Fields{
			"request_id": GetRequestIDFromContext(c),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}).Error("Request failed")
		InternalErrorResponse(c, "")
		return
	}

	message := err.Error()
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		message = i18n.T(lang, appErr.Message, appErr.Args...)
	}
	ErrorResponse(c, apperror.Status(err), apperror.Code(err), message, apperror.Details(err))
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyValidationInvalid, "request")
	}
	ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", message, details)
}

func NotFoundResponse(c *gin.Context, key string, args ...interface{}) {
	lang := GetLangFromContext(c)
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, key, args...), nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyInternalError)
	}
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

// BindJSON decodes the request body. On failure it has already written the
// 400 response and returns false. Field rules are checked by the services.
func BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		BadRequestResponse(c, "", err.Error())
		return false
	}
	return true
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return i18n.DefaultLanguage()
}

func GetRequestIDFromContext(c *gin.Context) string {
	return c.GetString("request_id")
}

// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAdminAccessDenied      = "auth.admin_required"

	// Users
	KeyUserNotFound    = "user.not_found"
	KeyUserDeleted     = "user.deleted"
	KeyUserDeleteAdmin = "user.delete_admin"
	KeyUserDeleteSelf  = "user.delete_self"

	// Products
	KeyProductNotFound   = "product.not_found"
	KeyProductDeleted    = "product.deleted"
	KeyProductOutOfStock = "product.out_of_stock"
	KeyReviewAdded       = "review.added"
	KeyReviewDuplicate   = "review.duplicate"

	// Categories
	KeyCategoryNotFound = "category.not_found"
	KeyCategoryExists   = "category.exists"
	KeyCategoryInUse    = "category.in_use"
	KeyCategoryDeleted  = "category.deleted"

	// Orders
	KeyOrderNotFound         = "order.not_found"
	KeyOrderNoItems          = "order.no_items"
	KeyOrderDuplicateItem    = "order.duplicate_item"
	KeyOrderAlreadyPaid      = "order.already_paid"
	KeyOrderAlreadyDelivered = "order.already_delivered"
	KeyOrderNotPaid          = "order.not_paid"
	KeyOrderForbidden        = "order.forbidden"

	// Payments
	KeyPaymentNotConfigured = "payment.not_configured"
	KeyPaymentNotVerified   = "payment.not_verified"

	// Upload
	KeyUploadMissingFile = "upload.missing_file"
	KeyUploadInvalidType = "upload.invalid_type"
	KeyUploadTooLarge    = "upload.too_large"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Generic
	KeyNotFound      = "error.route_not_found"
	KeyInternalError = "error.internal"
	KeyRateLimited   = "error.rate_limited"
)

// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyInternalError   = "error.internal"
	KeyRateLimited     = "error.rate_limited"
	KeyValidationInput = "validation.invalid_input"

	// Field-level validation reasons
	KeyValidationDoesNotExist  = "validation.does_not_exist"
	KeyValidationQuantityLimit = "validation.quantity_limit"

	// Not found, built as <resource>.not_found
	KeyCollectionNotFound = "collection.not_found"
	KeyProductNotFound    = "product.not_found"
	KeyReviewNotFound     = "review.not_found"
	KeyCartNotFound       = "cart.not_found"
	KeyCartItemNotFound   = "cart_item.not_found"

	// Deletion guards
	KeyCollectionNotEmpty = "collection.not_empty"
	KeyProductInUse       = "product.in_use"
)

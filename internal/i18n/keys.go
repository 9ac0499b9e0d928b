// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess       = "success"
	KeyError         = "error"
	KeyInternalError = "internal_error"
	KeyForbidden     = "forbidden"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthTokenRevoked       = "auth.token_revoked"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthPasswordReset      = "auth.password_reset"

	// User / profile
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"

	// Products
	KeyProductCreated    = "product.created"
	KeyProductUpdated    = "product.updated"
	KeyProductDeleted    = "product.deleted"
	KeyProductNotFound   = "product.not_found"
	KeyProductOutOfStock = "product.out_of_stock"
	KeyProductOwnProduct = "product.own_product"

	// Cart
	KeyCartItemAdded     = "cart.item_added"
	KeyCartItemRemoved   = "cart.item_removed"
	KeyCartItemDuplicate = "cart.item_duplicate"
	KeyCartRemovalFailed = "cart.removal_failed"
	KeyCartItemNotFound  = "cart.not_found"

	// Checkout
	KeyCheckoutEmptySelection     = "checkout.empty_selection"
	KeyCheckoutProductUnavailable = "checkout.product_unavailable"
	KeyCheckoutInsufficientStock  = "checkout.insufficient_stock"
	KeyCheckoutOrderPlaced        = "checkout.order_placed"
	KeyCheckoutFailed             = "checkout.failed"

	// Orders
	KeyOrderNotFound          = "order.not_found"
	KeyOrderShipped           = "order.shipped"
	KeyOrderCompleted         = "order.completed"
	KeyOrderUpdateFailed      = "order.update_failed"
	KeyOrderInvalidTransition = "order.invalid_transition"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
)

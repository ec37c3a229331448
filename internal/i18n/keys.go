// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Common
	KeyAccessDenied      = "common.access_denied"
	KeyValidationInvalid = "common.validation_invalid"

	// Catalog
	KeyCategoryNotFound = "category.not_found"
	KeyCategoryExists   = "category.exists"
	KeyProductNotFound  = "product.not_found"
	KeyProductCreated   = "product.created"
	KeyProductUpdated   = "product.updated"
	KeyProductDeleted   = "product.deleted"

	// Sellers
	KeySellerNotFound = "seller.not_found"
	KeySellerApplied  = "seller.applied"

	// Cart / checkout
	KeyCartItemAdded    = "cart.item_added"
	KeyCartItemUpdated  = "cart.item_updated"
	KeyCartItemRemoved  = "cart.item_removed"
	KeyCartEmpty        = "cart.empty"
	KeyCheckoutSuccess  = "checkout.success"
	KeyShippingNotFound = "shipping.not_found"
	KeyShippingDeleted  = "shipping.deleted"

	// Orders
	KeyOrderNotFound = "order.not_found"

	// Reviews
	KeyReviewNotFound = "review.not_found"
	KeyReviewExists   = "review.exists"
	KeyReviewDeleted  = "review.deleted"

	// Profile
	KeyProfileUpdated     = "profile.updated"
	KeyProfileDeactivated = "profile.deactivated"
	KeyUserNotFound       = "user.not_found"
)

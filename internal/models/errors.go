// internal/models/errors.go
package models

import "errors"

// Sentinel errors for the cart/checkout/order core. Services wrap these with
// context via fmt.Errorf("...: %w", err); handlers map them to HTTP statuses
// and localized messages with errors.Is.
var (
	ErrUnauthenticated    = errors.New("no authenticated user")
	ErrEmptySelection     = errors.New("no cart items selected")
	ErrValidationFailed   = errors.New("validation failed")
	ErrDuplicateItem      = errors.New("product already in cart")
	ErrRemovalFailed      = errors.New("cart item lookup failed before removal")
	ErrProductUnavailable = errors.New("product no longer available")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrUpdateFailed       = errors.New("order update failed")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrOwnProduct         = errors.New("cannot buy your own product")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("not allowed")
)

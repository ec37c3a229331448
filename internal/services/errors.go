// internal/services/errors.go
package services

import "errors"

// Error kinds shared across services. Handlers translate them to HTTP
// statuses with errors.Is; services wrap them with context using %w.
// NotFound and Forbidden are deliberately given the same user-visible
// shape on several read paths so existence of other users' data is not
// leaked.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")

	// Checkout preconditions, checked in order.
	ErrEmptyCart       = errors.New("no items in cart")
	ErrInvalidShipping = errors.New("no shipping address with that id")
)

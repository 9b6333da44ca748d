package usecase

import "errors"

var (
	ErrValidation           = errors.New("validation failed")
	ErrEmptyOrder           = errors.New("order must have at least one item")
	ErrInvalidItem          = errors.New("invalid item")
	ErrInvalidOrderID       = errors.New("invalid order ID")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrAlreadyCancelled     = errors.New("order is already cancelled")
	ErrCannotCancel         = errors.New("cannot cancel order in current status")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrDuplicateISBN        = errors.New("a book with this ISBN already exists")
	ErrUserExists           = errors.New("user already exists")

	ErrBookNotFound  = errors.New("book not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrUserNotFound  = errors.New("user not found")

	ErrUnauthorized = errors.New("invalid credentials")
	ErrForbidden    = errors.New("not authorized")
)

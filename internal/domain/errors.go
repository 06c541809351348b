package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all services. Handlers translate these to HTTP
// status codes; services never write status codes themselves.
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("resource not found")
	ErrCurrencyMismatch     = errors.New("trade currency does not match holding currency")
	ErrInsufficientQuantity = errors.New("sell quantity exceeds held quantity")
	ErrNoPosition           = errors.New("no existing position for this product")
	ErrConflict             = errors.New("concurrent modification, retry the request")
	ErrStorage              = errors.New("storage failure")
)

// Validationf wraps ErrValidation with a caller-facing message, so
// errors.Is(err, ErrValidation) holds while the message survives.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// StorageErr wraps a driver/transaction error so callers can branch on
// ErrStorage without losing the underlying cause.
func StorageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

package booking

import (
	"errors"
	"fmt"
)

// Code tags every failure the lifecycle engine and payment reconciliation can
// return, so callers handle each kind explicitly instead of matching on
// message text.
type Code string

const (
	CodeInvalidTransition      Code = "INVALID_TRANSITION"
	CodeAlreadyInState         Code = "ALREADY_IN_STATE"
	CodeConcurrentModification Code = "CONCURRENT_MODIFICATION"
	CodeBookingNotPayable      Code = "BOOKING_NOT_PAYABLE"
	CodePaymentAlreadyInFlight Code = "PAYMENT_ALREADY_IN_FLIGHT"
	CodeGatewayUnavailable     Code = "GATEWAY_UNAVAILABLE"
	CodeNotFound               Code = "NOT_FOUND"
)

// Error is the typed failure returned by booking and payment operations.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError builds a typed error with a formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the error code, or the empty string for untyped errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the cart/checkout engine. Handlers and tests match on
// these with errors.Is; AppError wraps them with an HTTP-facing code.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidVoucher       = errors.New("invalid voucher")
	ErrMissingAddress       = errors.New("missing address")
	ErrMissingPaymentMethod = errors.New("missing payment method")
	ErrEmptyCart            = errors.New("empty cart")
	ErrOrderSubmission      = errors.New("order submission failed")
	ErrConflict             = errors.New("conflict")
	ErrInternal             = errors.New("internal error")
	ErrServiceUnavail       = errors.New("service unavailable")
)

// AppError is a structured application error with an HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// InvalidQuantity creates a 400 error for a negative cart quantity.
func InvalidQuantity(quantity int) *AppError {
	return &AppError{
		Code:    "INVALID_QUANTITY",
		Message: fmt.Sprintf("quantity must not be negative, got %d", quantity),
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidQuantity,
	}
}

// InvalidVoucher creates a 400 error for an unknown or malformed voucher code.
func InvalidVoucher(code string) *AppError {
	return &AppError{
		Code:    "INVALID_VOUCHER",
		Message: fmt.Sprintf("voucher code %q is not valid", code),
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidVoucher,
	}
}

// MissingAddress creates a 422 error for order placement without a shipping address.
func MissingAddress() *AppError {
	return &AppError{
		Code:    "MISSING_ADDRESS",
		Message: "a shipping address must be selected before placing an order",
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrMissingAddress,
	}
}

// MissingPaymentMethod creates a 422 error for order placement without a payment method.
func MissingPaymentMethod() *AppError {
	return &AppError{
		Code:    "MISSING_PAYMENT_METHOD",
		Message: "a payment method must be selected before placing an order",
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrMissingPaymentMethod,
	}
}

// EmptyCart creates a 422 error for order placement with no cart items.
func EmptyCart() *AppError {
	return &AppError{
		Code:    "EMPTY_CART",
		Message: "the cart is empty",
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrEmptyCart,
	}
}

// OrderSubmissionFailed creates a 502 error when the order collaborator
// rejects the submission or does not respond.
func OrderSubmissionFailed(err error) *AppError {
	return &AppError{
		Code:    "ORDER_SUBMISSION_FAILED",
		Message: "the order could not be submitted, please retry",
		Status:  http.StatusBadGateway,
		Err:     fmt.Errorf("%w: %w", ErrOrderSubmission, err),
	}
}

// Conflict creates a 409 error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// ServiceUnavailable creates a 503 error.
func ServiceUnavailable(message string) *AppError {
	return &AppError{
		Code:    "SERVICE_UNAVAILABLE",
		Message: message,
		Status:  http.StatusServiceUnavailable,
		Err:     ErrServiceUnavail,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidVoucher):
		return http.StatusBadRequest
	case errors.Is(err, ErrMissingAddress),
		errors.Is(err, ErrMissingPaymentMethod),
		errors.Is(err, ErrEmptyCart):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrOrderSubmission):
		return http.StatusBadGateway
	case errors.Is(err, ErrServiceUnavail):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

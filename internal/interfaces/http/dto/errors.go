package dto

import "net/http"

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for input validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeDimensionsOutOfBounds is used when a normalized dimension falls
	// outside the product's pricing matrix
	ErrCodeDimensionsOutOfBounds = "ERR_DIMENSIONS_OUT_OF_BOUNDS"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Checkout error codes
const (
	// ErrCodeCartEmpty is used when checkout is attempted on an empty cart
	ErrCodeCartEmpty = "ERR_CART_EMPTY"
	// ErrCodeCheckoutRejected is used when the external platform rejects the
	// draft order with field-level validation errors
	ErrCodeCheckoutRejected = "ERR_CHECKOUT_REJECTED"
	// ErrCodeCheckoutInFlight is used when a submission for the same cart is
	// already in progress
	ErrCodeCheckoutInFlight = "ERR_CHECKOUT_IN_FLIGHT"
	// ErrCodeCheckoutFailed is used when the external platform could not be
	// reached or returned an unusable response
	ErrCodeCheckoutFailed = "ERR_CHECKOUT_FAILED"
	// ErrCodeOrderNotConfirmed is used when order verification is negative
	ErrCodeOrderNotConfirmed = "ERR_ORDER_NOT_CONFIRMED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:            http.StatusBadRequest,
	ErrCodeDimensionsOutOfBounds: http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound: http.StatusNotFound,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Checkout errors
	ErrCodeCartEmpty:         http.StatusBadRequest,
	ErrCodeCheckoutRejected:  http.StatusUnprocessableEntity,
	ErrCodeCheckoutInFlight:  http.StatusConflict,
	ErrCodeCheckoutFailed:    http.StatusBadGateway,
	ErrCodeOrderNotConfirmed: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to transport codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":           ErrCodeNotFound,
	"INVALID_INPUT":       ErrCodeInvalidInput,
	"INVALID_PRODUCT":     ErrCodeInvalidInput,
	"VALIDATION_ERROR":    ErrCodeValidation,
	"CART_EMPTY":          ErrCodeCartEmpty,
	"CHECKOUT_IN_FLIGHT":  ErrCodeCheckoutInFlight,
	"CHECKOUT_FAILED":     ErrCodeCheckoutFailed,
	"ORDER_NOT_CONFIRMED": ErrCodeOrderNotConfirmed,
	"BAD_REQUEST":         ErrCodeBadRequest,
	"INTERNAL_ERROR":      ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the transport format.
// If the code is already in the transport format or unknown, returns it as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}

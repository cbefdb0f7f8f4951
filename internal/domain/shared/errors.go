package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrCartEmpty         = NewDomainError("CART_EMPTY", "Cart is empty")
	ErrCheckoutInFlight  = NewDomainError("CHECKOUT_IN_FLIGHT", "A checkout attempt is already in progress")
	ErrCheckoutFailed    = NewDomainError("CHECKOUT_FAILED", "Unable to process checkout. Please try again.")
	ErrOrderNotConfirmed = NewDomainError("ORDER_NOT_CONFIRMED", "Order could not be confirmed")
)

package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// CreateResult is the successful outcome of a draft-order creation: the
// external order identifier and the invoice/redirect URL the shopper is sent
// to.
type CreateResult struct {
	OrderID    string
	InvoiceURL string
}

// OrderGateway is the contract the core requires from the external
// order-management platform. It is a black box reached over request/response;
// the retry and error taxonomy rules live with the caller.
type OrderGateway interface {
	// CreateDraftOrder submits the draft. Field-level rejections come back as
	// *ValidationFailedError, transport-class failures as *TransientError.
	CreateDraftOrder(ctx context.Context, draft *Draft) (*CreateResult, error)

	// LookupOrder reports whether the order exists in a valid state. The read
	// is idempotent and safe to retry.
	LookupOrder(ctx context.Context, orderID string) (bool, error)
}

// UserError is a field-level validation error returned by the external
// system. Messages are surfaced verbatim to the caller.
type UserError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationFailedError carries the external system's validation errors.
// The whole operation fails; cart state is left untouched and the attempt is
// never retried automatically.
type ValidationFailedError struct {
	Errors []UserError
}

// Error implements the error interface
func (e *ValidationFailedError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ue := range e.Errors {
		msgs[i] = ue.Message
	}
	return "order rejected: " + strings.Join(msgs, ", ")
}

// Messages returns the verbatim external messages
func (e *ValidationFailedError) Messages() []string {
	msgs := make([]string, len(e.Errors))
	for i, ue := range e.Errors {
		msgs[i] = ue.Message
	}
	return msgs
}

// TransientError marks a transport-class failure (network error, timeout,
// 5xx, rate limit) where the external system is not known to have applied the
// mutation. Only these failures are eligible for bounded automatic retry.
type TransientError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a transport-class failure
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

package checkout

import (
	"github.com/google/uuid"
)

// AttemptState is the state of one checkout attempt
type AttemptState string

const (
	StateIdle             AttemptState = "idle"
	StateSubmitting       AttemptState = "submitting"
	StateSucceeded        AttemptState = "succeeded"
	StateValidationFailed AttemptState = "validation_failed"
	StateTransientFailure AttemptState = "transient_failure"
	StateFatal            AttemptState = "fatal"
)

// Attempt tracks one checkout submission through its state machine:
//
//	Idle -> Submitting -> Succeeded | ValidationFailed | TransientFailure | Fatal
//
// TransientFailure may re-enter Submitting up to the retry bound; every other
// terminal state ends the attempt. A ValidationFailed or Fatal attempt is
// never resubmitted - the caller must change the input and start a new
// attempt. The Token doubles as the idempotency key for the submission, so a
// duplicate in-flight submission of the same attempt can be rejected.
type Attempt struct {
	Token      string
	state      AttemptState
	retries    int
	maxRetries int

	invoiceURL string
	orderID    string
	messages   []string
}

// NewAttempt creates an idle attempt with a fresh idempotency token
func NewAttempt(maxRetries int) *Attempt {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Attempt{
		Token:      uuid.NewString(),
		state:      StateIdle,
		maxRetries: maxRetries,
	}
}

// State returns the current state
func (a *Attempt) State() AttemptState {
	return a.state
}

// Retries returns how many transient retries have happened
func (a *Attempt) Retries() int {
	return a.retries
}

// InvoiceURL returns the redirect URL of a succeeded attempt
func (a *Attempt) InvoiceURL() string {
	return a.invoiceURL
}

// OrderID returns the external order id of a succeeded attempt
func (a *Attempt) OrderID() string {
	return a.orderID
}

// Messages returns the verbatim external validation messages, if any
func (a *Attempt) Messages() []string {
	return a.messages
}

// Begin moves the attempt into Submitting. Returns false if the attempt is
// not in a state that allows submission.
func (a *Attempt) Begin() bool {
	if a.state != StateIdle && a.state != StateTransientFailure {
		return false
	}
	a.state = StateSubmitting
	return true
}

// Succeed records the external result and ends the attempt
func (a *Attempt) Succeed(orderID, invoiceURL string) {
	a.orderID = orderID
	a.invoiceURL = invoiceURL
	a.state = StateSucceeded
}

// FailValidation records verbatim external messages and ends the attempt
func (a *Attempt) FailValidation(messages []string) {
	a.messages = messages
	a.state = StateValidationFailed
}

// FailTransient records a transport-class failure. Returns true if the
// attempt may re-enter Submitting, false once the retry bound is exhausted,
// in which case the attempt becomes Fatal.
func (a *Attempt) FailTransient() bool {
	if a.retries < a.maxRetries {
		a.retries++
		a.state = StateTransientFailure
		return true
	}
	a.state = StateFatal
	return false
}

// Fail ends the attempt with an unexpected failure
func (a *Attempt) Fail() {
	a.state = StateFatal
}

// Terminal reports whether the attempt has reached a terminal state
func (a *Attempt) Terminal() bool {
	switch a.state {
	case StateSucceeded, StateValidationFailed, StateFatal:
		return true
	}
	return false
}

package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptLifecycle(t *testing.T) {
	t.Run("success path", func(t *testing.T) {
		a := NewAttempt(2)
		assert.Equal(t, StateIdle, a.State())
		assert.NotEmpty(t, a.Token)

		require.True(t, a.Begin())
		assert.Equal(t, StateSubmitting, a.State())

		a.Succeed("gid://shopify/DraftOrder/1", "https://shop.example/invoice/1")
		assert.Equal(t, StateSucceeded, a.State())
		assert.True(t, a.Terminal())
		assert.Equal(t, "https://shop.example/invoice/1", a.InvoiceURL())
		assert.Equal(t, "gid://shopify/DraftOrder/1", a.OrderID())
	})

	t.Run("transient failures re-enter submitting up to the bound", func(t *testing.T) {
		a := NewAttempt(2)
		require.True(t, a.Begin())

		require.True(t, a.FailTransient())
		assert.Equal(t, StateTransientFailure, a.State())
		assert.False(t, a.Terminal())
		require.True(t, a.Begin())

		require.True(t, a.FailTransient())
		require.True(t, a.Begin())

		// Third transient failure exhausts the bound.
		assert.False(t, a.FailTransient())
		assert.Equal(t, StateFatal, a.State())
		assert.True(t, a.Terminal())
		assert.Equal(t, 2, a.Retries())
	})

	t.Run("validation failure is terminal and never resubmitted", func(t *testing.T) {
		a := NewAttempt(2)
		require.True(t, a.Begin())
		a.FailValidation([]string{"Line item price is invalid"})

		assert.Equal(t, StateValidationFailed, a.State())
		assert.True(t, a.Terminal())
		assert.Equal(t, []string{"Line item price is invalid"}, a.Messages())
		assert.False(t, a.Begin())
	})

	t.Run("fatal is terminal", func(t *testing.T) {
		a := NewAttempt(0)
		require.True(t, a.Begin())
		a.Fail()
		assert.True(t, a.Terminal())
		assert.False(t, a.Begin())
	})

	t.Run("tokens are unique per attempt", func(t *testing.T) {
		assert.NotEqual(t, NewAttempt(1).Token, NewAttempt(1).Token)
	})
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&TransientError{Op: "create draft order", Err: assert.AnError}))
	assert.False(t, IsTransient(assert.AnError))
	assert.False(t, IsTransient(&ValidationFailedError{}))
}

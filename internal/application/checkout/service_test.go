package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/raamdecor/storefront/internal/domain/cart"
	"github.com/raamdecor/storefront/internal/domain/checkout"
	"github.com/raamdecor/storefront/internal/domain/shared"
	"github.com/raamdecor/storefront/internal/infrastructure/cartstore"
)

// fakeGateway records every call and replays scripted outcomes in order
type fakeGateway struct {
	mu          sync.Mutex
	createCalls int
	lookupCalls int
	outcomes    []func() (*checkout.CreateResult, error)
	lookup      func(orderID string) (bool, error)
}

func (g *fakeGateway) CreateDraftOrder(ctx context.Context, draft *checkout.Draft) (*checkout.CreateResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.createCalls
	g.createCalls++
	if i >= len(g.outcomes) {
		i = len(g.outcomes) - 1
	}
	return g.outcomes[i]()
}

func (g *fakeGateway) LookupOrder(ctx context.Context, orderID string) (bool, error) {
	g.mu.Lock()
	g.lookupCalls++
	g.mu.Unlock()
	return g.lookup(orderID)
}

func succeedWith(orderID, invoiceURL string) func() (*checkout.CreateResult, error) {
	return func() (*checkout.CreateResult, error) {
		return &checkout.CreateResult{OrderID: orderID, InvoiceURL: invoiceURL}, nil
	}
}

func failTransient() func() (*checkout.CreateResult, error) {
	return func() (*checkout.CreateResult, error) {
		return nil, &checkout.TransientError{Op: "create", Err: errors.New("HTTP 502")}
	}
}

func failValidation(messages ...string) func() (*checkout.CreateResult, error) {
	return func() (*checkout.CreateResult, error) {
		errs := make([]checkout.UserError, len(messages))
		for i, m := range messages {
			errs[i] = checkout.UserError{Message: m}
		}
		return nil, &checkout.ValidationFailedError{Errors: errs}
	}
}

// fakeTokenStore is an in-memory TokenStore without expiry handling
type fakeTokenStore struct {
	mu     sync.Mutex
	marked map[string]bool
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{marked: make(map[string]bool)}
}

func (s *fakeTokenStore) MarkInFlight(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.marked[token] {
		return false, nil
	}
	s.marked[token] = true
	return true, nil
}

func (s *fakeTokenStore) Release(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.marked, token)
	return nil
}

func (s *fakeTokenStore) Close() error { return nil }

func fastConfig() Config {
	return Config{MaxRetries: 2, TokenTTL: time.Minute}
}

func storeWithCart(t *testing.T, cartID string) *cartstore.MemoryStore {
	t.Helper()
	store := cartstore.NewMemoryStore(cart.DefaultRetention, zap.NewNop())
	c := cart.New()
	c.AddConfiguredItem("roller-white", "Roller Blind White", 100, 150, 4599)
	require.NoError(t, store.Save(context.Background(), cartID, c))
	return store
}

func TestService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart rejected before any external call", func(t *testing.T) {
		store := cartstore.NewMemoryStore(cart.DefaultRetention, zap.NewNop())
		require.NoError(t, store.Save(ctx, "cart-1", cart.New()))
		gateway := &fakeGateway{outcomes: []func() (*checkout.CreateResult, error){succeedWith("o", "u")}}

		svc := NewService(store, gateway, newFakeTokenStore(), fastConfig(), nil)
		_, err := svc.Checkout(ctx, "cart-1")
		assert.ErrorIs(t, err, shared.ErrCartEmpty)
		assert.Equal(t, 0, gateway.createCalls, "gateway must not be called for an empty cart")
	})

	t.Run("absent cart rejected", func(t *testing.T) {
		store := cartstore.NewMemoryStore(cart.DefaultRetention, zap.NewNop())
		gateway := &fakeGateway{outcomes: []func() (*checkout.CreateResult, error){succeedWith("o", "u")}}

		svc := NewService(store, gateway, newFakeTokenStore(), fastConfig(), nil)
		_, err := svc.Checkout(ctx, "missing")
		assert.ErrorIs(t, err, shared.ErrCartEmpty)
		assert.Equal(t, 0, gateway.createCalls)
	})

	t.Run("successful submission", func(t *testing.T) {
		store := storeWithCart(t, "cart-1")
		gateway := &fakeGateway{outcomes: []func() (*checkout.CreateResult, error){
			succeedWith("gid://shopify/DraftOrder/42", "https://pay.example/42"),
		}}

		svc := NewService(store, gateway, newFakeTokenStore(), fastConfig(), nil)
		result, err := svc.Checkout(ctx, "cart-1")
		require.NoError(t, err)
		assert.Equal(t, "gid://shopify/DraftOrder/42", result.OrderID)
		assert.Equal(t, "https://pay.example/42", result.InvoiceURL)
		assert.NotEmpty(t, result.AttemptID)
		assert.Equal(t, 1, gateway.createCalls)

		// the cart survives until the order is verified
		c, err := store.Load(ctx, "cart-1")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.False(t, c.IsEmpty())
	})

	t.Run("duplicate in-flight submission rejected", func(t *testing.T) {
		store := storeWithCart(t, "cart-1")
		gateway := &fakeGateway{outcomes: []func() (*checkout.CreateResult, error){
			succeedWith("order", "url"),
		}}
		tokens := newFakeTokenStore()

		svc := NewService(store, gateway, tokens, fastConfig(), nil)
		_, err := svc.Checkout(ctx, "cart-1")
		require.NoError(t, err)

		_, err = svc.Checkout(ctx, "cart-1")
		assert.ErrorIs(t, err, shared.ErrCheckoutInFlight)
		assert.Equal(t, 1, gateway.createCalls)
	})

	t.Run("validation errors surface verbatim and leave cart unchanged", func(t *testing.T) {
		store := storeWithCart(t, "cart-1")
		gateway := &fakeGateway{outcomes: []func() (*checkout.CreateResult, error){
			failValidation("Line items cannot be blank", "Invalid variant"),
		}}
		tokens := newFakeTokenStore()

		svc := NewService(store, gateway, tokens, fastConfig(), nil)
		_, err := svc.Checkout(ctx, "cart-1")

		var vfe *checkout.ValidationFailedError
		require.ErrorAs(t, err, &vfe)
		assert.Equal(t, []string{"Line items cannot be blank", "Invalid variant"}, vfe.Messages())
		assert.Equal(t, 1, gateway.createCalls, "validation failures are never retried")

		c, loadErr := store.Load(ctx, "cart-1")
		require.NoError(t, loadErr)
		require.NotNil(t, c)
		assert.Len(t, c.Items(), 1)

		// a released token allows resubmission after the shopper fixes input
		ok, _ := tokens.MarkInFlight(ctx, "cart-1", time.Minute)
		assert.True(t, ok)
	})

	t.Run("transient failures retried up to the bound", func(t *testing.T) {
		store := storeWithCart(t, "cart-1")
		gateway := &fakeGateway{outcomes: []func() (*checkout.CreateResult, error){
			failTransient(),
			failTransient(),
			succeedWith("order", "url"),
		}}

		svc := NewService(store, gateway, newFakeTokenStore(), fastConfig(), nil)
		result, err := svc.Checkout(ctx, "cart-1")
		require.NoError(t, err)
		assert.Equal(t, "order", result.OrderID)
		assert.Equal(t, 3, gateway.createCalls)
	})

	t.Run("exhausted retries fail with the generic checkout error", func(t *testing.T) {
		store := storeWithCart(t, "cart-1")
		gateway := &fakeGateway{outcomes: []func() (*checkout.CreateResult, error){failTransient()}}

		svc := NewService(store, gateway, newFakeTokenStore(), fastConfig(), nil)
		_, err := svc.Checkout(ctx, "cart-1")
		assert.ErrorIs(t, err, shared.ErrCheckoutFailed)
		assert.Equal(t, 3, gateway.createCalls, "initial call plus two retries")
	})

	t.Run("unexpected gateway error fails generically without retry", func(t *testing.T) {
		store := storeWithCart(t, "cart-1")
		gateway := &fakeGateway{outcomes: []func() (*checkout.CreateResult, error){
			func() (*checkout.CreateResult, error) { return nil, errors.New("malformed response") },
		}}

		svc := NewService(store, gateway, newFakeTokenStore(), fastConfig(), nil)
		_, err := svc.Checkout(ctx, "cart-1")
		assert.ErrorIs(t, err, shared.ErrCheckoutFailed)
		assert.Equal(t, 1, gateway.createCalls)
	})
}

func TestService_VerifyOrder(t *testing.T) {
	ctx := context.Background()
	store := cartstore.NewMemoryStore(cart.DefaultRetention, zap.NewNop())

	t.Run("existing order verifies", func(t *testing.T) {
		gateway := &fakeGateway{lookup: func(string) (bool, error) { return true, nil }}
		svc := NewService(store, gateway, newFakeTokenStore(), fastConfig(), nil)
		assert.True(t, svc.VerifyOrder(ctx, "order-1"))
	})

	t.Run("unknown order reports false", func(t *testing.T) {
		gateway := &fakeGateway{lookup: func(string) (bool, error) { return false, nil }}
		svc := NewService(store, gateway, newFakeTokenStore(), fastConfig(), nil)
		assert.False(t, svc.VerifyOrder(ctx, "order-1"))
	})

	t.Run("empty order id reports false without lookup", func(t *testing.T) {
		gateway := &fakeGateway{lookup: func(string) (bool, error) { return true, nil }}
		svc := NewService(store, gateway, newFakeTokenStore(), fastConfig(), nil)
		assert.False(t, svc.VerifyOrder(ctx, ""))
		assert.Equal(t, 0, gateway.lookupCalls)
	})

	t.Run("transient lookup failures are retried", func(t *testing.T) {
		calls := 0
		gateway := &fakeGateway{lookup: func(string) (bool, error) {
			calls++
			if calls == 1 {
				return false, &checkout.TransientError{Op: "lookup", Err: errors.New("timeout")}
			}
			return true, nil
		}}
		svc := NewService(store, gateway, newFakeTokenStore(), fastConfig(), nil)
		assert.True(t, svc.VerifyOrder(ctx, "order-1"))
		assert.Equal(t, 2, calls)
	})

	t.Run("persistent failure reports false", func(t *testing.T) {
		gateway := &fakeGateway{lookup: func(string) (bool, error) {
			return false, errors.New("platform said no")
		}}
		svc := NewService(store, gateway, newFakeTokenStore(), fastConfig(), nil)
		assert.False(t, svc.VerifyOrder(ctx, "order-1"))
	})
}

func TestService_ConfirmAndClear(t *testing.T) {
	ctx := context.Background()

	t.Run("verified order clears the cart", func(t *testing.T) {
		store := storeWithCart(t, "cart-1")
		gateway := &fakeGateway{lookup: func(string) (bool, error) { return true, nil }}
		svc := NewService(store, gateway, newFakeTokenStore(), fastConfig(), nil)

		assert.True(t, svc.ConfirmAndClear(ctx, "cart-1", "order-1"))

		c, err := store.Load(ctx, "cart-1")
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("unverified order preserves the cart", func(t *testing.T) {
		store := storeWithCart(t, "cart-1")
		gateway := &fakeGateway{lookup: func(string) (bool, error) { return false, nil }}
		svc := NewService(store, gateway, newFakeTokenStore(), fastConfig(), nil)

		assert.False(t, svc.ConfirmAndClear(ctx, "cart-1", "order-1"))

		c, err := store.Load(ctx, "cart-1")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.False(t, c.IsEmpty())
	})

	t.Run("inconclusive verification preserves the cart", func(t *testing.T) {
		store := storeWithCart(t, "cart-1")
		gateway := &fakeGateway{lookup: func(string) (bool, error) {
			return false, errors.New("lookup broke")
		}}
		svc := NewService(store, gateway, newFakeTokenStore(), fastConfig(), nil)

		assert.False(t, svc.ConfirmAndClear(ctx, "cart-1", "order-1"))

		c, err := store.Load(ctx, "cart-1")
		require.NoError(t, err)
		assert.NotNil(t, c)
	})
}

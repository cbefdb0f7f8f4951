package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/raamdecor/storefront/internal/domain/cart"
	"github.com/raamdecor/storefront/internal/domain/checkout"
	"github.com/raamdecor/storefront/internal/domain/shared"
	"github.com/raamdecor/storefront/internal/domain/shared/valueobject"
)

// Config holds checkout orchestration settings
type Config struct {
	// MaxRetries bounds automatic resubmission after transport-class failures
	MaxRetries int
	// TokenTTL is how long a stuck in-flight submission blocks the cart
	TokenTTL time.Duration
}

// DefaultConfig returns the default checkout configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries: 2,
		TokenTTL:   10 * time.Minute,
	}
}

// Result is the successful outcome of a checkout attempt
type Result struct {
	OrderID    string `json:"order_id"`
	InvoiceURL string `json:"invoice_url"`
	AttemptID  string `json:"attempt_id"`
}

// Service orchestrates checkout: it turns the cart into a draft order,
// submits it once with bounded retry on transport failures, and clears the
// cart only after the resulting order is affirmatively verified.
type Service struct {
	carts   cart.Store
	gateway checkout.OrderGateway
	tokens  shared.TokenStore
	cfg     Config
	logger  *zap.Logger
}

// NewService creates a new checkout Service
func NewService(carts cart.Store, gateway checkout.OrderGateway, tokens shared.TokenStore, cfg Config, logger *zap.Logger) *Service {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		carts:   carts,
		gateway: gateway,
		tokens:  tokens,
		cfg:     cfg,
		logger:  logger,
	}
}

// Checkout submits the cart as a draft order.
//
// An empty or absent cart is rejected before any external call. A second
// submission for the same cart while one is in flight is rejected with
// ErrCheckoutInFlight. External validation errors pass through verbatim and
// are never retried; only transport-class failures are retried, up to the
// configured bound. Any other failure surfaces as the generic
// ErrCheckoutFailed with the detail logged server side.
func (s *Service) Checkout(ctx context.Context, cartID string) (*Result, error) {
	c, err := s.carts.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsEmpty() {
		return nil, shared.ErrCartEmpty
	}

	draft, err := checkout.BuildDraft(c.Items(), valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	ok, err := s.tokens.MarkInFlight(ctx, cartID, s.cfg.TokenTTL)
	if err != nil {
		// degraded duplicate protection is preferable to blocking checkout
		s.logger.Warn("token store unavailable, proceeding without duplicate guard",
			zap.String("cart_id", cartID), zap.Error(err))
	} else if !ok {
		return nil, shared.ErrCheckoutInFlight
	}

	attempt := checkout.NewAttempt(s.cfg.MaxRetries)
	var created *checkout.CreateResult

	operation := func() error {
		if !attempt.Begin() {
			return backoff.Permanent(errors.New("attempt is not submittable"))
		}
		res, err := s.gateway.CreateDraftOrder(ctx, draft)
		if err == nil {
			created = res
			attempt.Succeed(res.OrderID, res.InvoiceURL)
			return nil
		}

		var vfe *checkout.ValidationFailedError
		if errors.As(err, &vfe) {
			attempt.FailValidation(vfe.Messages())
			return backoff.Permanent(err)
		}
		if checkout.IsTransient(err) {
			if attempt.FailTransient() {
				return err
			}
			return backoff.Permanent(err)
		}
		attempt.Fail()
		return backoff.Permanent(err)
	}

	err = backoff.Retry(operation, backoff.WithContext(newBackOff(), ctx))
	if err != nil {
		s.releaseToken(ctx, cartID)

		var vfe *checkout.ValidationFailedError
		if errors.As(err, &vfe) {
			s.logger.Info("draft order rejected by platform",
				zap.String("cart_id", cartID),
				zap.Strings("messages", vfe.Messages()))
			return nil, vfe
		}

		s.logger.Error("checkout attempt failed",
			zap.String("cart_id", cartID),
			zap.String("attempt_id", attempt.Token),
			zap.Int("retries", attempt.Retries()),
			zap.Error(err))
		return nil, shared.ErrCheckoutFailed
	}

	s.logger.Info("draft order created",
		zap.String("cart_id", cartID),
		zap.String("order_id", created.OrderID),
		zap.String("attempt_id", attempt.Token),
		zap.Int("retries", attempt.Retries()))

	return &Result{
		OrderID:    created.OrderID,
		InvoiceURL: created.InvoiceURL,
		AttemptID:  attempt.Token,
	}, nil
}

// VerifyOrder reports whether the order exists on the platform. The lookup
// is idempotent, so transport failures are retried; after that, any
// remaining ambiguity reports false rather than guessing.
func (s *Service) VerifyOrder(ctx context.Context, orderID string) bool {
	if orderID == "" {
		return false
	}

	var valid bool
	operation := func() error {
		ok, err := s.gateway.LookupOrder(ctx, orderID)
		if err != nil {
			if checkout.IsTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		valid = ok
		return nil
	}

	err := backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(newBackOff(), uint64(s.cfg.MaxRetries)), ctx))
	if err != nil {
		s.logger.Warn("order verification inconclusive",
			zap.String("order_id", orderID), zap.Error(err))
		return false
	}
	return valid
}

// ConfirmAndClear clears the cart only after the order is affirmatively
// verified. When verification is negative or inconclusive the cart is
// preserved; losing a cart over a flaky lookup is the worse failure.
func (s *Service) ConfirmAndClear(ctx context.Context, cartID, orderID string) bool {
	if !s.VerifyOrder(ctx, orderID) {
		return false
	}

	if err := s.carts.Delete(ctx, cartID); err != nil {
		s.logger.Warn("failed to clear cart after verified order",
			zap.String("cart_id", cartID),
			zap.String("order_id", orderID),
			zap.Error(err))
	}
	s.releaseToken(ctx, cartID)
	return true
}

func (s *Service) releaseToken(ctx context.Context, cartID string) {
	if err := s.tokens.Release(ctx, cartID); err != nil {
		s.logger.Warn("failed to release checkout token",
			zap.String("cart_id", cartID), zap.Error(err))
	}
}

// newBackOff returns the retry schedule for external calls
func newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 30 * time.Second
	return b
}

package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/raamdecor/storefront/internal/domain/cart"
	"github.com/raamdecor/storefront/internal/domain/catalog"
	"github.com/raamdecor/storefront/internal/domain/pricing"
	"github.com/raamdecor/storefront/internal/domain/shared"
)

// MatrixSource resolves a product's pricing matrix by its catalog path
type MatrixSource interface {
	Matrix(path string) (*pricing.Matrix, error)
}

// Service orchestrates cart mutations. Each cart is single-writer: a per-cart
// mutex serializes concurrent requests for the same cart id, so aggregate
// invariants never see interleaved mutations.
type Service struct {
	store    cart.Store
	products catalog.Store
	matrices MatrixSource
	logger   *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new cart Service
func NewService(store cart.Store, products catalog.Store, matrices MatrixSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		products: products,
		matrices: matrices,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
	}
}

// View is the read model returned by every cart operation. Totals are
// derived from the line items on every call, never cached.
type View struct {
	Items          []cart.LineItem `json:"items"`
	ItemCount      int64           `json:"item_count"`
	TotalMinor     int64           `json:"total_minor_units"`
	TotalFormatted string          `json:"total_formatted"`
}

// AddItemRequest adds one unit of a configured product. Width and height are
// the values exactly as entered; they drive both pricing and line identity.
type AddItemRequest struct {
	ProductID string  `json:"product_id"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// lockFor returns the mutex serializing writes for one cart id
func (s *Service) lockFor(cartID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[cartID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[cartID] = l
	}
	return l
}

// withCart loads the cart (or starts an empty one), applies the mutation
// under the per-cart lock, and persists a full snapshot. A failed save is
// logged and does not roll back the mutation; the response reflects the
// in-memory state the shopper just produced.
func (s *Service) withCart(ctx context.Context, cartID string, fn func(c *cart.Cart) error) (*View, error) {
	l := s.lockFor(cartID)
	l.Lock()
	defer l.Unlock()

	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = cart.New()
	}

	if err := fn(c); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, cartID, c); err != nil {
		s.logger.Warn("failed to persist cart snapshot",
			zap.String("cart_id", cartID), zap.Error(err))
	}
	return viewOf(c), nil
}

// Get returns the current cart, treating absent and expired carts as empty
func (s *Service) Get(ctx context.Context, cartID string) (*View, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = cart.New()
	}
	return viewOf(c), nil
}

// AddItem resolves the current price for the entered dimensions and adds one
// unit. The price is resolved server side at add time and snapshotted on the
// line item; later matrix changes never reprice lines already in the cart.
func (s *Service) AddItem(ctx context.Context, cartID string, req AddItemRequest) (*View, error) {
	product, err := s.products.ByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	matrix, err := s.matrices.Matrix(product.PricingMatrixPath)
	if err != nil {
		return nil, err
	}

	input := pricing.DimensionInput{Width: req.Width, Height: req.Height}
	if err := pricing.ValidateDimensions(input, matrix); err != nil {
		return nil, err
	}

	quote, err := pricing.Resolve(matrix, req.Width, req.Height)
	if err != nil {
		return nil, err
	}

	return s.withCart(ctx, cartID, func(c *cart.Cart) error {
		c.AddConfiguredItem(product.ID, product.Name, req.Width, req.Height, quote.PriceMinorUnits)
		return nil
	})
}

// AddSample adds the product's swatch sample. At most one sample line per
// product exists; repeated adds are a no-op.
func (s *Service) AddSample(ctx context.Context, cartID, productID string) (*View, error) {
	product, err := s.products.ByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.OffersSamples() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Samples are not available for this product")
	}

	return s.withCart(ctx, cartID, func(c *cart.Cart) error {
		c.AddSample(product.ID, product.Name, product.SamplePriceMinorUnits)
		return nil
	})
}

// UpdateQuantity sets a line's quantity. Out-of-range values and sample
// lines are silent no-ops, matching the aggregate's rules.
func (s *Service) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int64) (*View, error) {
	return s.withCart(ctx, cartID, func(c *cart.Cart) error {
		c.UpdateQuantity(itemID, quantity)
		return nil
	})
}

// RemoveItem removes a line; removing an absent line is a no-op
func (s *Service) RemoveItem(ctx context.Context, cartID, itemID string) (*View, error) {
	return s.withCart(ctx, cartID, func(c *cart.Cart) error {
		c.RemoveItem(itemID)
		return nil
	})
}

// Clear empties the cart and deletes the persisted snapshot
func (s *Service) Clear(ctx context.Context, cartID string) (*View, error) {
	l := s.lockFor(cartID)
	l.Lock()
	defer l.Unlock()

	if err := s.store.Delete(ctx, cartID); err != nil {
		s.logger.Warn("failed to delete cart snapshot",
			zap.String("cart_id", cartID), zap.Error(err))
	}
	return viewOf(cart.New()), nil
}

func viewOf(c *cart.Cart) *View {
	return &View{
		Items:          c.Items(),
		ItemCount:      c.ItemCount(),
		TotalMinor:     c.TotalPriceMinorUnits(),
		TotalFormatted: pricing.FormatMinorUnits(c.TotalPriceMinorUnits()),
	}
}

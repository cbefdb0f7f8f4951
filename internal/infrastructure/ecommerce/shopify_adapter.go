package ecommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/raamdecor/storefront/internal/domain/checkout"
)

// maxResponseSize is the maximum allowed response size from the Shopify API (10MB)
const maxResponseSize = 10 * 1024 * 1024

const draftOrderCreateMutation = `
mutation draftOrderCreate($input: DraftOrderInput!) {
  draftOrderCreate(input: $input) {
    draftOrder {
      id
      invoiceUrl
    }
    userErrors {
      field
      message
    }
  }
}`

const orderLookupQuery = `
query orderLookup($id: ID!) {
  node(id: $id) {
    id
  }
}`

// ShopifyAdapter implements checkout.OrderGateway against the Shopify Admin
// GraphQL API. Draft orders are created with the invoice URL as the payment
// redirect; order existence is verified through a node lookup.
type ShopifyAdapter struct {
	config     *ShopifyConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewShopifyAdapter creates a new Shopify adapter with the given configuration
func NewShopifyAdapter(config *ShopifyConfig, logger *zap.Logger) (*ShopifyAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ShopifyAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

// CreateDraftOrder submits the draft through the draftOrderCreate mutation.
// Field-level rejections come back as *checkout.ValidationFailedError with
// the external messages verbatim; transport-class failures come back as
// *checkout.TransientError.
func (a *ShopifyAdapter) CreateDraftOrder(ctx context.Context, draft *checkout.Draft) (*checkout.CreateResult, error) {
	lines := make([]draftOrderLineItemInput, 0, len(draft.LineItems))
	for _, item := range draft.LineItems {
		line := draftOrderLineItemInput{
			Title:             item.Title,
			OriginalUnitPrice: item.UnitPrice.MajorUnitsString(),
			Quantity:          item.Quantity,
		}
		for _, attr := range item.CustomAttributes {
			line.CustomAttributes = append(line.CustomAttributes, attributeInput{
				Key:   attr.Key,
				Value: attr.Value,
			})
		}
		lines = append(lines, line)
	}

	body, err := a.doRequest(ctx, "draftOrderCreate", graphqlRequest{
		Query: draftOrderCreateMutation,
		Variables: map[string]any{
			"input": map[string]any{"lineItems": lines},
		},
	})
	if err != nil {
		return nil, err
	}

	var resp draftOrderCreateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("shopify: failed to parse draftOrderCreate response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, a.classifyGraphQLErrors("draftOrderCreate", resp.Errors)
	}

	payload := resp.Data.DraftOrderCreate
	if len(payload.UserErrors) > 0 {
		errs := make([]checkout.UserError, len(payload.UserErrors))
		for i, ue := range payload.UserErrors {
			errs[i] = checkout.UserError{Field: ue.FieldPath(), Message: ue.Message}
		}
		return nil, &checkout.ValidationFailedError{Errors: errs}
	}

	if payload.DraftOrder == nil || payload.DraftOrder.InvoiceURL == "" {
		a.logger.Error("draft order response missing invoice url",
			zap.String("response", string(body)))
		return nil, fmt.Errorf("shopify: draft order response missing invoice url")
	}

	return &checkout.CreateResult{
		OrderID:    payload.DraftOrder.ID,
		InvoiceURL: payload.DraftOrder.InvoiceURL,
	}, nil
}

// LookupOrder reports whether the order id resolves to an existing node.
// Ambiguous responses report false rather than guessing.
func (a *ShopifyAdapter) LookupOrder(ctx context.Context, orderID string) (bool, error) {
	body, err := a.doRequest(ctx, "orderLookup", graphqlRequest{
		Query:     orderLookupQuery,
		Variables: map[string]any{"id": orderID},
	})
	if err != nil {
		return false, err
	}

	var resp nodeLookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("shopify: failed to parse lookup response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return false, a.classifyGraphQLErrors("orderLookup", resp.Errors)
	}

	return resp.Data.Node != nil && resp.Data.Node.ID == orderID, nil
}

// doRequest performs one Admin GraphQL call and returns the raw body.
// Network failures, 5xx and 429 statuses are wrapped as TransientError.
func (a *ShopifyAdapter) doRequest(ctx context.Context, op string, payload graphqlRequest) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.EndpointURL(), bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", a.config.AccessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &checkout.TransientError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &checkout.TransientError{Op: op, Err: err}
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &checkout.TransientError{
			Op:  op,
			Err: fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("shopify: %s failed with HTTP %d", op, resp.StatusCode)
	}

	return body, nil
}

// classifyGraphQLErrors maps top-level GraphQL errors. Throttling is the only
// transient class; everything else is a terminal request failure.
func (a *ShopifyAdapter) classifyGraphQLErrors(op string, errs []graphqlError) error {
	for _, e := range errs {
		if e.Extensions.Code == "THROTTLED" {
			return &checkout.TransientError{Op: op, Err: fmt.Errorf("throttled: %s", e.Message)}
		}
	}
	return fmt.Errorf("shopify: %s failed: %s", op, errs[0].Message)
}

// Ensure ShopifyAdapter implements OrderGateway
var _ checkout.OrderGateway = (*ShopifyAdapter)(nil)

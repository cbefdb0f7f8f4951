package ecommerce

import "strings"

// graphqlRequest is the envelope for an Admin GraphQL call
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlError is a top-level GraphQL error (query-level, not userErrors)
type graphqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

// shopifyUserError is a field-scoped rejection inside a mutation payload.
// Field is a path into the mutation input.
type shopifyUserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// FieldPath renders the field path as a dotted string
func (e shopifyUserError) FieldPath() string {
	return strings.Join(e.Field, ".")
}

// draftOrderCreateResponse is the response shape of the draftOrderCreate mutation
type draftOrderCreateResponse struct {
	Data struct {
		DraftOrderCreate struct {
			DraftOrder *struct {
				ID         string `json:"id"`
				InvoiceURL string `json:"invoiceUrl"`
			} `json:"draftOrder"`
			UserErrors []shopifyUserError `json:"userErrors"`
		} `json:"draftOrderCreate"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// nodeLookupResponse is the response shape of the order verification query
type nodeLookupResponse struct {
	Data struct {
		Node *struct {
			ID string `json:"id"`
		} `json:"node"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// draftOrderLineItemInput is one line of the draftOrderCreate input
type draftOrderLineItemInput struct {
	Title             string           `json:"title"`
	OriginalUnitPrice string           `json:"originalUnitPrice"`
	Quantity          int64            `json:"quantity"`
	CustomAttributes  []attributeInput `json:"customAttributes,omitempty"`
}

// attributeInput is a key/value attribute on a draft order line
type attributeInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

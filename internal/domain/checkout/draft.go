package checkout

import (
	"fmt"
	"strconv"

	"github.com/raamdecor/storefront/internal/domain/cart"
	"github.com/raamdecor/storefront/internal/domain/shared"
	"github.com/raamdecor/storefront/internal/domain/shared/valueobject"
)

// Attribute is an opaque key/value pair attached to an external line item.
// Dimensions travel as attributes so fulfillment can reproduce the exact
// configuration; the external system never uses them for its own pricing.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DraftLineItem is one external order line built from one cart line item.
// UnitPrice carries the minor-unit snapshot from the cart verbatim; the
// gateway converts it to the external decimal major-unit representation only
// at the serialization boundary.
type DraftLineItem struct {
	Title            string
	UnitPrice        valueobject.Money
	Quantity         int64
	CustomAttributes []Attribute
}

// Draft is a one-shot draft-order request built from the cart at the moment
// checkout is initiated. It is constructed, submitted once, and discarded;
// the same content is never retried automatically after a terminal failure.
type Draft struct {
	LineItems []DraftLineItem
}

// BuildDraft converts cart line items into a draft-order request, one
// external line per cart line, in cart order. An empty cart is rejected
// before any external call can happen.
func BuildDraft(items []cart.LineItem, currency valueobject.Currency) (*Draft, error) {
	if len(items) == 0 {
		return nil, shared.ErrCartEmpty
	}

	draft := &Draft{LineItems: make([]DraftLineItem, 0, len(items))}
	for _, item := range items {
		price, err := valueobject.NewMoney(item.UnitPriceMinorUnits, currency)
		if err != nil {
			return nil, err
		}

		line := DraftLineItem{
			UnitPrice: price,
			Quantity:  item.Quantity,
		}
		switch item.Kind {
		case cart.KindSample:
			line.Title = fmt.Sprintf("%s - Sample", item.ProductName)
			line.CustomAttributes = []Attribute{
				{Key: "kind", Value: string(cart.KindSample)},
			}
		default:
			line.Title = fmt.Sprintf("%s - %scm x %scm",
				item.ProductName, formatDimension(item.Width), formatDimension(item.Height))
			line.CustomAttributes = []Attribute{
				{Key: "width", Value: formatDimension(item.Width)},
				{Key: "height", Value: formatDimension(item.Height)},
			}
		}
		draft.LineItems = append(draft.LineItems, line)
	}
	return draft, nil
}

// formatDimension renders the original entered dimension without losing
// precision (100.00001 stays 100.00001, 150 stays 150).
func formatDimension(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

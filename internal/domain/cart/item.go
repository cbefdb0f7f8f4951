package cart

import (
	"fmt"
	"hash/fnv"
	"strconv"
)

// ItemKind distinguishes dimension-configured items from fixed-price swatch
// samples.
type ItemKind string

const (
	KindConfigured ItemKind = "configured"
	KindSample     ItemKind = "sample"
)

// Quantity bounds for a single line item. Mutations outside these bounds are
// silent no-ops, mirroring manual quantity edits in the UI.
const (
	MinQuantity = 1
	MaxQuantity = 999
)

// LineItem is one distinct product configuration in the cart. Width and
// Height hold the original values exactly as entered, never the normalized
// bucket, so the cart reflects what the shopper typed. UnitPriceMinorUnits is
// a snapshot captured at add-time from the price resolver; it is never
// recomputed from a live matrix.
type LineItem struct {
	ID                  string   `json:"id"`
	ProductID           string   `json:"product_id"`
	ProductName         string   `json:"product_name"`
	Kind                ItemKind `json:"kind"`
	Width               float64  `json:"width,omitempty"`
	Height              float64  `json:"height,omitempty"`
	Quantity            int64    `json:"quantity"`
	UnitPriceMinorUnits int64    `json:"unit_price_minor_units"`
}

// OptionsSignature produces a deterministic hash of the exact entered
// dimensions. Two inputs that would normalize to the same price bucket but
// differ in the entered value (100 vs 100.00001) get different signatures by
// design: identity follows the shopper's input, not the bucket.
func OptionsSignature(width, height float64) string {
	canonical := "h=" + strconv.FormatFloat(height, 'g', -1, 64) +
		";w=" + strconv.FormatFloat(width, 'g', -1, 64)

	h := fnv.New32a()
	h.Write([]byte(canonical))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}

// ConfiguredItemID derives the deterministic identity of a configured line
// item from its product and exact dimensions. Re-adding the identical
// configuration therefore merges into the existing line instead of creating a
// duplicate row.
func ConfiguredItemID(productID string, width, height float64) string {
	return fmt.Sprintf("%s-%s", productID, OptionsSignature(width, height))
}

// SampleItemID derives the identity of a sample line item. The product alone
// is the identity: at most one sample line exists per product.
func SampleItemID(productID string) string {
	return productID + "-sample"
}

// LineTotalMinorUnits returns quantity times the unit price snapshot
func (li *LineItem) LineTotalMinorUnits() int64 {
	return li.UnitPriceMinorUnits * li.Quantity
}

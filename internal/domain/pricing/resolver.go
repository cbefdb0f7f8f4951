package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/raamdecor/storefront/internal/domain/shared/valueobject"
)

// Quote is the result of a successful price resolution. It carries both the
// normalized dimensions used for the table lookup and the original values as
// entered, so callers can store exactly what the shopper typed.
type Quote struct {
	PriceMinorUnits  int64                `json:"price_minor_units"`
	Currency         valueobject.Currency `json:"currency"`
	NormalizedWidth  float64              `json:"normalized_width"`
	NormalizedHeight float64              `json:"normalized_height"`
	OriginalWidth    float64              `json:"original_width"`
	OriginalHeight   float64              `json:"original_height"`
}

// BoundsError reports a dimension whose normalized value falls outside the
// matrix. It names the offending dimension and the valid human-facing range.
type BoundsError struct {
	Dimension  string
	Attempted  float64
	Normalized float64
	Min        float64
	Max        float64
	Unit       string
}

// Error implements the error interface
func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s dimension %v%s (normalized to %v%s) is out of bounds. Valid range: %v-%v%s",
		e.Dimension, e.Attempted, e.Unit, e.Normalized, e.Unit, e.Min, e.Max, e.Unit)
}

// NormalizeDimension rounds a dimension up to the next multiple of step.
// Examples with step 10: 71 -> 80, 80 -> 80, 80.0001 -> 90.
// Round-up is a locked contract: the matrix prices each bucket to cover
// everything up to the bucket's upper bound, so rounding up never
// under-charges.
func NormalizeDimension(dimension, step float64) float64 {
	return math.Ceil(dimension/step) * step
}

// dimensionIndex converts a normalized dimension to a matrix index.
// The first bucket (equal to the step size) maps to index 0.
func dimensionIndex(normalized, step float64) int {
	return int(normalized/step) - 1
}

// Resolve looks up the price for the given raw dimensions. It is a pure
// function: no state, no side effects, safe for concurrent use. Out-of-range
// dimensions fail with a *BoundsError; there is no clamping and no
// interpolation between buckets.
func Resolve(m *Matrix, width, height float64) (*Quote, error) {
	widthRange := m.Dimensions.Width
	heightRange := m.Dimensions.Height

	normalizedWidth := NormalizeDimension(width, widthRange.Step)
	normalizedHeight := NormalizeDimension(height, heightRange.Step)

	widthIndex := dimensionIndex(normalizedWidth, widthRange.Step)
	heightIndex := dimensionIndex(normalizedHeight, heightRange.Step)

	if widthIndex < 0 || widthIndex >= len(m.Cells) {
		return nil, &BoundsError{
			Dimension:  "width",
			Attempted:  width,
			Normalized: normalizedWidth,
			Min:        widthRange.Min,
			Max:        widthRange.Max,
			Unit:       widthRange.Unit,
		}
	}
	if heightIndex < 0 || heightIndex >= len(m.Cells[widthIndex]) {
		return nil, &BoundsError{
			Dimension:  "height",
			Attempted:  height,
			Normalized: normalizedHeight,
			Min:        heightRange.Min,
			Max:        heightRange.Max,
			Unit:       heightRange.Unit,
		}
	}

	return &Quote{
		PriceMinorUnits:  m.Cells[widthIndex][heightIndex],
		Currency:         m.Currency,
		NormalizedWidth:  normalizedWidth,
		NormalizedHeight: normalizedHeight,
		OriginalWidth:    width,
		OriginalHeight:   height,
	}, nil
}

var displayPrinter = message.NewPrinter(language.Dutch)

// FormatMinorUnits renders minor units as a localized major-unit display
// string, e.g. 4599 -> "€ 45,99". This is the only place minor units are
// converted for display; the result is never used for arithmetic.
func FormatMinorUnits(minorUnits int64) string {
	major, _ := decimal.NewFromInt(minorUnits).Div(decimal.NewFromInt(100)).Float64()
	return displayPrinter.Sprintf("€ %.2f", major)
}

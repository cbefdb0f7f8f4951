package pricing

import (
	"fmt"

	"github.com/raamdecor/storefront/internal/domain/shared/valueobject"
)

// PriceUnitCents is the only supported price unit. All matrix cells hold
// integer minor units; floating point never enters price arithmetic.
const PriceUnitCents = "cents"

// DimensionRange describes the valid range of a single dimension (width or
// height) in a pricing matrix. Min and Max are inclusive and expressed in the
// range's Unit; Step is the bucket size.
type DimensionRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
	Unit string  `json:"unit"`
}

// BucketCount returns the number of discrete buckets covered by the range
func (r DimensionRange) BucketCount() int {
	return int((r.Max-r.Min)/r.Step) + 1
}

// Dimensions holds the width and height ranges of a matrix
type Dimensions struct {
	Width  DimensionRange `json:"width"`
	Height DimensionRange `json:"height"`
}

// Matrix is a versioned, read-only pricing table for one product. Cells is
// width-major: Cells[widthIndex][heightIndex] is the price in minor units for
// the bucket pair. A matrix is loaded once, validated, and never mutated.
type Matrix struct {
	Version    string               `json:"version"`
	Currency   valueobject.Currency `json:"currency"`
	PriceUnit  string               `json:"priceUnit"`
	Dimensions Dimensions           `json:"dimensions"`
	Cells      [][]int64            `json:"matrix"`
}

// Validate checks the structural invariants of the matrix: rectangular cells,
// ranges that are whole multiples of the step, and cell counts that match the
// declared ranges. A matrix that fails validation must not be used for
// pricing; there is no default price.
func (m *Matrix) Validate() error {
	if m.PriceUnit != PriceUnitCents {
		return fmt.Errorf("unsupported price unit %q (want %q)", m.PriceUnit, PriceUnitCents)
	}
	if m.Currency == "" {
		return fmt.Errorf("matrix currency is empty")
	}
	if err := validateRange("width", m.Dimensions.Width); err != nil {
		return err
	}
	if err := validateRange("height", m.Dimensions.Height); err != nil {
		return err
	}

	wantRows := m.Dimensions.Width.BucketCount()
	wantCols := m.Dimensions.Height.BucketCount()
	if len(m.Cells) != wantRows {
		return fmt.Errorf("matrix has %d rows, want %d for width range %v-%v step %v",
			len(m.Cells), wantRows, m.Dimensions.Width.Min, m.Dimensions.Width.Max, m.Dimensions.Width.Step)
	}
	for i, row := range m.Cells {
		if len(row) != wantCols {
			return fmt.Errorf("matrix row %d has %d cells, want %d for height range %v-%v step %v",
				i, len(row), wantCols, m.Dimensions.Height.Min, m.Dimensions.Height.Max, m.Dimensions.Height.Step)
		}
		for j, cell := range row {
			if cell < 0 {
				return fmt.Errorf("matrix cell [%d][%d] is negative: %d", i, j, cell)
			}
		}
	}
	return nil
}

func validateRange(name string, r DimensionRange) error {
	if r.Step <= 0 {
		return fmt.Errorf("%s step must be positive, got %v", name, r.Step)
	}
	if r.Min != r.Step {
		// The index formula normalized/step-1 anchors bucket 0 at the step
		// size, so the range must start there.
		return fmt.Errorf("%s min must equal step (%v), got %v", name, r.Step, r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%s max %v is below min %v", name, r.Max, r.Min)
	}
	if rem := (r.Max - r.Min) / r.Step; rem != float64(int(rem)) {
		return fmt.Errorf("%s range %v-%v is not a whole multiple of step %v", name, r.Min, r.Max, r.Step)
	}
	return nil
}

package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	EUR Currency = "EUR" // Euro (default)
	USD Currency = "USD" // US Dollar
	GBP Currency = "GBP" // British Pound
)

// DefaultCurrency is the default currency for the storefront
const DefaultCurrency = EUR

// Money is a value object representing a monetary amount in integer minor
// units (cents). All stored and calculated prices use minor units; conversion
// to major units happens only at serialization and display boundaries.
// It is immutable - all operations return new Money instances.
type Money struct {
	minorUnits int64
	currency   Currency
}

// NewMoney creates a new Money with the specified amount in minor units
func NewMoney(minorUnits int64, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{minorUnits: minorUnits, currency: currency}, nil
}

// NewMoneyEUR creates Money in EUR from minor units (cents)
func NewMoneyEUR(minorUnits int64) Money {
	return Money{minorUnits: minorUnits, currency: EUR}
}

// Zero returns a zero-value Money in the specified currency
func Zero(currency Currency) Money {
	return Money{minorUnits: 0, currency: currency}
}

// MinorUnits returns the amount in minor units (cents)
func (m Money) MinorUnits() int64 {
	return m.minorUnits
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.minorUnits == 0
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.minorUnits < 0
}

// Add returns a new Money with the sum of both amounts
// Returns error if currencies don't match
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{minorUnits: m.minorUnits + other.minorUnits, currency: m.currency}, nil
}

// MustAdd adds two Money values, panics if currencies don't match
func (m Money) MustAdd(other Money) Money {
	result, err := m.Add(other)
	if err != nil {
		panic(err)
	}
	return result
}

// MultiplyByInt returns a new Money multiplied by an integer quantity
func (m Money) MultiplyByInt(factor int64) Money {
	return Money{minorUnits: m.minorUnits * factor, currency: m.currency}
}

// Equals returns true if both Money values are equal (same amount and currency)
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.minorUnits == other.minorUnits
}

// MajorUnitsString returns the amount as a decimal major-unit string with two
// fractional digits (e.g. 4599 -> "45.99"). This is the only conversion from
// minor to major units; the result is for serialization and display, never
// for further arithmetic.
func (m Money) MajorUnitsString() string {
	return decimal.NewFromInt(m.minorUnits).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// String returns a human-readable representation, e.g. "45.99 EUR"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.MajorUnitsString(), m.currency)
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		MinorUnits int64    `json:"minor_units"`
		Currency   Currency `json:"currency"`
	}{
		MinorUnits: m.minorUnits,
		Currency:   m.currency,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Money) UnmarshalJSON(data []byte) error {
	var v struct {
		MinorUnits int64    `json:"minor_units"`
		Currency   Currency `json:"currency"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	m.minorUnits = v.MinorUnits
	m.currency = v.Currency
	return nil
}

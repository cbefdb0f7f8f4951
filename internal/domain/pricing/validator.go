package pricing

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DimensionInput is the raw, per-request width/height pair as entered by the
// shopper, in centimeters. It is validated per request and never persisted.
type DimensionInput struct {
	Width  float64 `json:"width" validate:"required"`
	Height float64 `json:"height" validate:"required"`
}

// FieldError is a validation failure scoped to a single input field, so a UI
// can highlight exactly which of width/height is invalid.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates all field errors from one validation pass.
// Both fields are always checked, even if the first already failed, so the
// caller gets the complete error set in one round trip.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

var validate = validator.New()

// ValidateDimensions checks raw dimensions against the matrix's declared
// ranges before any normalization is attempted. Non-finite values are
// reported as a distinct "not a number" condition, not merged into range
// errors.
func ValidateDimensions(input DimensionInput, m *Matrix) error {
	var fields []FieldError
	fields = append(fields, validateDimension("width", input.Width, m.Dimensions.Width)...)
	fields = append(fields, validateDimension("height", input.Height, m.Dimensions.Height)...)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateDimension(field string, value float64, r DimensionRange) []FieldError {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return []FieldError{{Field: field, Message: fmt.Sprintf("%s is not a number", capitalize(field))}}
	}

	tag := fmt.Sprintf("gte=%v,lte=%v", r.Min, r.Max)
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var fields []FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		switch fe.Tag() {
		case "gte":
			fields = append(fields, FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must be at least %v%s", capitalize(field), r.Min, r.Unit),
			})
		case "lte":
			fields = append(fields, FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must not exceed %v%s", capitalize(field), r.Max, r.Unit),
			})
		default:
			fields = append(fields, FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s is invalid", capitalize(field)),
			})
		}
	}
	return fields
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package payload

import "fmt"

// ValidationError reports a malformed print request. It is returned before
// any layout or transport work is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid payload: %s: %s", e.Field, e.Reason)
}

// Validate checks a Receipt before layout. Items may be empty (the receipt
// simply has no item rows), but required text fields must be present and
// monetary values must not be negative.
func Validate(r *Receipt) error {
	if r.Title == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if r.Number == "" {
		return &ValidationError{Field: "number", Reason: "is required"}
	}
	if r.Total.IsNegative() {
		return &ValidationError{Field: "total", Reason: "must not be negative"}
	}
	if r.Discount != nil && r.Discount.IsNegative() {
		return &ValidationError{Field: "discount", Reason: "must not be negative"}
	}

	for i, item := range r.Items {
		if item.Name == "" {
			return &ValidationError{
				Field:  fmt.Sprintf("items[%d].name", i),
				Reason: "is required",
			}
		}
		if item.Price.IsNegative() {
			return &ValidationError{
				Field:  fmt.Sprintf("items[%d].price", i),
				Reason: "must not be negative",
			}
		}
		if item.Total.IsNegative() {
			return &ValidationError{
				Field:  fmt.Sprintf("items[%d].total", i),
				Reason: "must not be negative",
			}
		}
	}

	if r.Logo != "" && r.LogoPath != "" {
		return &ValidationError{Field: "logo", Reason: "cannot have both logo and logo_path"}
	}
	if r.Baud < 0 {
		return &ValidationError{Field: "baud", Reason: "must be positive"}
	}

	return nil
}

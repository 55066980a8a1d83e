// Package validation holds the console-side field checks that run before any
// storefront request is issued. A failed check never produces network
// traffic.
package validation

import (
	"fmt"
	"strconv"
	"strings"
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParsePrice accepts a decimal greater than zero, matching the inline price
// editor's rule.
func ParsePrice(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 {
		return 0, &ValidationError{Field: "price", Reason: "Please enter a valid price greater than 0"}
	}
	return v, nil
}

// ParseFormPrice is the modal variant: zero is a legal price there, only
// negatives and garbage are rejected.
func ParseFormPrice(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0, &ValidationError{Field: "price", Reason: "Please enter a valid price (0 or greater)"}
	}
	return v, nil
}

// ParseQuantity accepts a whole number of zero or more.
func ParseQuantity(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return 0, &ValidationError{Field: "quantity", Reason: "Please enter a valid quantity (0 or greater)"}
	}
	return v, nil
}

// Required rejects empty text fields.
func Required(field, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", &ValidationError{Field: field, Reason: "This field cannot be empty"}
	}
	return v, nil
}

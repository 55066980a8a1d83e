// Package view builds display models from product records. Everything here
// is a pure function of its input; no network or store access.
package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ovenside/bakery-admin/internal/catalog/domain"
	"github.com/ovenside/bakery-admin/internal/console/state"
)

const PlaceholderImageURL = "https://placehold.co/100x100?text=No+Image"

const (
	PlaceholderLoading = "Loading products..."
	PlaceholderEmpty   = "No products found"
	PlaceholderFailed  = "Error loading products. Please try again."
)

// Row is the visual model of one product table row: the five display
// regions plus the id that the update and delete affordances carry.
type Row struct {
	ID              int64
	ImageURL        string
	Name            string
	Category        string
	PriceDisplay    string
	QuantityDisplay string
	Status          string
}

// Table is the whole product table projection. When Placeholder is
// non-empty the table shows that single synthetic row instead of Rows.
type Table struct {
	Placeholder string
	Rows        []Row
}

// BuildRow renders one product. Prices always show exactly two decimals
// behind a currency symbol; a missing image falls back to the placeholder.
func BuildRow(p domain.Product) Row {
	imageURL := p.ImageURL
	if imageURL == "" {
		imageURL = PlaceholderImageURL
	}
	return Row{
		ID:              p.ID,
		ImageURL:        imageURL,
		Name:            p.Name,
		Category:        p.Category,
		PriceDisplay:    FormatPrice(p.Price),
		QuantityDisplay: strconv.Itoa(p.Quantity),
		Status:          p.Status,
	}
}

// BuildTable projects a store snapshot into the table model.
func BuildTable(products []domain.Product, phase state.Phase) Table {
	switch phase {
	case state.PhaseLoading:
		return Table{Placeholder: PlaceholderLoading}
	case state.PhaseFailed:
		return Table{Placeholder: PlaceholderFailed}
	case state.PhaseEmpty:
		return Table{Placeholder: PlaceholderEmpty}
	}
	rows := make([]Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, BuildRow(p))
	}
	return Table{Rows: rows}
}

// BuildRowField renders a single display region of a row, used by the
// inline editor when only one cell changes.
func BuildRowField(p domain.Product, field string) string {
	switch field {
	case "name":
		return p.Name
	case "category":
		return p.Category
	case "price":
		return FormatPrice(p.Price)
	case "quantity":
		return strconv.Itoa(p.Quantity)
	}
	return ""
}

func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// StripPrice removes the currency prefix so the inline editor can prefill
// its input with a plain number.
func StripPrice(display string) string {
	return strings.TrimPrefix(display, "$")
}

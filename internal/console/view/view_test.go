package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ovenside/bakery-admin/internal/catalog/domain"
	"github.com/ovenside/bakery-admin/internal/console/state"
)

func TestBuildRow(t *testing.T) {
	row := BuildRow(domain.Product{
		ID:       3,
		Name:     "Cinnamon Roll",
		ImageURL: "https://cdn.example.com/roll.jpg",
		Category: "Pastries",
		Price:    4.5,
		Quantity: 8,
		Status:   domain.StatusInStock,
	})

	assert.Equal(t, int64(3), row.ID)
	assert.Equal(t, "https://cdn.example.com/roll.jpg", row.ImageURL)
	assert.Equal(t, "$4.50", row.PriceDisplay)
	assert.Equal(t, "8", row.QuantityDisplay)
	assert.Equal(t, domain.StatusInStock, row.Status)
}

func TestBuildRow_MissingImage(t *testing.T) {
	row := BuildRow(domain.Product{ID: 1, Name: "Scone"})
	assert.Equal(t, PlaceholderImageURL, row.ImageURL)
}

func TestBuildTable_Placeholders(t *testing.T) {
	assert.Equal(t, PlaceholderLoading, BuildTable(nil, state.PhaseLoading).Placeholder)
	assert.Equal(t, PlaceholderFailed, BuildTable(nil, state.PhaseFailed).Placeholder)
	assert.Equal(t, PlaceholderEmpty, BuildTable(nil, state.PhaseEmpty).Placeholder)
}

func TestBuildTable_Ready(t *testing.T) {
	table := BuildTable([]domain.Product{
		{ID: 1, Name: "Scone", Price: 2},
		{ID: 2, Name: "Baguette", Price: 6},
	}, state.PhaseReady)

	assert.Empty(t, table.Placeholder)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, "Scone", table.Rows[0].Name)
}

func TestPriceRoundTrip(t *testing.T) {
	// The inline editor prefills with the displayed price minus the symbol;
	// the two functions must stay inverse for any formatted value.
	for _, price := range []float64{0, 0.01, 2.5, 4.99, 100, 1234.56} {
		display := FormatPrice(price)
		assert.Equal(t, display[1:], StripPrice(display))
		assert.Equal(t, byte('$'), display[0])
	}
}

func TestBuildRowField(t *testing.T) {
	p := domain.Product{Name: "Scone", Category: "Pastries", Price: 2.25, Quantity: 4}

	assert.Equal(t, "Scone", BuildRowField(p, "name"))
	assert.Equal(t, "Pastries", BuildRowField(p, "category"))
	assert.Equal(t, "$2.25", BuildRowField(p, "price"))
	assert.Equal(t, "4", BuildRowField(p, "quantity"))
	assert.Equal(t, "", BuildRowField(p, "status"))
}

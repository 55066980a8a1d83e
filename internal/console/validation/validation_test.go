package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	v, err := ParsePrice("4.50")
	assert.NoError(t, err)
	assert.Equal(t, 4.50, v)

	v, err = ParsePrice(" 2.25 ")
	assert.NoError(t, err)
	assert.Equal(t, 2.25, v)

	for _, raw := range []string{"-5", "0", "abc", "", "1.2.3"} {
		_, err := ParsePrice(raw)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve, "input %q", raw)
		assert.Equal(t, "price", ve.Field)
	}
}

func TestParseFormPrice(t *testing.T) {
	// Zero is legal in the modal form, unlike the inline editor.
	v, err := ParseFormPrice("0")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, v)

	_, err = ParseFormPrice("-0.01")
	assert.Error(t, err)
}

func TestParseQuantity(t *testing.T) {
	v, err := ParseQuantity("0")
	assert.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = ParseQuantity("12")
	assert.NoError(t, err)
	assert.Equal(t, 12, v)

	for _, raw := range []string{"-1", "abc", "", "2.5"} {
		_, err := ParseQuantity(raw)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve, "input %q", raw)
	}
}

func TestRequired(t *testing.T) {
	v, err := Required("name", "  Sourdough  ")
	assert.NoError(t, err)
	assert.Equal(t, "Sourdough", v)

	_, err = Required("name", "   ")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "This field cannot be empty", ve.Reason)
}

package pricing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{amount: 19.999, expected: "$20.00"},
		{amount: 0, expected: "$0.00"},
		{amount: 115, expected: "$115.00"},
		{amount: 3.14159, expected: "$3.14"},
		{amount: 2.675, expected: "$2.68"},
		{amount: 0.005, expected: "$0.01"},
		{amount: 1234567.891, expected: "$1234567.89"},
		{amount: -5, expected: "$-5.00"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, FormatCurrency(test.amount))
	}
}

func TestFormatCurrency_NonFinite(t *testing.T) {
	assert.Equal(t, "$NaN", FormatCurrency(math.NaN()))
	assert.Equal(t, "$+Inf", FormatCurrency(math.Inf(1)))
	assert.Equal(t, "$-Inf", FormatCurrency(math.Inf(-1)))
}

func TestFormatter_CustomSymbol(t *testing.T) {
	f := NewFormatter("€")
	assert.Equal(t, "€10.50", f.Format(decimal.RequireFromString("10.5")))
}

func TestFormatter_EmptySymbol(t *testing.T) {
	f := NewFormatter("")
	assert.Equal(t, DefaultCurrencySymbol, f.Symbol)
}

func TestFormatter_Parse(t *testing.T) {
	f := NewFormatter("$")

	res, err := f.Parse("$20.00")
	assert.NoError(t, err)
	assert.Equal(t, "20.00", res.StringFixed(2))

	res, err = f.Parse(" 7.5 ")
	assert.NoError(t, err)
	assert.Equal(t, "7.50", res.StringFixed(2))

	_, err = f.Parse("$abc")
	assert.Error(t, err)
}

func TestFormatter_Idempotent(t *testing.T) {
	f := NewFormatter("$")
	for _, amount := range []float64{0, 19.999, 2.675, 100, 0.1, 99999.995} {
		formatted := f.FormatFloat(amount)
		parsed, err := f.Parse(formatted)
		assert.NoError(t, err)
		assert.Equal(t, formatted, f.Format(parsed))
	}
}

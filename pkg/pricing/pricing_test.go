package pricing

import (
	"math"
	"math/rand"
	"pharmacy/pkg/errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateFinalPrice(t *testing.T) {
	res, err := CalculateFinalPrice(100, 15)
	assert.NoError(t, err)
	assert.Equal(t, 115.0, res)
}

func TestCalculateFinalPrice_ZeroBase(t *testing.T) {
	res, err := CalculateFinalPrice(0, 15)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, res)
}

func TestCalculateFinalPrice_ZeroMargin(t *testing.T) {
	for _, base := range []float64{0, 0.01, 1, 3.14, 99.99, 1e9} {
		res, err := CalculateFinalPrice(base, 0)
		assert.NoError(t, err)
		assert.Equal(t, base, res)
	}
}

func TestCalculateFinalPrice_MinusHundredMargin(t *testing.T) {
	res, err := CalculateFinalPrice(250.5, -100)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, res)
}

func TestCalculateFinalPrice_LargeMargin(t *testing.T) {
	res, err := CalculateFinalPrice(10, 1e6)
	assert.NoError(t, err)
	assert.Equal(t, 10*(1+1e6/100), res)
}

func TestCalculateFinalPrice_Formula(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		base := r.Float64() * math.Pow(10, float64(r.Intn(12)))
		margin := r.Float64()*1100 - 100
		res, err := CalculateFinalPrice(base, margin)
		assert.NoError(t, err)
		assert.Equal(t, base*(1+margin/100), res)
	}
}

func TestCalculateFinalPrice_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		base   float64
		margin float64
	}{
		{name: "negative base", base: -1, margin: 10},
		{name: "NaN base", base: math.NaN(), margin: 10},
		{name: "Inf base", base: math.Inf(1), margin: 10},
		{name: "NaN margin", base: 1, margin: math.NaN()},
		{name: "Inf margin", base: 1, margin: math.Inf(-1)},
		{name: "margin below -100", base: 1, margin: -100.5},
		{name: "overflow", base: math.MaxFloat64, margin: 100},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := CalculateFinalPrice(test.base, test.margin)
			assert.Error(t, err)
			assert.True(t, errors.ErrorIs(err, errors.ErrInvalidInput))
		})
	}
}

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		base     string
		margin   string
		expected string
	}{
		{base: "100", margin: "15", expected: "115.00"},
		{base: "0", margin: "15", expected: "0.00"},
		{base: "12.34", margin: "0", expected: "12.34"},
		{base: "10", margin: "-100", expected: "0.00"},
		{base: "9.99", margin: "20", expected: "11.99"},
		{base: "1.005", margin: "0", expected: "1.01"},
		{base: "3.333", margin: "33.3", expected: "4.44"},
	}
	for _, test := range tests {
		res, err := FinalPrice(decimal.RequireFromString(test.base), decimal.RequireFromString(test.margin))
		assert.NoError(t, err)
		assert.Equal(t, test.expected, res.StringFixed(2))
	}
}

func TestFinalPrice_InvalidInput(t *testing.T) {
	_, err := FinalPrice(decimal.NewFromInt(-1), decimal.NewFromInt(10))
	assert.True(t, errors.ErrorIs(err, errors.ErrInvalidInput))

	_, err = FinalPrice(decimal.NewFromInt(1), decimal.NewFromInt(-101))
	assert.True(t, errors.ErrorIs(err, errors.ErrInvalidInput))
}

func TestReprice(t *testing.T) {
	items := []Item{
		{Code: "A1", Description: "Ibuprofeno 400mg", BasePrice: decimal.RequireFromString("100")},
		{Code: "B2", Description: "Paracetamol 500mg", BasePrice: decimal.RequireFromString("50")},
	}
	overrides := map[string]decimal.Decimal{
		"B2": decimal.NewFromInt(30),
	}

	res, err := Reprice(items, decimal.NewFromInt(15), overrides)
	assert.NoError(t, err)
	assert.Len(t, res, 2)

	assert.Equal(t, "A1", res[0].Code)
	assert.Equal(t, "Ibuprofeno 400mg", res[0].Description)
	assert.Equal(t, "15", res[0].Margin.String())
	assert.Equal(t, "115.00", res[0].FinalPrice.StringFixed(2))

	assert.Equal(t, "B2", res[1].Code)
	assert.Equal(t, "30", res[1].Margin.String())
	assert.Equal(t, "65.00", res[1].FinalPrice.StringFixed(2))
}

func TestReprice_Empty(t *testing.T) {
	res, err := Reprice(nil, decimal.NewFromInt(15), nil)
	assert.NoError(t, err)
	assert.Empty(t, res)
}

func TestReprice_InvalidItem(t *testing.T) {
	items := []Item{
		{Code: "A1", BasePrice: decimal.RequireFromString("10")},
		{Code: "BAD", BasePrice: decimal.RequireFromString("-10")},
	}
	res, err := Reprice(items, decimal.NewFromInt(15), nil)
	assert.Nil(t, res)
	assert.ErrorContains(t, err, "code=BAD")
	assert.True(t, errors.ErrorIs(err, errors.ErrInvalidInput))
}

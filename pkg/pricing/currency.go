package pricing

import (
	"fmt"
	"math"
	"pharmacy/pkg/errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultCurrencySymbol = "$"
)

var defaultFormatter = NewFormatter(DefaultCurrencySymbol)

type (
	// Formatter renders amounts as symbol followed by the amount with two decimals.
	// Rounding is half away from zero.
	Formatter struct {
		Symbol string
	}
)

// FormatCurrency formats amount with the default "$" symbol.
func FormatCurrency(amount float64) string {
	return defaultFormatter.FormatFloat(amount)
}

func NewFormatter(symbol string) *Formatter {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return &Formatter{Symbol: symbol}
}

func (f *Formatter) Format(amount decimal.Decimal) string {
	return f.Symbol + amount.StringFixed(2)
}

// FormatFloat rounds the shortest decimal representation of amount,
// so 2.675 is "2.68" and not the "2.67" strconv would give.
// NaN and infinities are rendered as strconv spells them.
func (f *Formatter) FormatFloat(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return f.Symbol + strconv.FormatFloat(amount, 'f', 2, 64)
	}
	return f.Format(decimal.NewFromFloat(amount))
}

// Parse reads back an amount written by Format. The symbol is optional.
func (f *Formatter) Parse(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, f.Symbol))
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: can't parse amount=%q", errors.ErrInvalidInput, s)
	}
	return amount, nil
}

// Package pricing turns provider prices into sale prices.
//
// All functions are pure and safe for concurrent use.
package pricing

import (
	"fmt"
	"math"
	"pharmacy/pkg/errors"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	// MinMargin - lowest margin that still gives a non-negative price.
	MinMargin = decimal.NewFromInt(-100)
)

type (
	// Item - provider price list record handed over for repricing.
	Item struct {
		Code        string
		Description string
		BasePrice   decimal.Decimal
	}

	// PricedItem - Item with the margin it was priced with and its final price.
	PricedItem struct {
		Code        string
		Description string
		BasePrice   decimal.Decimal
		Margin      decimal.Decimal
		FinalPrice  decimal.Decimal
	}
)

// CalculateFinalPrice returns basePrice * (1 + marginPercent/100).
func CalculateFinalPrice(basePrice float64, marginPercent float64) (float64, error) {
	if !finite(basePrice) {
		return 0, fmt.Errorf("%w: base price=%v is not a finite number", errors.ErrInvalidInput, basePrice)
	}
	if basePrice < 0 {
		return 0, fmt.Errorf("%w: base price=%v is negative", errors.ErrInvalidInput, basePrice)
	}
	if !finite(marginPercent) {
		return 0, fmt.Errorf("%w: margin=%v is not a finite number", errors.ErrInvalidInput, marginPercent)
	}
	if marginPercent < -100 {
		return 0, fmt.Errorf("%w: margin=%v is below -100%%", errors.ErrInvalidInput, marginPercent)
	}

	finalPrice := basePrice * (1 + marginPercent/100)
	if !finite(finalPrice) {
		return 0, fmt.Errorf("%w: final price for base price=%v and margin=%v overflows", errors.ErrInvalidInput, basePrice, marginPercent)
	}
	return finalPrice, nil
}

// FinalPrice is CalculateFinalPrice in decimal arithmetic, rounded to cents.
func FinalPrice(basePrice decimal.Decimal, marginPercent decimal.Decimal) (decimal.Decimal, error) {
	if basePrice.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: base price=%s is negative", errors.ErrInvalidInput, basePrice)
	}
	if marginPercent.LessThan(MinMargin) {
		return decimal.Zero, fmt.Errorf("%w: margin=%s is below -100%%", errors.ErrInvalidInput, marginPercent)
	}
	// base * (100 + margin) / 100, the division is an exact shift
	return basePrice.Mul(hundred.Add(marginPercent)).Shift(-2).Round(2), nil
}

// Reprice prices every item with margin, or with overrides[item.Code] when present.
// Result keeps the order of items.
func Reprice(items []Item, margin decimal.Decimal, overrides map[string]decimal.Decimal) ([]PricedItem, error) {
	priced := make([]PricedItem, 0, len(items))
	for _, item := range items {
		itemMargin := margin
		if override, ok := overrides[item.Code]; ok {
			itemMargin = override
		}
		finalPrice, err := FinalPrice(item.BasePrice, itemMargin)
		if err != nil {
			return nil, fmt.Errorf("can't reprice item code=%s: %w", item.Code, err)
		}
		priced = append(priced, PricedItem{
			Code:        item.Code,
			Description: item.Description,
			BasePrice:   item.BasePrice,
			Margin:      itemMargin,
			FinalPrice:  finalPrice,
		})
	}
	return priced, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

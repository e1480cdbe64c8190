package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Storage limits of catalog fields.
const (
	MaxCodeLength       = 128
	MaxNameLength       = 512
	MaxExpirationLength = 64
)

// MaxAmount - upper bound of a stored cost, margin or final price.
var MaxAmount = decimal.New(1, 18)

type (
	// Product - catalog entry as it comes from the provider price list.
	Product struct {
		Code        string `db:"code"`
		Name        string `db:"name"`
		Description string `db:"description"`
		// Cost - provider (base) price
		Cost decimal.Decimal `db:"cost"`
		// Expiration - free text expiration date, kept as written in the price list
		Expiration string `db:"expiration"`
	}

	// PricedProduct - Product with a margin applied.
	PricedProduct struct {
		Product
		Margin     decimal.Decimal
		FinalPrice decimal.Decimal
	}

	ProductFilter struct {
		// Query - case-insensitive substring of the product name, empty matches everything
		Query string
	}

	ImportResult struct {
		Imported int
		Skipped  int
	}
)

// Validate checks that the text fields fit the catalog storage.
func (p Product) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Code, validation.Length(0, MaxCodeLength)),
		validation.Field(&p.Name, validation.Required, validation.Length(0, MaxNameLength)),
		validation.Field(&p.Expiration, validation.Length(0, MaxExpirationLength)),
	)
}

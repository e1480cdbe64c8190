package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	// LineItem - product priced with a margin and a quantity, used both in carts and in orders.
	LineItem struct {
		Code       string          `db:"code"`
		Name       string          `db:"name"`
		Expiration string          `db:"expiration"`
		Cost       decimal.Decimal `db:"cost"`
		Margin     decimal.Decimal `db:"margin"`
		FinalPrice decimal.Decimal `db:"final_price"`
		Qty        int             `db:"qty"`
	}

	Cart struct {
		ID    string
		Items []*LineItem
	}

	Order struct {
		ID          string          `db:"id"`
		ClientName  string          `db:"client_name"`
		ClientEmail string          `db:"client_email"`
		CreatedAt   time.Time       `db:"created_at"`
		Total       decimal.Decimal `db:"total"`
		Items       []*LineItem
	}

	OrderSummary struct {
		ID         string          `db:"id"`
		ClientName string          `db:"client_name"`
		CreatedAt  time.Time       `db:"created_at"`
		Total      decimal.Decimal `db:"total"`
		// Remito - file name of the delivery note, empty when the file is missing
		Remito string
	}

	Stats struct {
		Products      int
		Orders        int
		Clients       int
		SalesToday    int
		DefaultMargin decimal.Decimal
	}
)

func (i *LineItem) Subtotal() decimal.Decimal {
	return i.FinalPrice.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// Total - sum of line subtotals rounded to cents.
func (c *Cart) Total() decimal.Decimal {
	return total(c.Items)
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

func OrderTotal(items []*LineItem) decimal.Decimal {
	return total(items)
}

func total(items []*LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Subtotal())
	}
	return sum.Round(2)
}

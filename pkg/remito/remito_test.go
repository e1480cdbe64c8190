package remito

import (
	"pharmacy/pkg/models"
	"pharmacy/pkg/pricing"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "remito-20261019-101500-ab12.pdf", FileName("20261019-101500-ab12"))
}

func TestGenerate(t *testing.T) {
	order := &models.Order{
		ID:         "20261019-101500-ab12",
		ClientName: "Farmacia Central",
		CreatedAt:  time.Date(2026, 10, 19, 10, 15, 0, 0, time.Local),
		Total:      decimal.RequireFromString("241.50"),
		Items: []*models.LineItem{
			{
				Code:       "A1",
				Name:       "Ibuprofeno 400mg x 20 comprimidos recubiertos",
				Expiration: "2027-01",
				Cost:       decimal.RequireFromString("100"),
				Margin:     decimal.RequireFromString("15"),
				FinalPrice: decimal.RequireFromString("115"),
				Qty:        2,
			},
		},
	}

	res, err := Generate(order, Options{
		CompanyName: "Pablo y Sergio Representaciones",
		Formatter:   pricing.NewFormatter("$"),
	})
	assert.NoError(t, err)
	assert.True(t, len(res) > 5)
	assert.Equal(t, "%PDF-", string(res[:5]))
}

func TestGenerate_ManyItems(t *testing.T) {
	order := &models.Order{ID: "x", ClientName: "Cliente", CreatedAt: time.Now()}
	for i := 0; i < 120; i++ {
		order.Items = append(order.Items, &models.LineItem{
			Code:       "A",
			Name:       "Producto",
			Cost:       decimal.NewFromInt(1),
			Margin:     decimal.NewFromInt(20),
			FinalPrice: decimal.RequireFromString("1.2"),
			Qty:        1,
		})
	}
	order.Total = models.OrderTotal(order.Items)

	res, err := Generate(order, Options{})
	assert.NoError(t, err)
	assert.Equal(t, "%PDF-", string(res[:5]))
}

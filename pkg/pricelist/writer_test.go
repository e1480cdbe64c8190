package pricelist

import (
	"bytes"
	"pharmacy/pkg/models"
	"pharmacy/pkg/pricing"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func newTestPricedItems() []pricing.PricedItem {
	return []pricing.PricedItem{
		{
			Code:        "A1",
			Description: "Ibuprofeno 400mg",
			BasePrice:   decimal.RequireFromString("100"),
			Margin:      decimal.RequireFromString("15"),
			FinalPrice:  decimal.RequireFromString("115"),
		},
		{
			Code:        "A2",
			Description: "Paracetamol, 500mg",
			BasePrice:   decimal.RequireFromString("9.99"),
			Margin:      decimal.RequireFromString("20"),
			FinalPrice:  decimal.RequireFromString("11.99"),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	err := WriteCSV(buf, newTestPricedItems(), pricing.NewFormatter("$"))
	assert.NoError(t, err)

	expected := "codigo,descripcion,costo,margen,precio final\n" +
		"A1,Ibuprofeno 400mg,$100.00,15,$115.00\n" +
		"A2,\"Paracetamol, 500mg\",$9.99,20,$11.99\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteExcel(t *testing.T) {
	buf := &bytes.Buffer{}
	err := WriteExcel(buf, newTestPricedItems())
	assert.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	assert.NoError(t, err)
	defer f.Close()

	assert.Equal(t, sheetName, f.GetSheetName(0))
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, []string{"A1", "Ibuprofeno 400mg", "100", "15", "115"}, rows[1])
	assert.Equal(t, []string{"A2", "Paracetamol, 500mg", "9.99", "20", "11.99"}, rows[2])
}

func TestItems(t *testing.T) {
	res := &Result{
		Products: []*models.Product{
			{Code: "A1", Name: "Ibuprofeno", Description: "400mg", Cost: decimal.NewFromInt(10)},
			{Code: "A2", Name: "Paracetamol", Cost: decimal.NewFromInt(5)},
		},
	}
	items := Items(res)
	assert.Len(t, items, 2)
	assert.Equal(t, "400mg", items[0].Description)
	assert.Equal(t, "Paracetamol", items[1].Description)
	assert.True(t, items[1].BasePrice.Equal(decimal.NewFromInt(5)))
}

package pricelist

import (
	"encoding/csv"
	"fmt"
	"io"
	"pharmacy/pkg/pricing"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName = "Precios"
)

var header = []string{"codigo", "descripcion", "costo", "margen", "precio final"}

// WriteCSV writes repriced items, amounts formatted with f.
func WriteCSV(w io.Writer, items []pricing.PricedItem, f *pricing.Formatter) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("can't write price list header: %w", err)
	}
	for _, item := range items {
		line := []string{
			item.Code,
			item.Description,
			f.Format(item.BasePrice),
			item.Margin.String(),
			f.Format(item.FinalPrice),
		}
		if err := writer.Write(line); err != nil {
			return fmt.Errorf("can't write price list item code=%s: %w", item.Code, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteExcel writes repriced items as a single sheet workbook with numeric cells.
func WriteExcel(w io.Writer, items []pricing.PricedItem) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("can't set sheet name: %w", err)
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("can't write price list header: %w", err)
	}

	for i, item := range items {
		base, _ := item.BasePrice.Float64()
		margin, _ := item.Margin.Float64()
		finalPrice, _ := item.FinalPrice.Float64()
		row := []interface{}{item.Code, item.Description, base, margin, finalPrice}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("can't get cell name for row=%d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("can't write price list item code=%s: %w", item.Code, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("can't write Excel file: %w", err)
	}
	return nil
}

// Items converts read products into repricing input.
func Items(res *Result) []pricing.Item {
	items := make([]pricing.Item, 0, len(res.Products))
	for _, p := range res.Products {
		description := p.Description
		if description == "" {
			description = p.Name
		}
		items = append(items, pricing.Item{
			Code:        p.Code,
			Description: description,
			BasePrice:   p.Cost,
		})
	}
	return items
}

// Package remito renders the delivery note ("remito") handed to the client on checkout.
package remito

import (
	"fmt"
	"pharmacy/pkg/models"
	"pharmacy/pkg/pricing"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const (
	dateLayout = "2006-01-02 15:04:05"
)

type (
	Options struct {
		CompanyName string
		Formatter   *pricing.Formatter
	}
)

// FileName - name of the remito file of the order with id.
func FileName(orderID string) string {
	return fmt.Sprintf("remito-%s.pdf", orderID)
}

// Generate renders the remito of order as PDF bytes.
func Generate(order *models.Order, opts Options) ([]byte, error) {
	if opts.Formatter == nil {
		opts.Formatter = pricing.NewFormatter(pricing.DefaultCurrencySymbol)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Pagina {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, order, opts)
	addTableHeader(m)
	for _, item := range order.Items {
		addItem(m, item, opts.Formatter)
	}
	addTotal(m, order, opts.Formatter)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("can't generate remito for order=%s: %w", order.ID, err)
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, order *models.Order, opts Options) {
	title := "Remito / Presupuesto"
	if opts.CompanyName != "" {
		title = fmt.Sprintf("%s - %s", title, opts.CompanyName)
	}
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(title, props.Text{Size: 14, Style: fontstyle.Bold}),
			),
		),
	)

	info := props.Text{Size: 10}
	m.AddRows(
		row.New(6).Add(col.New(12).Add(text.New(fmt.Sprintf("Nro: %s", order.ID), info))),
		row.New(6).Add(col.New(12).Add(text.New(fmt.Sprintf("Fecha: %s", order.CreatedAt.Format(dateLayout)), info))),
		row.New(6).Add(col.New(12).Add(text.New(fmt.Sprintf("Cliente: %s", order.ClientName), info))),
		row.New(4),
	)
}

func addTableHeader(m core.Maroto) {
	left := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}
	right := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}
	cell := props.Cell{BackgroundColor: &props.Color{Red: 230, Green: 230, Blue: 230}}

	m.AddRows(
		row.New(8).Add(
			col.New(4).Add(text.New("Producto", left)).WithStyle(&cell),
			col.New(2).Add(text.New("Venc.", right)).WithStyle(&cell),
			col.New(2).Add(text.New("Costo", right)).WithStyle(&cell),
			col.New(1).Add(text.New("%", right)).WithStyle(&cell),
			col.New(2).Add(text.New("P.Unit", right)).WithStyle(&cell),
			col.New(1).Add(text.New("Cant", right)).WithStyle(&cell),
		),
	)
}

func addItem(m core.Maroto, item *models.LineItem, f *pricing.Formatter) {
	left := props.Text{Size: 9, Align: align.Left}
	right := props.Text{Size: 9, Align: align.Right}

	m.AddRows(
		row.New(7).Add(
			col.New(4).Add(text.New(item.Name, left)),
			col.New(2).Add(text.New(item.Expiration, right)),
			col.New(2).Add(text.New(item.Cost.StringFixed(2), right)),
			col.New(1).Add(text.New(item.Margin.StringFixed(1), right)),
			col.New(2).Add(text.New(f.Format(item.FinalPrice), right)),
			col.New(1).Add(text.New(fmt.Sprintf("%d", item.Qty), right)),
		),
	)
}

func addTotal(m core.Maroto, order *models.Order, f *pricing.Formatter) {
	m.AddRows(
		row.New(6),
		row.New(10).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("TOTAL: %s", f.Format(order.Total)), props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)
}

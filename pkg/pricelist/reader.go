// Package pricelist reads provider price lists into catalog products
// and writes repriced lists back out.
package pricelist

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"pharmacy/pkg/errors"
	"pharmacy/pkg/models"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	CSV  = ".csv"
	XLSX = ".xlsx"
)

const (
	columnCode = iota
	columnName
	columnDescription
	columnCost
	columnExpiration
)

// header aliases, lower case
var columnAliases = map[string]int{
	"code":              columnCode,
	"codigo":            columnCode,
	"código":            columnCode,
	"cod":               columnCode,
	"name":              columnName,
	"producto":          columnName,
	"product":           columnName,
	"nombre":            columnName,
	"description":       columnDescription,
	"descripcion":       columnDescription,
	"descripción":       columnDescription,
	"cost":              columnCost,
	"costo":             columnCost,
	"precio":            columnCost,
	"price":             columnCost,
	"provider price":    columnCost,
	"precio proveedor":  columnCost,
	"vencimiento":       columnExpiration,
	"fecha vencimiento": columnExpiration,
	"fecha_vencimiento": columnExpiration,
	"expiration":        columnExpiration,
}

type (
	// Result - products read from a price list and the number of rows that were dropped.
	Result struct {
		Products []*models.Product
		Skipped  int
	}

	Reader struct {
		logger *zap.Logger
		client *http.Client
		// requireCodes - drop rows without a code instead of numbering them
		requireCodes bool
	}

	// columns - position of each known column in the header, -1 when absent
	columns [5]int
)

func NewReader(logger *zap.Logger, client *http.Client) *Reader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Reader{
		logger: logger.Named("PriceListReader"),
		client: client,
	}
}

// RequireCodes returns a copy of r that skips rows without a code.
// Used where products are upserted into an existing catalog and a generated code could overwrite an unrelated product.
func (r *Reader) RequireCodes() *Reader {
	res := *r
	res.requireCodes = true
	return &res
}

// Supported reports whether the file extension is a known price-list format.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case CSV, XLSX:
		return true
	}
	return false
}

// Read parses src choosing the format by the extension of name.
func (r *Reader) Read(src io.Reader, name string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case CSV:
		return r.ReadCSV(src)
	case XLSX:
		return r.ReadExcel(src)
	default:
		return nil, fmt.Errorf("%w: file=%s must be %s or %s", errors.ErrUnsupportedFile, name, CSV, XLSX)
	}
}

func (r *Reader) ReadCSV(src io.Reader) (*Result, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: can't parse CSV: %s", errors.ErrInvalidInput, err.Error())
	}
	return r.parseRows(rows)
}

// ReadExcel reads the first sheet of an xlsx workbook.
func (r *Reader) ReadExcel(src io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("%w: can't open Excel file: %s", errors.ErrInvalidInput, err.Error())
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: can't read sheet=%s: %s", errors.ErrInvalidInput, sheet, err.Error())
	}
	return r.parseRows(rows)
}

// Fetch downloads a CSV price list, e.g. a published spreadsheet.
func (r *Reader) Fetch(ctx context.Context, url string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("can't build price list request url=%s: %w", url, err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't fetch price list url=%s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("can't fetch price list url=%s: unexpected status=%d", url, resp.StatusCode)
	}

	name := CSV
	if strings.HasSuffix(strings.ToLower(req.URL.Path), XLSX) {
		name = XLSX
	}
	return r.Read(resp.Body, name)
}

func (r *Reader) parseRows(rows [][]string) (*Result, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: price list has no header row", errors.ErrInvalidInput)
	}

	cols := mapColumns(rows[0])
	if cols[columnName] < 0 {
		return nil, fmt.Errorf("%w: price list has no product name column", errors.ErrInvalidInput)
	}
	if cols[columnCost] < 0 {
		return nil, fmt.Errorf("%w: price list has no cost column", errors.ErrInvalidInput)
	}

	res := &Result{}
	codes := make(map[string]struct{})
	for i, row := range rows[1:] {
		product, err := r.toProduct(cols, row)
		if err == nil && product.Code == "" && r.requireCodes {
			err = fmt.Errorf("empty product code")
		}
		if err != nil {
			r.logger.Sugar().Infof("skip price list row=%d: (%s)", i+2, err.Error())
			res.Skipped++
			continue
		}
		if product.Code != "" {
			codes[product.Code] = struct{}{}
		}
		res.Products = append(res.Products, product)
	}

	// codeless rows are numbered by position, numbers taken by explicit codes move past the end
	next := len(res.Products)
	for i, product := range res.Products {
		if product.Code != "" {
			continue
		}
		code := strconv.Itoa(i)
		for {
			if _, taken := codes[code]; !taken {
				break
			}
			code = strconv.Itoa(next)
			next++
		}
		product.Code = code
		codes[code] = struct{}{}
	}
	return res, nil
}

func (r *Reader) toProduct(cols columns, row []string) (*models.Product, error) {
	name := cell(row, cols[columnName])
	if name == "" {
		return nil, fmt.Errorf("empty product name")
	}

	cost, err := parseCost(cell(row, cols[columnCost]))
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Code:        cell(row, cols[columnCode]),
		Name:        name,
		Description: cell(row, cols[columnDescription]),
		Cost:        cost,
		Expiration:  cell(row, cols[columnExpiration]),
	}
	if err = product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

func mapColumns(header []string) columns {
	cols := columns{-1, -1, -1, -1, -1}
	for i, h := range header {
		norm := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if col, ok := columnAliases[norm]; ok && cols[col] < 0 {
			cols[col] = i
		}
	}
	return cols
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseCost(raw string) (decimal.Decimal, error) {
	data := strings.TrimSpace(strings.TrimPrefix(raw, "$"))
	if data == "" {
		return decimal.Zero, fmt.Errorf("empty cost")
	}
	cost, err := decimal.NewFromString(data)
	if err != nil {
		return decimal.Zero, fmt.Errorf("can't parse cost=%s as a decimal number", raw)
	}
	if cost.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative cost=%s", raw)
	}
	if cost.GreaterThan(models.MaxAmount) {
		return decimal.Zero, fmt.Errorf("cost=%s is too large", raw)
	}
	return cost, nil
}

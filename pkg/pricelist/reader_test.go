package pricelist

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"pharmacy/pkg/errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newTestReader() *Reader {
	return NewReader(zap.NewNop(), nil)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("lista.csv"))
	assert.True(t, Supported("LISTA.XLSX"))
	assert.False(t, Supported("lista.xls"))
	assert.False(t, Supported("lista"))
}

func TestReader_ReadCSV(t *testing.T) {
	data := "Codigo,Producto,Descripcion,Precio,Vencimiento\n" +
		"A1,Ibuprofeno,400mg x 20,100.50,2027-01\n" +
		"A2,Paracetamol,500mg x 10,$ 50,2026-12\n"

	res, err := newTestReader().ReadCSV(strings.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 0, res.Skipped)
	assert.Len(t, res.Products, 2)

	p := res.Products[0]
	assert.Equal(t, "A1", p.Code)
	assert.Equal(t, "Ibuprofeno", p.Name)
	assert.Equal(t, "400mg x 20", p.Description)
	assert.Equal(t, "100.5", p.Cost.String())
	assert.Equal(t, "2027-01", p.Expiration)

	assert.Equal(t, "50", res.Products[1].Cost.String())
}

func TestReader_ReadCSV_HeaderAliases(t *testing.T) {
	data := "\ufeff NAME ,cost,fecha vencimiento\n" +
		"Amoxicilina,12.3,2026-05-01\n"

	res, err := newTestReader().ReadCSV(strings.NewReader(data))
	assert.NoError(t, err)
	assert.Len(t, res.Products, 1)
	assert.Equal(t, "Amoxicilina", res.Products[0].Name)
	assert.Equal(t, "2026-05-01", res.Products[0].Expiration)
}

func TestReader_ReadCSV_SkipsBadRows(t *testing.T) {
	data := "producto,costo\n" +
		"Ibuprofeno,10\n" +
		",20\n" +
		"Aspirina,abc\n" +
		"Diclofenac,-3\n" +
		"Loratadina,\n" +
		"Omeprazol,7.25\n"

	res, err := newTestReader().ReadCSV(strings.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 4, res.Skipped)
	assert.Len(t, res.Products, 2)

	// rows without a code are numbered by position among kept rows
	assert.Equal(t, "0", res.Products[0].Code)
	assert.Equal(t, "Ibuprofeno", res.Products[0].Name)
	assert.Equal(t, "1", res.Products[1].Code)
	assert.Equal(t, "Omeprazol", res.Products[1].Name)
}

func TestReader_ReadCSV_GeneratedCodesDontCollide(t *testing.T) {
	data := "codigo,producto,costo\n" +
		",Aspirina,10\n" +
		"0,Ibuprofeno,20\n" +
		",Paracetamol,5\n" +
		"3,Omeprazol,7\n"

	res, err := newTestReader().ReadCSV(strings.NewReader(data))
	assert.NoError(t, err)
	assert.Len(t, res.Products, 4)

	codes := make(map[string]string)
	for _, p := range res.Products {
		codes[p.Code] = p.Name
	}
	assert.Len(t, codes, 4)
	assert.Equal(t, "Ibuprofeno", codes["0"])
	assert.Equal(t, "Paracetamol", codes["2"])
	assert.Equal(t, "Omeprazol", codes["3"])
	assert.Equal(t, "Aspirina", codes["4"])
}

func TestReader_ReadCSV_RequireCodes(t *testing.T) {
	data := "codigo,producto,costo\n" +
		",Aspirina,10\n" +
		"A1,Ibuprofeno,20\n"

	reader := newTestReader()
	res, err := reader.RequireCodes().ReadCSV(strings.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	assert.Len(t, res.Products, 1)
	assert.Equal(t, "A1", res.Products[0].Code)

	// the original reader still numbers codeless rows
	res, err = reader.ReadCSV(strings.NewReader(data))
	assert.NoError(t, err)
	assert.Len(t, res.Products, 2)
}

func TestReader_ReadCSV_SkipsOversizedRows(t *testing.T) {
	data := "codigo,producto,costo\n" +
		strings.Repeat("c", 129) + ",Aspirina,10\n" +
		"A2," + strings.Repeat("n", 513) + ",10\n" +
		"A3,Ibuprofeno,1000000000000000001\n" +
		"A4," + strings.Repeat("ñ", 512) + ",10\n"

	res, err := newTestReader().ReadCSV(strings.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 3, res.Skipped)
	assert.Len(t, res.Products, 1)
	assert.Equal(t, "A4", res.Products[0].Code)
}

func TestReader_ReadCSV_MissingColumns(t *testing.T) {
	_, err := newTestReader().ReadCSV(strings.NewReader("producto,vencimiento\nIbuprofeno,2026\n"))
	assert.True(t, errors.ErrorIs(err, errors.ErrInvalidInput))

	_, err = newTestReader().ReadCSV(strings.NewReader("costo\n10\n"))
	assert.True(t, errors.ErrorIs(err, errors.ErrInvalidInput))

	_, err = newTestReader().ReadCSV(strings.NewReader(""))
	assert.True(t, errors.ErrorIs(err, errors.ErrInvalidInput))
}

func newTestWorkbook(t *testing.T, rows [][]interface{}) []byte {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		r := row
		assert.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return buf.Bytes()
}

func TestReader_ReadExcel(t *testing.T) {
	data := newTestWorkbook(t, [][]interface{}{
		{"codigo", "producto", "costo", "vencimiento"},
		{"X1", "Ibuprofeno", 1234.5, "2027-01"},
		{"X2", "Paracetamol", 10, "2026-12"},
	})

	res, err := newTestReader().Read(bytes.NewReader(data), "lista.xlsx")
	assert.NoError(t, err)
	assert.Len(t, res.Products, 2)
	assert.Equal(t, "X1", res.Products[0].Code)
	assert.Equal(t, "1234.5", res.Products[0].Cost.String())
	assert.Equal(t, "10", res.Products[1].Cost.String())
}

func TestReader_ReadExcel_Broken(t *testing.T) {
	_, err := newTestReader().ReadExcel(strings.NewReader("not a workbook"))
	assert.True(t, errors.ErrorIs(err, errors.ErrInvalidInput))
}

func TestReader_Read_Unsupported(t *testing.T) {
	_, err := newTestReader().Read(strings.NewReader(""), "lista.pdf")
	assert.True(t, errors.ErrorIs(err, errors.ErrUnsupportedFile))
}

func TestReader_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("producto,precio\nIbuprofeno,10\n"))
	}))
	defer srv.Close()

	reader := NewReader(zap.NewNop(), srv.Client())
	res, err := reader.Fetch(context.Background(), srv.URL+"/export?format=csv")
	assert.NoError(t, err)
	assert.Len(t, res.Products, 1)
	assert.Equal(t, "Ibuprofeno", res.Products[0].Name)
}

func TestReader_Fetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	reader := NewReader(zap.NewNop(), srv.Client())
	_, err := reader.Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "status=404")
}

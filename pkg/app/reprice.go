package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"pharmacy/pkg/errors"
	"pharmacy/pkg/pricelist"
	"pharmacy/pkg/pricing"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type RepriceOptions struct {
	Input  string
	Output string
	Margin decimal.Decimal
	// Overrides - code -> margin
	Overrides      map[string]decimal.Decimal
	CurrencySymbol string
}

// RunReprice reprices the Input price list and writes it to Output, or as CSV to stdout.
func RunReprice(opts RepriceOptions, stdout io.Writer) error {
	logger := getLogger("RepriceApp")
	defer syncLogger(logger)
	return runReprice(logger, opts, stdout)
}

func runReprice(logger *zap.Logger, opts RepriceOptions, stdout io.Writer) error {
	res, err := readCatalogFile(pricelist.NewReader(logger, nil), opts.Input)
	if err != nil {
		logger.Sugar().Errorf("can't read price list file=%s: (%s)", opts.Input, err.Error())
		return err
	}

	priced, err := pricing.Reprice(pricelist.Items(res), opts.Margin, opts.Overrides)
	if err != nil {
		return err
	}

	formatter := pricing.NewFormatter(opts.CurrencySymbol)
	if opts.Output == "" {
		return pricelist.WriteCSV(stdout, priced, formatter)
	}

	ext := strings.ToLower(filepath.Ext(opts.Output))
	if ext != pricelist.CSV && ext != pricelist.XLSX {
		return fmt.Errorf("%w: output=%s must be %s or %s", errors.ErrUnsupportedFile, opts.Output, pricelist.CSV, pricelist.XLSX)
	}

	f, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("can't create output file=%s: %w", opts.Output, err)
	}
	if ext == pricelist.XLSX {
		err = pricelist.WriteExcel(f, priced)
	} else {
		err = pricelist.WriteCSV(f, priced, formatter)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("can't write output file=%s: %w", opts.Output, err)
	}

	logger.Sugar().Infof("repriced file=%s to=%s, items=%d skipped=%d", opts.Input, opts.Output, len(priced), res.Skipped)
	return nil
}

// ParseOverrides reads CODE=MARGIN pairs.
func ParseOverrides(raw []string) (map[string]decimal.Decimal, error) {
	overrides := make(map[string]decimal.Decimal, len(raw))
	for _, pair := range raw {
		code, margin, ok := strings.Cut(pair, "=")
		code = strings.TrimSpace(code)
		if !ok || code == "" {
			return nil, fmt.Errorf("%w: override=%q must be CODE=MARGIN", errors.ErrInvalidInput, pair)
		}
		m, err := decimal.NewFromString(strings.TrimSpace(margin))
		if err != nil {
			return nil, fmt.Errorf("%w: override=%q has a bad margin", errors.ErrInvalidInput, pair)
		}
		overrides[code] = m
	}
	return overrides, nil
}

package commands

import (
	"pharmacy/pkg/app"
	"pharmacy/pkg/pricing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var repriceFlags struct {
	input     string
	output    string
	margin    float64
	overrides []string
	symbol    string
}

var repriceCmd = &cobra.Command{
	Use:   "reprice",
	Short: "Apply a margin to a price list file",
	Example: "  pharmacy reprice --input lista.xlsx --margin 25 --override 1001=40 --output precios.xlsx\n" +
		"  pharmacy reprice --input lista.csv --margin 15 > precios.csv",
	RunE: func(c *cobra.Command, args []string) error {
		overrides, err := app.ParseOverrides(repriceFlags.overrides)
		if err != nil {
			return err
		}
		return app.RunReprice(app.RepriceOptions{
			Input:          repriceFlags.input,
			Output:         repriceFlags.output,
			Margin:         decimal.NewFromFloat(repriceFlags.margin),
			Overrides:      overrides,
			CurrencySymbol: repriceFlags.symbol,
		}, c.OutOrStdout())
	},
}

func init() {
	flags := repriceCmd.Flags()
	flags.StringVarP(&repriceFlags.input, "input", "i", "", "price list to reprice (.csv or .xlsx)")
	flags.StringVarP(&repriceFlags.output, "output", "o", "", "output file (.csv or .xlsx), stdout when empty")
	flags.Float64VarP(&repriceFlags.margin, "margin", "m", 20, "margin percent applied to every item")
	flags.StringArrayVar(&repriceFlags.overrides, "override", nil, "per item margin as CODE=MARGIN, repeatable")
	flags.StringVar(&repriceFlags.symbol, "symbol", pricing.DefaultCurrencySymbol, "currency symbol for CSV output")
	_ = repriceCmd.MarkFlagRequired("input")
}

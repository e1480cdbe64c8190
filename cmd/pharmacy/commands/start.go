package commands

import (
	"pharmacy/pkg/app"
	"pharmacy/pkg/config"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the API server",
	RunE: func(c *cobra.Command, args []string) error {
		ctx := signalContext()

		cfg := &config.APIServer{}
		cfg, err := cfg.LoadConfig("pharmacy_app.yaml")
		if err != nil {
			return err
		}

		return app.RunPharmacy(ctx, cfg)
	},
}

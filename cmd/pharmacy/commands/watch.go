package commands

import (
	"pharmacy/pkg/app"
	"pharmacy/pkg/config"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Import price lists dropped into the watched directory",
	RunE: func(c *cobra.Command, args []string) error {
		ctx := signalContext()

		cfg := &config.Watcher{}
		cfg, err := cfg.LoadConfig("watcher_app.yaml")
		if err != nil {
			return err
		}

		return app.RunWatcher(ctx, cfg)
	},
}

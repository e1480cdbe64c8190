package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "pharmacy",
	Short:        "Pharmacy catalog pricing, carts and orders",
	SilenceUsage: true,
	Run:          func(c *cobra.Command, args []string) {},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(repriceCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed: %s\n", err)
		os.Exit(1)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() context.Context {
	ctx, closer := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			closer()
		case <-ctx.Done():
		}
	}()
	return ctx
}

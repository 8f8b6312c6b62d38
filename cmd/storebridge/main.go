package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/storebridge/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprint(os.Stderr, errors.Format(err))
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "storebridge",
		Short: "Drive store-bound counter components",
		Long: `storebridge mounts counter components whose state lives in an external
atom, bound through the signal, store or mutable bridge, and clicks through
them headlessly.

Examples:
  storebridge run
  storebridge run store --script inc,inc,dec --expect 1
  storebridge run --metrics
  storebridge config`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to storebridge.json or storebridge.yaml")

	cmd.AddCommand(
		runCmd(&configPath),
		configCmd(&configPath),
		versionCmd(),
	)

	return cmd
}

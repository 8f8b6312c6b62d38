package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/storebridge/internal/config"
)

func configCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying the config file and
STOREBRIDGE_* environment overrides.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(*configPath)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			source := cfg.Path()
			if source == "" {
				source = "defaults"
			}
			title(w, "Configuration ("+source+")")
			for _, e := range cfg.Entries() {
				field(w, e.Key, e.Value)
			}
			return nil
		},
	}
}

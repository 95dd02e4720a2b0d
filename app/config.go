package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eingabe/eingabe/internal/config"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg, err = config.ReadConfig(configPath); err != nil {
			return err
		}

		out, err := config.DumpConfigJSON(&cfg)
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), out)

		return err
	},
}

// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/eingabe/eingabe/internal/config"
)

var (
	configPath string // Directory holding main.toml

	cfg config.Config
	err error
)

var rootCmd = &cobra.Command{
	Use:   "eingabe",
	Short: "eingabe stores free-text form submissions and lists them",
	Long: `eingabe is a small web form that stores free-text submissions
in a single table and lists all past submissions.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Directory holding main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

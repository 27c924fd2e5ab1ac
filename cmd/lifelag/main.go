package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lifelag",
		Short:         "Weekly drift check-ins with trend detection and reminders",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a lifelag.yaml config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(resetPasswordCmd())
	return rootCmd
}

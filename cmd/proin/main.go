package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "proin",
		Short: "Tooling for process-simulation input decks",
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a proin.toml configuration file")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd(&configPath))
	rootCmd.AddCommand(newSymbolsCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newLSPCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

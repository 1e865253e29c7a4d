package main

import (
	"os"

	"github.com/spf13/cobra"

	"talenthub/internal/interfaces/cli/migrate"
	"talenthub/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "talenthub",
		Short: "TalentHub subscription and entitlement service",
		Long:  `TalentHub serves the plan catalog, subscription ledger, usage metering and feature authorization for the recruiting marketplace.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

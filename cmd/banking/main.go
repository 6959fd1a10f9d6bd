package main

import (
	"os"

	"github.com/spf13/cobra"

	"banking/internal/interfaces/cli/migrate"
	"banking/internal/interfaces/cli/server"
	"banking/internal/interfaces/cli/validate"
	"banking/internal/interfaces/cli/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "banking",
		Short: "Banking - customer registration and authentication service",
		Long:  `Banking runs the customer identity API and ships the migration and offline validation tools that go with it.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		validate.NewCommand(),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the clubctl binary: administrative
// tasks that run against the database directly, without the HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(execute())
}

func execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "clubctl",
		Short:         "Clubhouse admin CLI",
		Long:          "Administrative tasks for the Clubhouse service: migrations, seeding, admin accounts, and dev tokens.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newMigrateCmd(),
		newCreateAdminCmd(),
		newSeedCmd(),
		newMintTokenCmd(),
	)

	return rootCmd
}

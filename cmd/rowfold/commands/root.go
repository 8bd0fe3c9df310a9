// Package commands implements the rowfold CLI commands.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Execute builds the command tree and runs it.
func Execute(version, commit string) error {
	rootCmd := &cobra.Command{
		Use:   "rowfold",
		Short: "Declarative PostgreSQL mapping",
		Long: "Rowfold declares tables as typed fields, compiles operation chains\n" +
			"to SQL strings and streams results through paginated cursors.",
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newDDLCommand())
	rootCmd.AddCommand(newPingCommand())
	rootCmd.AddCommand(newDocsCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit))

	return rootCmd.Execute()
}

package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the root command and exits the process on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "gestion-terrain",
		Short:        "API de gestion des lotissements, ilots/lots et attributaires",
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agencia-dev/agencia/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "agencia",
		Short:   "In-memory digital bank",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newShellCommand())
	rootCmd.AddCommand(newRunCommand())

	return rootCmd
}

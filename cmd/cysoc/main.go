package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cysoc/cysoc/internal/editor"
)

var version = "0.1.0"

// main installs no signal handlers. Ctrl-C keeps its default effect until the
// editor runs, and the launcher relays it from then on.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exitErr *editor.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cysoc",
		Short: "CYSOC analyst workbench launcher",
		Long: `Starts an analyst editor session: activates ./.venv if present, asks for
the API key without echoing it, exports it to the editor's environment only
and opens the editor in the current directory.

Run without a subcommand to start a session.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSession,
	}

	addGlobalFlags(rootCmd)
	addSessionFlags(rootCmd)

	rootCmd.AddCommand(
		newSessionCmd(),
		newInvestigateCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cysoc version %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Platform: %s\n", platformName())
		},
	}
}

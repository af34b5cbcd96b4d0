package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cysoc/cysoc/internal/state"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show what a session would find in the current directory",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}

	addTargetFlags(cmd)
	cmd.Flags().String("playbooks", "", "Playbooks directory (default Playbooks)")

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	s := state.NewDetector(cwd, cfg.VenvDir, cfg.EnvVar, cfg.Editor, cfg.PlaybooksDir).Detect()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, titleStyle.Render("CYSOC Session Status"))
	fmt.Fprintln(out, "====================")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Workspace:  %s\n", s.WorkDir)

	if s.VenvExists {
		fmt.Fprintf(out, "Venv:       %s %s\n", s.VenvArtifact, okStyle.Render("(found)"))
	} else {
		fmt.Fprintf(out, "Venv:       %s %s\n", s.VenvArtifact, warnStyle.Render("(not found, session continues without it)"))
	}

	// Only presence is reported, never the value.
	if s.EnvVarSet {
		fmt.Fprintf(out, "API key:    %s %s\n", s.EnvVar, warnStyle.Render("(already set in this shell)"))
	} else {
		fmt.Fprintf(out, "API key:    %s (not set, will be prompted)\n", s.EnvVar)
	}

	if s.EditorPath != "" {
		fmt.Fprintf(out, "Editor:     %s %s\n", s.Editor, okStyle.Render("("+s.EditorPath+")"))
	} else {
		fmt.Fprintf(out, "Editor:     %s %s\n", s.Editor, warnStyle.Render("(not found in PATH)"))
	}

	if s.PlaybooksErr != nil {
		fmt.Fprintf(out, "Playbooks:  %s\n", warnStyle.Render(s.PlaybooksErr.Error()))
	} else {
		fmt.Fprintf(out, "Playbooks:  %d in %s\n", s.PlaybookCount, s.PlaybooksDir)
	}

	return nil
}

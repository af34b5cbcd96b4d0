package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cysoc/cysoc/internal/investigation"
	"github.com/cysoc/cysoc/internal/terminal"
)

func newInvestigateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "investigate",
		Short: "Start a new investigation from a notebook playbook",
		Long: `Lists the Jupyter notebooks under the playbooks directory, asks which one
to use and for an optional case ID reference, then creates

  Investigations/<date>T<hh.mm>[ #<case>] - <playbook folder>/inv_<notebook>

Use --playbook and --case to skip the prompts.`,
		Args: cobra.NoArgs,
		RunE: runInvestigate,
	}

	cmd.Flags().String("playbooks", "", "Playbooks directory (default Playbooks)")
	cmd.Flags().String("investigations", "", "Investigations directory (default Investigations)")
	cmd.Flags().Int("playbook", 0, "Playbook number as listed (skips the selection prompt)")
	cmd.Flags().String("case", "", "Case ID reference (skips the case prompt; empty for none)")
	cmd.Flags().Bool("dryrun", false, "Show what would be created without changing anything")

	return cmd
}

func runInvestigate(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	index, err := cmd.Flags().GetInt("playbook")
	if err != nil {
		return fmt.Errorf("invalid playbook flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dryrun")
	if err != nil {
		return fmt.Errorf("invalid dryrun flag: %w", err)
	}

	opts := investigation.Options{
		PlaybooksDir:      cfg.PlaybooksDir,
		InvestigationsDir: cfg.InvestigationsDir,
		PlaybookIndex:     index,
		DryRun:            dryRun,
	}
	if cmd.Flags().Changed("case") {
		caseRef, err := cmd.Flags().GetString("case")
		if err != nil {
			return fmt.Errorf("invalid case flag: %w", err)
		}
		opts.CaseRef = &caseRef
	}

	prompter := terminal.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	starter := investigation.NewStarter(prompter, cmd.OutOrStdout())
	if _, err := starter.Run(cmd.Context(), opts); err != nil {
		return fmt.Errorf("failed to start investigation: %w", err)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cysoc/cysoc/internal/editor"
	"github.com/cysoc/cysoc/internal/platform"
	"github.com/cysoc/cysoc/internal/session"
	"github.com/cysoc/cysoc/internal/terminal"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Activate .venv, ask for the API key and open the editor",
		Long: `Starts an editor session in the current directory:

  1. If .venv exists, its activation is applied to the session environment.
  2. The API key is read without echoing it.
  3. The key is exported as OPENAI_API_KEY (see --env-var) for the editor only.
  4. The editor is opened on the current directory.

The key is never written to disk or logged. It disappears with the editor
process tree.`,
		Args: cobra.NoArgs,
		RunE: runSession,
	}

	addSessionFlags(cmd)

	return cmd
}

func runSession(cmd *cobra.Command, args []string) error {
	if !platform.IsSupported() {
		return fmt.Errorf("unsupported operating system: %s", platformName())
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	replace, err := cmd.Flags().GetBool("exec")
	if err != nil {
		return fmt.Errorf("invalid exec flag: %w", err)
	}
	if replace && !editor.CanReplace() {
		return editor.ErrReplaceUnsupported
	}
	secretStdin, err := cmd.Flags().GetBool("secret-stdin")
	if err != nil {
		return fmt.Errorf("invalid secret-stdin flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	prompter := terminal.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	prompter.AllowPiped = secretStdin

	boot := session.New(session.Options{
		WorkDir:    workDir,
		VenvDir:    cfg.VenvDir,
		EnvVar:     cfg.EnvVar,
		Prompt:     cfg.Prompt,
		Editor:     cfg.Editor,
		EditorArgs: cfg.EditorArgs,
		Replace:    replace,
	}, session.FromProcess(), prompter, editor.NewLauncher(), cmd.OutOrStdout())

	return boot.Run(cmd.Context())
}

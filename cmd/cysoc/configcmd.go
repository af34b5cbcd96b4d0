package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cysoc/cysoc/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the cysoc configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to cysoc.yaml",
		Long: `Writes the effective configuration to the user config directory, or the
system config directory with --system. The API key is never written.`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}
	initCmd.Flags().Bool("system", false, "Write the system-wide config file")

	cmd.AddCommand(showCmd, initCmd)
	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	data, err := config.Encode(&cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	system, err := cmd.Flags().GetBool("system")
	if err != nil {
		return fmt.Errorf("invalid system flag: %w", err)
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	path, err := config.WriteConfigFile(&cfg, system)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

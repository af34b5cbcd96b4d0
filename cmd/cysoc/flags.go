package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cysoc/cysoc/internal/config"
	"github.com/cysoc/cysoc/internal/logging"
	"github.com/cysoc/cysoc/internal/platform"
)

func addGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Config file (default: cysoc.yaml in ., the user config dir or the system config dir)")
	for _, name := range logging.Names() {
		flags.Bool(name, false, fmt.Sprintf("Set verbosity to %s", name))
	}
	cmd.MarkFlagsMutuallyExclusive(logging.Names()...)
}

// addTargetFlags registers the flags that decide what a session looks for.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("venv", "", "Virtual environment directory, relative to the working directory (default .venv)")
	cmd.Flags().String("env-var", "", "Environment variable the API key is exported as (default OPENAI_API_KEY)")
	cmd.Flags().String("editor", "", "Editor command (default code)")
}

func addSessionFlags(cmd *cobra.Command) {
	addTargetFlags(cmd)
	cmd.Flags().String("prompt", "", "Prompt shown before the API key is read")
	cmd.Flags().Bool("exec", false, "Replace cysoc with the editor instead of waiting for it (Unix only)")
	cmd.Flags().Bool("secret-stdin", false, "Read the API key from piped stdin when stdin is not a terminal")
}

// loadSettings loads the configuration for cmd and configures logging from
// the verbosity flags or, if none is set, the configured verbosity.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid config flag: %w", err)
	}

	cfg, err := config.Load(cmd, configFile)
	if err != nil {
		return cfg, err
	}

	for _, name := range logging.Names() {
		if set, _ := cmd.Flags().GetBool(name); set {
			cfg.Verbosity = name
			break
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	verbosity, _ := logging.ParseVerbosity(cfg.Verbosity)
	logging.Configure(cmd.ErrOrStderr(), verbosity)
	logging.Debugf("verbosity set to %s", verbosity)

	return cfg, nil
}

func platformName() string {
	return string(platform.Detect())
}

// Package config loads cysoc settings from defaults, cysoc.yaml, CYSOC_*
// environment variables and command-line flags, in increasing precedence.
// The API key is never part of the configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cysoc/cysoc/internal/constants"
	"github.com/cysoc/cysoc/internal/logging"
)

// Config is the effective cysoc configuration.
type Config struct {
	VenvDir           string   `mapstructure:"venv_dir" yaml:"venv_dir"`
	EnvVar            string   `mapstructure:"env_var" yaml:"env_var"`
	Prompt            string   `mapstructure:"prompt" yaml:"prompt"`
	Editor            string   `mapstructure:"editor" yaml:"editor"`
	EditorArgs        []string `mapstructure:"editor_args" yaml:"editor_args"`
	PlaybooksDir      string   `mapstructure:"playbooks_dir" yaml:"playbooks_dir"`
	InvestigationsDir string   `mapstructure:"investigations_dir" yaml:"investigations_dir"`
	Verbosity         string   `mapstructure:"verbosity" yaml:"verbosity"`
}

// Defaults returns the built-in value of every key.
func Defaults() map[string]any {
	return map[string]any{
		"venv_dir":           constants.DefaultVenvDir,
		"env_var":            constants.DefaultEnvVar,
		"prompt":             constants.DefaultPrompt,
		"editor":             constants.DefaultEditor,
		"editor_args":        []string{"."},
		"playbooks_dir":      constants.DefaultPlaybooksDir,
		"investigations_dir": constants.DefaultInvestigationsDir,
		"verbosity":          logging.DefaultVerbosity.String(),
	}
}

// FlagKeys maps command-line flag names onto config keys.
var FlagKeys = map[string]string{
	"venv":           "venv_dir",
	"env-var":        "env_var",
	"prompt":         "prompt",
	"editor":         "editor",
	"playbooks":      "playbooks_dir",
	"investigations": "investigations_dir",
}

// Validate reports settings that cannot work at all.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.EnvVar) == "" {
		return errors.New("env_var must not be empty")
	}
	if strings.ContainsAny(c.EnvVar, "=\x00") {
		return fmt.Errorf("env_var %q must not contain '=' or NUL", c.EnvVar)
	}
	if strings.TrimSpace(c.Editor) == "" {
		return errors.New("editor must not be empty")
	}
	if _, err := logging.ParseVerbosity(c.Verbosity); err != nil {
		return err
	}
	return nil
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), constants.ConfigName)
		default:
			configDir = filepath.Join("/etc", constants.ConfigName)
		}
	} else {
		userDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(userDir, constants.ConfigName)
	}

	return filepath.Join(configDir, constants.ConfigName+".yaml"), nil
}

// Load builds the configuration for cmd. configFile, when not empty, is read
// instead of searching the standard locations; a missing explicit file is an
// error, a missing searched file is not.
func Load(cmd *cobra.Command, configFile string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName(constants.ConfigName)
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		if userPath, err := GetConfigPath(false); err == nil {
			v.AddConfigPath(filepath.Dir(userPath))
		}
		if systemPath, err := GetConfigPath(true); err == nil {
			v.AddConfigPath(filepath.Dir(systemPath))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return c, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		logging.Debugf("using config file %s", v.ConfigFileUsed())
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for flagName, key := range FlagKeys {
			flag := cmd.Flags().Lookup(flagName)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return c, fmt.Errorf("failed to bind flag %s: %w", flagName, err)
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("failed to decode config: %w", err)
	}

	return c, nil
}

// WriteConfigFile writes c as YAML to the user or system config path and
// returns the path written.
func WriteConfigFile(c *Config, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := Encode(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, constants.DirPermissions); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}

	return path, nil
}

// Encode renders c as YAML.
func Encode(c *Config) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

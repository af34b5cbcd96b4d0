package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cysoc/cysoc/internal/constants"
)

var allConfigKeys = []string{
	"CYSOC_VENV_DIR",
	"CYSOC_ENV_VAR",
	"CYSOC_PROMPT",
	"CYSOC_EDITOR",
	"CYSOC_EDITOR_ARGS",
	"CYSOC_PLAYBOOKS_DIR",
	"CYSOC_INVESTIGATIONS_DIR",
	"CYSOC_VERBOSITY",
}

// isolateConfig clears CYSOC_* overrides and points the user config dir and
// working directory at fresh temp dirs.
func isolateConfig(t *testing.T) string {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("AppData", home)
	testChdir(t, t.TempDir())
	return home
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load(&cobra.Command{}, "")

	require.NoError(t, err)
	assert.Equal(t, constants.DefaultVenvDir, cfg.VenvDir)
	assert.Equal(t, constants.DefaultEnvVar, cfg.EnvVar)
	assert.Equal(t, constants.DefaultPrompt, cfg.Prompt)
	assert.Equal(t, constants.DefaultEditor, cfg.Editor)
	assert.Equal(t, []string{"."}, cfg.EditorArgs)
	assert.Equal(t, constants.DefaultPlaybooksDir, cfg.PlaybooksDir)
	assert.Equal(t, constants.DefaultInvestigationsDir, cfg.InvestigationsDir)
	assert.Equal(t, "warning", cfg.Verbosity)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileInWorkingDirectory(t *testing.T) {
	isolateConfig(t)
	require.NoError(t, os.WriteFile("cysoc.yaml", []byte("editor: vim\nenv_var: MY_KEY\n"), 0644))

	cfg, err := Load(&cobra.Command{}, "")

	require.NoError(t, err)
	assert.Equal(t, "vim", cfg.Editor)
	assert.Equal(t, "MY_KEY", cfg.EnvVar)
	assert.Equal(t, constants.DefaultVenvDir, cfg.VenvDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateConfig(t)
	require.NoError(t, os.WriteFile("cysoc.yaml", []byte("editor: vim\n"), 0644))
	t.Setenv("CYSOC_EDITOR", "nano")
	t.Setenv("CYSOC_VENV_DIR", "venv")

	cfg, err := Load(&cobra.Command{}, "")

	require.NoError(t, err)
	assert.Equal(t, "nano", cfg.Editor)
	assert.Equal(t, "venv", cfg.VenvDir)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	isolateConfig(t)
	t.Setenv("CYSOC_ENV_VAR", "FROM_ENV")

	cmd := &cobra.Command{}
	cmd.Flags().String("env-var", "", "")
	cmd.Flags().String("editor", "", "")
	require.NoError(t, cmd.Flags().Set("env-var", "FROM_FLAG"))

	cfg, err := Load(cmd, "")

	require.NoError(t, err)
	assert.Equal(t, "FROM_FLAG", cfg.EnvVar)
	// An unset flag does not mask the default.
	assert.Equal(t, constants.DefaultEditor, cfg.Editor)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolateConfig(t)

	_, err := Load(&cobra.Command{}, filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("playbooks_dir: books\nverbosity: debug\n"), 0644))

	cfg, err := Load(&cobra.Command{}, path)

	require.NoError(t, err)
	assert.Equal(t, "books", cfg.PlaybooksDir)
	assert.Equal(t, "debug", cfg.Verbosity)
}

func TestValidate(t *testing.T) {
	base := Config{EnvVar: "KEY", Editor: "code", Verbosity: "info"}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty env var", func(c *Config) { c.EnvVar = " " }},
		{"env var with equals", func(c *Config) { c.EnvVar = "A=B" }},
		{"empty editor", func(c *Config) { c.Editor = "" }},
		{"bad verbosity", func(c *Config) { c.Verbosity = "shouty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	isolateConfig(t)

	want := Config{
		VenvDir:           ".venv",
		EnvVar:            "MY_KEY",
		Prompt:            "Key: ",
		Editor:            "vim",
		EditorArgs:        []string{"."},
		PlaybooksDir:      "Playbooks",
		InvestigationsDir: "Investigations",
		Verbosity:         "info",
	}

	path, err := WriteConfigFile(&want, false)
	require.NoError(t, err)

	expected, err := GetConfigPath(false)
	require.NoError(t, err)
	assert.Equal(t, expected, path)

	got, err := Load(&cobra.Command{}, path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// testChdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it
// changes the working directory and restores it when the test finishes.
func testChdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

package constants

import "os"

// Session defaults
const (
	// DefaultVenvDir is the virtual environment directory, relative to the working directory.
	DefaultVenvDir = ".venv"

	// DefaultEnvVar is the environment variable the API key is exported as.
	DefaultEnvVar = "OPENAI_API_KEY"

	// DefaultPrompt is shown before the masked API key read.
	DefaultPrompt = "Enter your API key: "

	// DefaultEditor is the editor command launched at the end of a session.
	DefaultEditor = "code"
)

// Investigation defaults
const (
	// DefaultPlaybooksDir holds the notebook playbooks.
	DefaultPlaybooksDir = "Playbooks"

	// DefaultInvestigationsDir is where new investigation folders are created.
	DefaultInvestigationsDir = "Investigations"

	// NotebookExt is the suffix of Jupyter notebook files.
	NotebookExt = ".ipynb"

	// InvestigationPrefix is prepended to the copied playbook file name.
	InvestigationPrefix = "inv_"

	// InvestigationTimeLayout formats the leading timestamp of an investigation folder.
	InvestigationTimeLayout = "2006-01-02T15.04"

	// DefaultInvestigationLabel is used when the playbook has no parent folder name.
	DefaultInvestigationLabel = "New Investigation"
)

// Configuration
const (
	// ConfigName is the config file base name (cysoc.yaml).
	ConfigName = "cysoc"

	// EnvPrefix prefixes environment overrides of config keys (CYSOC_EDITOR, ...).
	EnvPrefix = "cysoc"
)

// File permissions
const (
	// DirPermissions is the default permission mode for directories.
	DirPermissions os.FileMode = 0755

	// FilePermissions is the default permission mode for written files.
	FilePermissions os.FileMode = 0600
)

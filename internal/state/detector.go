package state

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/cysoc/cysoc/internal/investigation"
	"github.com/cysoc/cysoc/internal/platform"
	"github.com/cysoc/cysoc/internal/venv"
)

// SessionState describes what a session started in WorkDir would find.
// It never carries the credential value.
type SessionState struct {
	WorkDir string

	VenvArtifact string
	VenvExists   bool

	EnvVar    string
	EnvVarSet bool

	Editor     string
	EditorPath string

	PlaybooksDir  string
	PlaybookCount int
	PlaybooksErr  error
}

// Detector checks the state of the session prerequisites.
type Detector struct {
	workDir      string
	venvDir      string
	envVar       string
	editor       string
	playbooksDir string

	lookupEnv func(string) (string, bool)
	lookPath  func(string) (string, error)
}

// NewDetector creates a new state detector.
func NewDetector(workDir, venvDir, envVar, editor, playbooksDir string) *Detector {
	return &Detector{
		workDir:      workDir,
		venvDir:      venvDir,
		envVar:       envVar,
		editor:       editor,
		playbooksDir: playbooksDir,
		lookupEnv:    os.LookupEnv,
		lookPath:     exec.LookPath,
	}
}

// Detect checks all aspects of the session state.
func (d *Detector) Detect() *SessionState {
	state := &SessionState{
		WorkDir:      d.workDir,
		EnvVar:       d.envVar,
		Editor:       d.editor,
		PlaybooksDir: d.resolve(d.playbooksDir),
	}

	state.VenvArtifact = venv.ArtifactPath(d.resolve(d.venvDir), platform.Detect())
	if _, err := venv.Discover(d.workDir, d.venvDir); err == nil {
		state.VenvExists = true
	}

	_, state.EnvVarSet = d.lookupEnv(d.envVar)

	if path, err := d.lookPath(d.editor); err == nil {
		state.EditorPath = path
	}

	playbooks, err := investigation.ListPlaybooks(state.PlaybooksDir)
	if err != nil && !errors.Is(err, investigation.ErrNoPlaybooks) {
		state.PlaybooksErr = err
	}
	state.PlaybookCount = len(playbooks)

	return state
}

func (d *Detector) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(d.workDir, path)
}

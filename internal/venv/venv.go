// Package venv finds a Python virtual environment next to the working
// directory and applies its activation to an environment table, the way the
// environment's own activate script would.
package venv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cysoc/cysoc/internal/platform"
)

// ErrNotFound is returned when no activation artifact exists at the expected path.
var ErrNotFound = errors.New("virtual environment not found")

// Environment is the part of an environment table that activation mutates.
type Environment interface {
	Set(key, value string)
	Unset(key string)
	PrependPath(dir string)
}

// Activation describes a discovered virtual environment.
type Activation struct {
	// Dir is the absolute virtual environment directory (VIRTUAL_ENV).
	Dir string
	// BinDir holds the environment's executables.
	BinDir string
	// Artifact is the activation script whose presence was checked.
	Artifact string
	// Prompt is the short name shown by shells (VIRTUAL_ENV_PROMPT).
	Prompt string
}

type layout struct {
	binDir   string
	artifact string
}

func layoutFor(target platform.OS) layout {
	if target.IsWindows() {
		return layout{binDir: "Scripts", artifact: "activate.bat"}
	}
	return layout{binDir: "bin", artifact: "activate"}
}

// ArtifactPath returns the activation artifact path for venvDir on target.
func ArtifactPath(venvDir string, target platform.OS) string {
	l := layoutFor(target)
	return filepath.Join(venvDir, l.binDir, l.artifact)
}

// Discover checks for the activation artifact of venvDir, resolved against
// workDir when relative. The returned error wraps ErrNotFound when the
// artifact is absent.
func Discover(workDir, venvDir string) (*Activation, error) {
	return discoverFor(platform.Detect(), workDir, venvDir)
}

func discoverFor(target platform.OS, workDir, venvDir string) (*Activation, error) {
	dir := venvDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(workDir, dir)
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", venvDir, err)
	}

	artifact := ArtifactPath(dir, target)
	if !isFile(artifact) {
		return nil, fmt.Errorf("%w at %s", ErrNotFound, artifact)
	}

	return &Activation{
		Dir:      dir,
		BinDir:   filepath.Join(dir, layoutFor(target).binDir),
		Artifact: artifact,
		Prompt:   filepath.Base(dir),
	}, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Apply activates the environment in env: VIRTUAL_ENV and VIRTUAL_ENV_PROMPT
// are set, BinDir goes first on the search path and PYTHONHOME is cleared.
func (a *Activation) Apply(env Environment) {
	env.Set("VIRTUAL_ENV", a.Dir)
	env.Set("VIRTUAL_ENV_PROMPT", a.Prompt)
	env.PrependPath(a.BinDir)
	env.Unset("PYTHONHOME")
}

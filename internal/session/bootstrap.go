// Package session prepares an editor session: it activates a local Python
// virtual environment if one exists, asks for an API key without echoing it,
// exports the key into the session environment and launches the editor in
// the working directory. The key lives only in memory and in the
// environment of the editor process tree.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/cysoc/cysoc/internal/editor"
	"github.com/cysoc/cysoc/internal/logging"
	"github.com/cysoc/cysoc/internal/platform"
	"github.com/cysoc/cysoc/internal/terminal"
	"github.com/cysoc/cysoc/internal/venv"
)

// Options configures a session.
type Options struct {
	WorkDir    string
	VenvDir    string
	EnvVar     string
	Prompt     string
	Editor     string
	EditorArgs []string
	// Replace execs into the editor instead of waiting for it.
	Replace bool
}

// Bootstrapper runs the session sequence.
type Bootstrapper struct {
	opts     Options
	env      *Env
	prompter *terminal.Prompter
	launcher editor.Launcher
	out      io.Writer

	activation *venv.Activation
}

// New creates a Bootstrapper. env is mutated in place; out receives the
// activation messages.
func New(opts Options, env *Env, prompter *terminal.Prompter, launcher editor.Launcher, out io.Writer) *Bootstrapper {
	return &Bootstrapper{
		opts:     opts,
		env:      env,
		prompter: prompter,
		launcher: launcher,
		out:      out,
	}
}

// Activation returns the virtual environment applied by Run, or nil.
func (b *Bootstrapper) Activation() *venv.Activation {
	return b.activation
}

// Run activates, prompts, exports and launches, in that order. Only a missing
// virtual environment is tolerated; every other failure is returned.
func (b *Bootstrapper) Run(ctx context.Context) error {
	if err := b.activate(); err != nil {
		return err
	}

	secret, err := b.prompter.ReadSecret(b.opts.Prompt)
	if err != nil {
		return err
	}
	b.env.Set(b.opts.EnvVar, secret.String())
	logging.Debugf("exported %s (%d bytes)", b.opts.EnvVar, secret.Len())
	secret.Clear()

	return b.launcher.Launch(ctx, editor.Spec{
		Command: b.opts.Editor,
		Args:    b.opts.EditorArgs,
		Dir:     b.opts.WorkDir,
		Env:     b.env.Environ(),
		Replace: b.opts.Replace,
	})
}

func (b *Bootstrapper) activate() error {
	act, err := venv.Discover(b.opts.WorkDir, b.opts.VenvDir)
	if errors.Is(err, venv.ErrNotFound) {
		fmt.Fprintf(b.out, "No virtual environment found at %s, continuing without it.\n", b.displayArtifact())
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(b.out, "Activating virtual environment at %s\n", act.Dir)
	act.Apply(b.env)
	b.activation = act
	logging.Debugf("PATH is now %s", b.env.Path())
	return nil
}

// displayArtifact is the artifact path as the user configured it.
func (b *Bootstrapper) displayArtifact() string {
	return venv.ArtifactPath(filepath.Clean(b.opts.VenvDir), platform.Detect())
}

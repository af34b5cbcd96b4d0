package editor

import (
	"context"
	"io"
)

// Spec describes one editor launch.
type Spec struct {
	// Command is the editor executable, resolved against PATH.
	Command string
	// Args follow the command, typically the working directory.
	Args []string
	// Dir is the working directory of the editor process.
	Dir string
	// Env is the complete environment of the editor process.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Replace execs into the editor instead of starting a child. Unix only.
	Replace bool
}

// Launcher starts an editor.
type Launcher interface {
	// Launch runs the editor described by spec and returns when it exits.
	// With spec.Replace it does not return on success.
	Launch(ctx context.Context, spec Spec) error
}

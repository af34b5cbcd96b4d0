package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/cysoc/cysoc/internal/logging"
)

// ErrReplaceUnsupported is returned for Spec.Replace on platforms without exec(2).
var ErrReplaceUnsupported = errors.New("replacing the current process is not supported on this platform")

// ExitError reports an editor that ran but exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// ProcessLauncher implements Launcher with os/exec.
type ProcessLauncher struct{}

// NewLauncher creates a new process launcher.
func NewLauncher() *ProcessLauncher {
	return &ProcessLauncher{}
}

// CanReplace reports whether Spec.Replace is available on this platform.
func CanReplace() bool {
	return canReplace
}

func (l *ProcessLauncher) Launch(ctx context.Context, spec Spec) error {
	if spec.Command == "" {
		return errors.New("no editor command configured")
	}

	path, err := exec.LookPath(spec.Command)
	if err != nil {
		return fmt.Errorf("editor %q not found in PATH: %w", spec.Command, err)
	}

	if spec.Replace {
		return l.replace(path, spec)
	}

	cmd := exec.CommandContext(ctx, path, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if spec.Stdin != nil {
		cmd.Stdin = spec.Stdin
	}
	if spec.Stdout != nil {
		cmd.Stdout = spec.Stdout
	}
	if spec.Stderr != nil {
		cmd.Stderr = spec.Stderr
	}

	logging.Debugf("starting %s %v", path, spec.Args)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to run %s: %w", spec.Command, err)
	}
	stop := relaySignals(cmd.Process)
	err = cmd.Wait()
	stop()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			return &ExitError{Command: spec.Command, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to run %s: %w", spec.Command, err)
	}
	logging.Debugf("%s exited", spec.Command)

	return nil
}

// relaySignals keeps cysoc alive while the editor runs and passes interrupts
// on to it. The returned func stops relaying.
func relaySignals(proc *os.Process) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				logging.Debugf("relaying %s to the editor", sig)
				_ = proc.Signal(sig)
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// replace execs into the editor. Dir is applied to this process first since
// exec keeps the working directory.
func (l *ProcessLauncher) replace(path string, spec Spec) error {
	if !canReplace {
		return ErrReplaceUnsupported
	}
	if spec.Dir != "" {
		if err := os.Chdir(spec.Dir); err != nil {
			return fmt.Errorf("failed to change directory to %s: %w", spec.Dir, err)
		}
	}

	argv := append([]string{spec.Command}, spec.Args...)
	logging.Debugf("exec %s %v", path, spec.Args)
	if err := execSyscall(path, argv, spec.Env); err != nil {
		return fmt.Errorf("failed to exec %s: %w", spec.Command, err)
	}
	return nil
}

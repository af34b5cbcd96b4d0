package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when a masked read is requested but the input
// is not a terminal and piped input was not allowed.
var ErrNotTerminal = errors.New("cannot read secret: not a terminal")

// Secret wraps a secret value with the ability to clear it from memory.
type Secret struct {
	data []byte
}

// NewSecret copies b into a Secret.
func NewSecret(b []byte) *Secret {
	data := make([]byte, len(b))
	copy(data, b)
	return &Secret{data: data}
}

// String returns the secret as a string.
func (s *Secret) String() string {
	if s == nil || s.data == nil {
		return ""
	}
	return string(s.data)
}

// Clear zeros out the secret data in memory.
// Should be called when the secret is no longer needed.
func (s *Secret) Clear() {
	if s == nil || s.data == nil {
		return
	}
	for i := range s.data {
		s.data[i] = 0
	}
	s.data = nil
}

// Len returns the length of the secret in bytes.
func (s *Secret) Len() int {
	if s == nil {
		return 0
	}
	return len(s.data)
}

// Prompter writes prompts to Out and reads answers from In.
type Prompter struct {
	In  io.Reader
	Out io.Writer

	// AllowPiped lets ReadSecret fall back to a plain line read when In is
	// not a terminal. The input is still never echoed by cysoc itself.
	AllowPiped bool

	lines *bufio.Reader
}

// NewPrompter creates a Prompter on the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{In: in, Out: out}
}

// terminalFd returns the descriptor of In if In is an interactive terminal.
func (p *Prompter) terminalFd() (int, bool) {
	f, ok := p.In.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// ReadSecret prompts for a secret without echoing input. The value is taken
// byte-for-byte up to the line terminator; an empty line gives an empty Secret.
func (p *Prompter) ReadSecret(prompt string) (*Secret, error) {
	fd, isTerm := p.terminalFd()
	if !isTerm && !p.AllowPiped {
		return nil, ErrNotTerminal
	}

	fmt.Fprint(p.Out, prompt)

	if isTerm {
		value, err := readPassword(fd)
		fmt.Fprintln(p.Out) // newline after secret entry
		if err != nil {
			return nil, fmt.Errorf("failed to read secret: %w", err)
		}
		return &Secret{data: value}, nil
	}

	line, err := p.readLine()
	if err != nil {
		return nil, fmt.Errorf("failed to read secret from stdin: %w", err)
	}
	fmt.Fprintln(p.Out)
	return &Secret{data: []byte(line)}, nil
}

// readPassword reads from the terminal with echo off. On an interrupt the
// terminal is restored before the signal takes its default action.
func readPassword(fd int) ([]byte, error) {
	state, err := term.GetState(fd)
	if err != nil {
		return nil, err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	defer func() {
		signal.Stop(sigs)
		close(done)
	}()

	go func() {
		select {
		case sig := <-sigs:
			_ = term.Restore(fd, state)
			raise(sig)
		case <-done:
		}
	}()

	return term.ReadPassword(fd)
}

// raise delivers sig again with its default disposition.
func raise(sig os.Signal) {
	signal.Reset(sig)
	proc, err := os.FindProcess(os.Getpid())
	if err == nil && proc.Signal(sig) == nil {
		return
	}
	os.Exit(130)
}

// readLine reads one line from In with only the line terminator removed.
// A final line without a terminator is accepted; a bare EOF is an error.
func (p *Prompter) readLine() (string, error) {
	if p.lines == nil {
		p.lines = bufio.NewReader(p.In)
	}
	line, err := p.lines.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	if trimmed, ok := strings.CutSuffix(line, "\n"); ok {
		line = strings.TrimSuffix(trimmed, "\r")
	}
	return line, nil
}

// Package logging holds the process-wide logger and the verbosity levels
// accepted on the command line.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. Callers should use the helper functions
// below rather than reaching for L directly.
var L = clog.NewWithOptions(os.Stderr, clog.Options{Level: clog.WarnLevel})

// Verbosity is one of the seven named verbosity levels.
type Verbosity int

const (
	Silent Verbosity = iota + 1
	Critical
	Error
	Warning
	Info
	Verbose
	Debug
)

// DefaultVerbosity is used when no verbosity flag or config value is given.
const DefaultVerbosity = Warning

var verbosityNames = map[Verbosity]string{
	Silent:   "silent",
	Critical: "critical",
	Error:    "error",
	Warning:  "warning",
	Info:     "info",
	Verbose:  "verbose",
	Debug:    "debug",
}

// Names returns the verbosity names from quietest to loudest.
func Names() []string {
	names := make([]string, 0, len(verbosityNames))
	for v := Silent; v <= Debug; v++ {
		names = append(names, verbosityNames[v])
	}
	return names
}

func (v Verbosity) String() string {
	if name, ok := verbosityNames[v]; ok {
		return name
	}
	return fmt.Sprintf("verbosity(%d)", int(v))
}

// ParseVerbosity looks a verbosity up by name, case-insensitively.
func ParseVerbosity(name string) (Verbosity, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for v, n := range verbosityNames {
		if n == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("invalid verbosity level %q (want one of %s)", name, strings.Join(Names(), ", "))
}

// level maps a verbosity onto a charmbracelet/log level. Verbose and Debug
// share the debug level.
func (v Verbosity) level() clog.Level {
	switch v {
	case Critical:
		return clog.FatalLevel
	case Error:
		return clog.ErrorLevel
	case Info:
		return clog.InfoLevel
	case Verbose, Debug:
		return clog.DebugLevel
	default:
		return clog.WarnLevel
	}
}

// Configure points L at w with the given verbosity. Silent discards all output.
func Configure(w io.Writer, v Verbosity) {
	if v == Silent {
		w = io.Discard
	}
	L = clog.NewWithOptions(w, clog.Options{
		Level:           v.level(),
		ReportTimestamp: v >= Debug,
	})
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...any) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...any) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...any) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...any) {
	L.Error(fmt.Sprintf(format, v...))
}

package session

import (
	"os"
	"strings"

	"github.com/cysoc/cysoc/internal/platform"
)

// Env is an in-memory environment table. The bootstrapper mutates it and
// hands a snapshot to the editor, leaving the parent process untouched.
type Env struct {
	vars       []string
	foldCase   bool
	listSep    string
	pathEnvKey string
}

// NewEnv creates an Env from KEY=VALUE pairs using the host platform's rules.
func NewEnv(environ []string) *Env {
	return newEnvFor(platform.Detect(), environ)
}

// FromProcess creates an Env from the current process environment.
func FromProcess() *Env {
	return NewEnv(os.Environ())
}

func newEnvFor(target platform.OS, environ []string) *Env {
	e := &Env{
		listSep:    ":",
		pathEnvKey: "PATH",
	}
	if target.IsWindows() {
		e.foldCase = true
		e.listSep = ";"
		e.pathEnvKey = "Path"
	}
	for _, kv := range environ {
		// Windows keeps per-drive directories as "=C:=C:\dir". They have no
		// key of their own and are passed through untouched.
		if strings.HasPrefix(kv, "=") {
			e.vars = append(e.vars, kv)
			continue
		}
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		e.Set(key, value)
	}
	return e
}

func (e *Env) keyEqual(a, b string) bool {
	if e.foldCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (e *Env) index(key string) int {
	for i, kv := range e.vars {
		if strings.HasPrefix(kv, "=") {
			continue
		}
		k, _, _ := strings.Cut(kv, "=")
		if e.keyEqual(k, key) {
			return i
		}
	}
	return -1
}

// Lookup returns the value of key and whether it is set.
func (e *Env) Lookup(key string) (string, bool) {
	i := e.index(key)
	if i < 0 {
		return "", false
	}
	_, value, _ := strings.Cut(e.vars[i], "=")
	return value, true
}

// Get returns the value of key, or "" if unset.
func (e *Env) Get(key string) string {
	value, _ := e.Lookup(key)
	return value
}

// Set binds key to value, replacing any existing binding in place.
func (e *Env) Set(key, value string) {
	kv := key + "=" + value
	if i := e.index(key); i >= 0 {
		e.vars[i] = kv
		return
	}
	e.vars = append(e.vars, kv)
}

// Unset removes key.
func (e *Env) Unset(key string) {
	if i := e.index(key); i >= 0 {
		e.vars = append(e.vars[:i], e.vars[i+1:]...)
	}
}

// PrependPath puts dir first in the executable search path.
func (e *Env) PrependPath(dir string) {
	key := e.pathEnvKey
	if i := e.index(key); i >= 0 {
		// Keep the spelling already in use (Path vs PATH on Windows).
		key, _, _ = strings.Cut(e.vars[i], "=")
	}
	current, ok := e.Lookup(key)
	if !ok || current == "" {
		e.Set(key, dir)
		return
	}
	e.Set(key, dir+e.listSep+current)
}

// Path returns the executable search path.
func (e *Env) Path() string {
	return e.Get(e.pathEnvKey)
}

// Environ returns a copy of the table as KEY=VALUE pairs.
func (e *Env) Environ() []string {
	out := make([]string, len(e.vars))
	copy(out, e.vars)
	return out
}

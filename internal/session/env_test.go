package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cysoc/cysoc/internal/platform"
)

func TestEnv_SetGetUnset(t *testing.T) {
	e := newEnvFor(platform.Linux, []string{"A=1", "B=2", "broken", "C=x=y"})

	assert.Equal(t, "1", e.Get("A"))
	assert.Equal(t, "x=y", e.Get("C"))
	_, ok := e.Lookup("broken")
	assert.False(t, ok)

	e.Set("A", "one")
	e.Set("D", "")
	e.Unset("B")

	v, ok := e.Lookup("D")
	assert.True(t, ok, "empty value is still set")
	assert.Equal(t, "", v)
	assert.Equal(t, []string{"A=one", "C=x=y", "D="}, e.Environ())
}

func TestEnv_CaseSensitivity(t *testing.T) {
	unix := newEnvFor(platform.Linux, []string{"Key=1"})
	unix.Set("KEY", "2")
	assert.Equal(t, []string{"Key=1", "KEY=2"}, unix.Environ())

	win := newEnvFor(platform.Windows, []string{"Key=1"})
	win.Set("KEY", "2")
	assert.Equal(t, []string{"KEY=2"}, win.Environ())
	assert.Equal(t, "2", win.Get("key"))
}

func TestEnv_PrependPath(t *testing.T) {
	unix := newEnvFor(platform.Linux, []string{"PATH=/usr/bin:/bin"})
	unix.PrependPath("/w/.venv/bin")
	assert.Equal(t, "/w/.venv/bin:/usr/bin:/bin", unix.Path())

	empty := newEnvFor(platform.Linux, nil)
	empty.PrependPath("/w/.venv/bin")
	assert.Equal(t, "/w/.venv/bin", empty.Path())

	win := newEnvFor(platform.Windows, []string{`PATH=C:\Windows`})
	win.PrependPath(`C:\w\.venv\Scripts`)
	assert.Equal(t, []string{`PATH=C:\w\.venv\Scripts;C:\Windows`}, win.Environ())
}

func TestEnv_EnvironIsACopy(t *testing.T) {
	e := newEnvFor(platform.Linux, []string{"A=1"})
	snapshot := e.Environ()
	snapshot[0] = "A=changed"

	assert.Equal(t, "1", e.Get("A"))
}

func TestEnv_KeepsWindowsDriveEntries(t *testing.T) {
	e := newEnvFor(platform.Windows, []string{`=C:=C:\work`, `=D:=D:\data`, "Path=C:\\Windows"})

	e.Set("OPENAI_API_KEY", "k")
	e.PrependPath(`C:\venv\Scripts`)

	assert.Equal(t, []string{
		`=C:=C:\work`,
		`=D:=D:\data`,
		`Path=C:\venv\Scripts;C:\Windows`,
		"OPENAI_API_KEY=k",
	}, e.Environ())
	_, ok := e.Lookup("")
	assert.False(t, ok)
}

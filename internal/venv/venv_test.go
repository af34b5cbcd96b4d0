package venv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cysoc/cysoc/internal/platform"
)

type recordingEnv struct {
	set     map[string]string
	unset   []string
	prepend []string
}

func (r *recordingEnv) Set(key, value string) {
	if r.set == nil {
		r.set = map[string]string{}
	}
	r.set[key] = value
}
func (r *recordingEnv) Unset(key string)       { r.unset = append(r.unset, key) }
func (r *recordingEnv) PrependPath(dir string) { r.prepend = append(r.prepend, dir) }

func makeArtifact(t *testing.T, root string, target platform.OS) {
	t.Helper()
	path := ArtifactPath(filepath.Join(root, ".venv"), target)
	require.NoError(t, osMkdirWrite(path))
}

func osMkdirWrite(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte("# activate\n"), 0644)
}

func TestArtifactPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".venv", "bin", "activate"), ArtifactPath(".venv", platform.Linux))
	assert.Equal(t, filepath.Join(".venv", "bin", "activate"), ArtifactPath(".venv", platform.MacOS))
	assert.Equal(t, filepath.Join(".venv", "Scripts", "activate.bat"), ArtifactPath(".venv", platform.Windows))
}

func TestDiscover_Present(t *testing.T) {
	for _, goos := range []platform.OS{platform.Linux, platform.Windows} {
		t.Run(string(goos), func(t *testing.T) {
			root := t.TempDir()
			makeArtifact(t, root, goos)

			act, err := discoverFor(goos, root, ".venv")

			require.NoError(t, err)
			assert.Equal(t, filepath.Join(root, ".venv"), act.Dir)
			assert.Equal(t, ".venv", act.Prompt)
			assert.Equal(t, ArtifactPath(act.Dir, goos), act.Artifact)
			assert.Equal(t, filepath.Dir(act.Artifact), act.BinDir)
		})
	}
}

func TestDiscover_Absent(t *testing.T) {
	root := t.TempDir()

	act, err := discoverFor(platform.Linux, root, ".venv")

	assert.Nil(t, act)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), filepath.Join(root, ".venv", "bin", "activate"))
}

func TestDiscover_DirectoryIsNotAnArtifact(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(ArtifactPath(filepath.Join(root, ".venv"), platform.Linux), 0755))

	_, err := discoverFor(platform.Linux, root, ".venv")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiscover_AbsoluteVenvDir(t *testing.T) {
	root := t.TempDir()
	makeArtifact(t, root, platform.Linux)

	act, err := discoverFor(platform.Linux, "/somewhere/else", filepath.Join(root, ".venv"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".venv"), act.Dir)
}

func TestActivation_Apply(t *testing.T) {
	act := &Activation{Dir: "/w/.venv", BinDir: "/w/.venv/bin", Prompt: ".venv"}
	env := &recordingEnv{}

	act.Apply(env)

	assert.Equal(t, "/w/.venv", env.set["VIRTUAL_ENV"])
	assert.Equal(t, ".venv", env.set["VIRTUAL_ENV_PROMPT"])
	assert.Equal(t, []string{"/w/.venv/bin"}, env.prepend)
	assert.Equal(t, []string{"PYTHONHOME"}, env.unset)
}

package pyenv

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestEnv builds a fake virtualenv in dir: an activation artifact that
// prepends a bin directory holding a stub python.
func writeTestEnv(t *testing.T, dir string) string {
	t.Helper()

	bin := filepath.Join(dir, "venv", "bin")
	require.NoError(t, os.MkdirAll(bin, 0o755))

	python := filepath.Join(bin, "python")
	require.NoError(t, os.WriteFile(python, []byte("#!/bin/sh\necho Python 3.11.2\n"), 0o755))

	activate := filepath.Join(bin, "activate")
	require.NoError(t, os.WriteFile(activate, []byte(`export PATH="`+bin+`:$PATH"`+"\n"), 0o644))

	return activate
}

func TestCheck(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		e := Env{Activate: writeTestEnv(t, t.TempDir())}
		assert.NoError(t, e.Check())
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		e := Env{Activate: filepath.Join(t.TempDir(), "venv", "bin", "activate")}
		assert.ErrorIs(t, e.Check(), os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		e := Env{Activate: t.TempDir()}
		assert.Error(t, e.Check())
	})
}

func TestCommand(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	assert := assert.New(t)

	activate := writeTestEnv(t, t.TempDir())
	e := Env{Activate: activate, Python: "python"}

	// the activated PATH must be visible to the child
	cmd := e.Command(context.Background(), []string{"python"})

	var buf bytes.Buffer
	cmd.Stdout = &buf
	require.NoError(cmd.Run())
	assert.Equal("Python 3.11.2\n", buf.String())
}

func TestCommandExitCodePassthrough(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	assert := assert.New(t)

	activate := writeTestEnv(t, t.TempDir())
	e := Env{Activate: activate, Python: "python"}

	// exec in the wrapper means the child's code comes straight through,
	// and a missing program yields the shell's 127
	cmd := e.Command(context.Background(), []string{"sh", "-c", "exit 7"})
	err := cmd.Run()
	require.Error(err)
	assert.Equal(7, cmd.ProcessState.ExitCode())

	cmd = e.Command(context.Background(), []string{"definitely-not-installed"})
	err = cmd.Run()
	require.Error(err)
	assert.Equal(127, cmd.ProcessState.ExitCode())
}

func TestVersion(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	assert := assert.New(t)

	activate := writeTestEnv(t, t.TempDir())
	e := Env{Activate: activate, Python: "python"}

	v, err := e.Version(context.Background())
	require.NoError(err)
	assert.Equal("Python 3.11.2", v)
}

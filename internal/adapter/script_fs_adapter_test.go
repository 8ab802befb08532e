package adapter

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "htprobe.dev/pkg/htprobe/internal/model"
)

func TestWriteScript(t *testing.T) {
	fs := &LocalScriptFSAdapter{dir: t.TempDir()}

	path, err := fs.WriteScript("exit 42")
	require.NoError(t, err)

	data, err := os.ReadFile(string(path))
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\nexit 42\n", string(data))

	info, err := os.Stat(string(path))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100, "script must be executable by owner")
}

func TestWriteScript_UniquePaths(t *testing.T) {
	fs := &LocalScriptFSAdapter{dir: t.TempDir()}

	first, err := fs.WriteScript("true")
	require.NoError(t, err)

	second, err := fs.WriteScript("true")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRemoveScript(t *testing.T) {
	fs := &LocalScriptFSAdapter{dir: t.TempDir()}

	path, err := fs.WriteScript("true")
	require.NoError(t, err)

	require.NoError(t, fs.Remove(path))
	assert.NoFileExists(t, string(path))

	// A second removal is a no-op, not an error.
	assert.NoError(t, fs.Remove(path))
	assert.NoError(t, fs.Remove(m.Path("/nonexistent/htprobe-case.sh")))
}

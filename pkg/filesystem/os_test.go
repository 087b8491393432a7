package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFS_RoundTrip(t *testing.T) {
	fsys := NewOS()
	dir := filepath.Join(t.TempDir(), "lerobot")

	require.NoError(t, fsys.MkdirAll(dir, 0755))

	path := filepath.Join(dir, "pyproject.toml")
	require.NoError(t, fsys.WriteFile(path, []byte("[project]\n"), 0644))

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[project]\n", string(data))

	info, err := fsys.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	require.NoError(t, fsys.Remove(path))
	_, err = fsys.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

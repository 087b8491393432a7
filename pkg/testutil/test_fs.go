package testutil

import (
	"github.com/arthur-debert/lrsetup/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
)

// TestFS wraps filesystem.TestFileSystem to implement types.FS
type TestFS struct {
	*filesystem.TestFileSystem
}

// NewTestFS creates a new in-memory filesystem that implements types.FS.
// Paths are relative ("lerobot/pyproject.toml"), matching fs.FS conventions.
func NewTestFS() *TestFS {
	return &TestFS{
		TestFileSystem: filesystem.NewTestFileSystem(),
	}
}

var _ types.FS = (*TestFS)(nil)

package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/filesystem"
	"github.com/arthur-debert/lrsetup/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "pyproject.toml", legacyManifest)

	result, err := PatchFile(filesystem.NewOS(), path, DefaultRules())

	require.NoError(t, err)
	assert.Equal(t, path, result.Path)
	assert.Equal(t, 3, result.ChangedLines)
	assert.True(t, result.Written)
	assert.True(t, result.ValidTOML)
	assert.False(t, result.Missing)
	assert.Equal(t, patchedManifest, testutil.ReadFile(t, path))
}

func TestPatchFile_LogsChange(t *testing.T) {
	var buf bytes.Buffer
	oldLogger, oldLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	t.Cleanup(func() {
		log.Logger = oldLogger
		zerolog.SetGlobalLevel(oldLevel)
	})

	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "pyproject.toml", legacyManifest)

	_, err := PatchFile(filesystem.NewOS(), path, DefaultRules())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Manifest patched")
	assert.Contains(t, output, `"component":"manifest"`)
	assert.Contains(t, output, `"changedLines":3`)
}

func TestPatchFile_KeepsMode(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "pyproject.toml", legacyManifest)
	require.NoError(t, os.Chmod(path, 0600))

	_, err := PatchFile(filesystem.NewOS(), path, DefaultRules())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestPatchFile_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "pyproject.toml", legacyManifest)
	fsys := filesystem.NewOS()

	_, err := PatchFile(fsys, path, DefaultRules())
	require.NoError(t, err)
	first := testutil.ReadFile(t, path)

	result, err := PatchFile(fsys, path, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, 0, result.ChangedLines)
	assert.Equal(t, first, testutil.ReadFile(t, path))
}

func TestPatchFile_UnrelatedFileIsByteIdentical(t *testing.T) {
	content := "[tool.ruff]\nline-length = 110\r\n\n\"numpy>=1.0\",\n\tweird\tspacing  \n"
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "pyproject.toml", content)

	_, err := PatchFile(filesystem.NewOS(), path, DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, content, testutil.ReadFile(t, path))
}

func TestPatchFile_Missing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyproject.toml")

	result, err := PatchFile(filesystem.NewOS(), path, DefaultRules())

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
	assert.True(t, result.Missing)
	assert.False(t, result.Written)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing may be created for a missing manifest")
}

func TestPatchFile_InlineArrayBecomesInvalid(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "pyproject.toml",
		"[project]\ndependencies = [\"torch>=2.0\", \"numpy\"]\n")

	result, err := PatchFile(filesystem.NewOS(), path, DefaultRules())

	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.False(t, result.ValidTOML)
	assert.Equal(t, "[project]\ndependencies = [\"torch>=2.2.1\",\n", testutil.ReadFile(t, path))
}

func TestPatchFile_InMemory(t *testing.T) {
	fsys := testutil.NewTestFS()
	require.NoError(t, fsys.MkdirAll("lerobot", 0755))
	require.NoError(t, fsys.WriteFile("lerobot/pyproject.toml", []byte(legacyManifest), 0644))

	result, err := PatchFile(fsys, "lerobot/pyproject.toml", DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, 3, result.ChangedLines)

	data, err := fsys.ReadFile("lerobot/pyproject.toml")
	require.NoError(t, err)
	assert.Equal(t, patchedManifest, string(data))
}

func TestPatcher_Apply(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "pyproject.toml", legacyManifest)
	var out bytes.Buffer

	p := &Patcher{FS: filesystem.NewOS(), Rules: DefaultRules(), Out: &out}
	result, err := p.Apply(path)

	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.Equal(t, "Cleanly patched pyproject.toml and removed legacy constraints.\n", out.String())
}

func TestPatcher_ApplyMissingIsNoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyproject.toml")
	var out bytes.Buffer

	p := &Patcher{FS: filesystem.NewOS(), Rules: DefaultRules(), Out: &out}
	result, err := p.Apply(path)

	require.NoError(t, err)
	assert.True(t, result.Missing)
	assert.Equal(t, "Error: "+path+" not found.\n", out.String())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPreview_LeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "pyproject.toml", legacyManifest)

	result, patched, err := Preview(filesystem.NewOS(), path, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, 3, result.ChangedLines)
	assert.False(t, result.Written)
	assert.Equal(t, patchedManifest, string(patched))
	assert.Equal(t, legacyManifest, testutil.ReadFile(t, path))
}

func TestPatcher_ApplyDryRun(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "pyproject.toml", legacyManifest)
	var out bytes.Buffer

	p := &Patcher{FS: filesystem.NewOS(), Rules: DefaultRules(), Out: &out, DryRun: true}
	_, err := p.Apply(path)
	require.NoError(t, err)

	assert.Equal(t, "Dry run: 3 line(s) of "+path+" would be patched.\n", out.String())
	assert.Equal(t, legacyManifest, testutil.ReadFile(t, path))
}

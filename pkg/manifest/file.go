package manifest

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/logging"
	"github.com/arthur-debert/lrsetup/pkg/types"
)

// DefaultFileName is the manifest patched inside the lerobot checkout
const DefaultFileName = "pyproject.toml"

// Result describes the outcome of patching one manifest
type Result struct {
	Path         string
	Missing      bool
	ChangedLines int
	Written      bool

	// ValidTOML is false when the patched content no longer parses
	ValidTOML bool
}

// PatchFile reads the manifest at path once, rewrites it in memory and
// writes it back in place, keeping the file mode. A missing file yields a
// FILE_NOT_FOUND error and nothing is written.
func PatchFile(fsys types.FS, path string, rules Rules) (Result, error) {
	result, patched, mode, err := prepare(fsys, path, rules)
	if err != nil {
		return result, err
	}

	if err := fsys.WriteFile(path, patched, mode); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path).
			WithDetail("path", path)
	}
	result.Written = true

	logger := logging.GetLogger("manifest")
	logger.Info().
		Str("path", path).
		Int("changedLines", result.ChangedLines).
		Strs("packages", rules.Packages()).
		Msg("Manifest patched")

	return result, nil
}

// Preview returns what PatchFile would write, leaving the file untouched
func Preview(fsys types.FS, path string, rules Rules) (Result, []byte, error) {
	result, patched, _, err := prepare(fsys, path, rules)
	return result, patched, err
}

func prepare(fsys types.FS, path string, rules Rules) (Result, []byte, fs.FileMode, error) {
	logger := logging.GetLogger("manifest").With().Str("path", path).Logger()
	result := Result{Path: path}

	info, err := fsys.Stat(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			result.Missing = true
			return result, nil, 0, errors.Wrapf(err, errors.ErrFileNotFound, "%s not found", path).
				WithDetail("path", path)
		}
		return result, nil, 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", path).
			WithDetail("path", path)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return result, nil, 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path).
			WithDetail("path", path)
	}

	patched, changed := PatchContent(data, rules)
	result.ChangedLines = changed
	result.ValidTOML = Validate(patched) == nil
	if !result.ValidTOML {
		logger.Warn().Msg("Patched manifest is not valid TOML")
	}
	return result, patched, info.Mode().Perm(), nil
}

// Patcher is the user facing wrapper around PatchFile. It reports outcomes
// on Out and never fails the caller on a missing manifest.
type Patcher struct {
	FS    types.FS
	Rules Rules
	Out   io.Writer

	// DryRun reports the lines that would change without writing
	DryRun bool
}

// Message constants printed by Apply
const (
	MsgPatched  = "Cleanly patched pyproject.toml and removed legacy constraints."
	MsgNotFound = "Error: %s not found."
	MsgDryRun   = "Dry run: %d line(s) of %s would be patched."
)

// Apply patches the manifest at path. A missing file is reported and
// treated as a no-op; other failures are reported and returned.
func (p *Patcher) Apply(path string) (Result, error) {
	var (
		result Result
		err    error
	)
	if p.DryRun {
		result, _, err = Preview(p.FS, path, p.Rules)
	} else {
		result, err = PatchFile(p.FS, path, p.Rules)
	}
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrFileNotFound) {
			fmt.Fprintf(p.Out, MsgNotFound+"\n", path)
			return result, nil
		}
		fmt.Fprintf(p.Out, "Error: could not patch %s: %v\n", path, err)
		return result, err
	}

	if p.DryRun {
		fmt.Fprintf(p.Out, MsgDryRun+"\n", result.ChangedLines, path)
		return result, nil
	}
	fmt.Fprintln(p.Out, MsgPatched)
	return result, nil
}

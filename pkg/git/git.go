// Package git wraps the git commands lrsetup needs to fetch upstream
// repositories.
package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/runner"
	"github.com/arthur-debert/lrsetup/pkg/types"
)

// CloneOptions configures a git clone operation
type CloneOptions struct {
	// Depth creates a shallow clone when positive
	Depth int
	// Branch checks out the given branch or tag instead of the default
	Branch string
	// Git is the executable, "git" when empty
	Git string
}

// CloneArgs returns the git arguments for cloning url into dest
func CloneArgs(url, dest string, opts CloneOptions) []string {
	args := []string{"clone"}
	if opts.Depth > 0 {
		args = append(args, "--depth", fmt.Sprintf("%d", opts.Depth))
	}
	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}
	return append(args, url, dest)
}

// Clone clones a repository to dest
func Clone(ctx context.Context, r runner.Runner, url, dest string, opts CloneOptions) error {
	name := opts.Git
	if name == "" {
		name = "git"
	}
	_, err := r.Run(ctx, runner.Command{
		Name: name,
		Args: CloneArgs(url, dest, opts),
		Dir:  filepath.Dir(dest),
	})
	if err != nil {
		return errors.Wrapf(err, errors.GetErrorCode(err), "cloning %s", url).
			WithDetail("url", url).
			WithDetail("dest", dest)
	}
	return nil
}

// IsRepo reports whether path is a git checkout
func IsRepo(fsys types.FS, path string) bool {
	_, err := fsys.Stat(filepath.Join(path, ".git"))
	return err == nil
}

// HeadCommit returns the short SHA of HEAD in repoDir
func HeadCommit(ctx context.Context, r runner.Runner, repoDir string) (string, error) {
	res, err := r.Run(ctx, runner.Command{
		Name:  "git",
		Args:  []string{"rev-parse", "--short", "HEAD"},
		Dir:   repoDir,
		Quiet: true,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

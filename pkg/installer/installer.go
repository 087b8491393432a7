package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/lrsetup/pkg/environment"
	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/git"
	"github.com/arthur-debert/lrsetup/pkg/logging"
	"github.com/arthur-debert/lrsetup/pkg/manifest"
	"github.com/arthur-debert/lrsetup/pkg/runner"
	"github.com/arthur-debert/lrsetup/pkg/types"
)

// Console messages
const (
	MsgRootMissing      = "Error: ROOT_DIR %s does not exist."
	MsgRepoExists       = "lerobot repository already exists."
	MsgCloning          = "Cloning lerobot repository..."
	MsgCloned           = "Successfully cloned lerobot."
	MsgCloneFailed      = "Error cloning lerobot: %v"
	MsgCloneSkipped     = "Skipping clone of lerobot."
	MsgRepoMissing      = "Error: lerobot directory not found after clone."
	MsgInstalling       = "Installing lerobot dependencies..."
	MsgInstalled        = "Successfully installed lerobot dependencies."
	MsgExtrasInstalled  = "Successfully installed %s."
	MsgInstallFailed    = "Error installing lerobot dependencies: %v"
	MsgInstallSkipped   = "Skipping installation of lerobot dependencies."
	MsgDryRunNoCheckout = "Dry run: lerobot would be cloned into %s."
)

// Defaults used when the matching field is empty
const (
	DefaultRepoURL = "https://github.com/huggingface/lerobot.git"
	DefaultRepoDir = "lerobot"
	DefaultPip     = "pip"
)

// DefaultExtras are installed after the editable lerobot install
var DefaultExtras = []string{"wandb", "python-dotenv", "feetech-servo-sdk"}

// Installer clones, patches and installs lerobot under the root dir
type Installer struct {
	Env    environment.Environment
	Runner runner.Runner
	FS     types.FS
	Out    io.Writer

	RepoURL    string
	RepoDir    string
	CloneDepth int
	Manifest   string
	Rules      manifest.Rules

	// Pip is the installer command; it may carry arguments ("uv pip")
	Pip    string
	Extras []string

	SkipClone   bool
	SkipInstall bool
	DryRun      bool
}

func (in *Installer) out() io.Writer {
	if in.Out == nil {
		return os.Stdout
	}
	return in.Out
}

func (in *Installer) say(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(in.out(), format+"\n", args...)
}

// RepoPath returns the absolute checkout directory
func (in *Installer) RepoPath() string {
	name := in.RepoDir
	if name == "" {
		name = DefaultRepoDir
	}
	return in.Env.RepoDir(name)
}

// ManifestPath returns the manifest patched inside the checkout
func (in *Installer) ManifestPath() string {
	name := in.Manifest
	if name == "" {
		name = manifest.DefaultFileName
	}
	return filepath.Join(in.RepoPath(), name)
}

// Install runs every step and returns the report. The returned error is the
// first failure, if any; the report is always complete up to that point.
func (in *Installer) Install(ctx context.Context) (*Report, error) {
	logger := logging.GetLogger("installer")
	done := logging.LogOperationStart(logger, "install lerobot")
	defer done()

	report := &Report{RepoDir: in.RepoPath()}

	if !in.checkRoot(report) {
		return report, report.Err()
	}
	if !in.clone(ctx, report) {
		return report, report.Err()
	}
	in.locate(report)
	in.patch(report)
	in.install(ctx, report)

	return report, report.Err()
}

func (in *Installer) checkRoot(report *Report) bool {
	root := in.Env.RootDir
	info, err := in.FS.Stat(root)
	if err == nil && !info.IsDir() {
		err = fmt.Errorf("%s is not a directory", root)
	}
	if err != nil {
		in.say(MsgRootMissing, root)
		report.add(StepRoot, StatusFailed, fmt.Sprintf(MsgRootMissing, root),
			errors.Wrapf(err, errors.ErrFileNotFound, "root dir %s does not exist", root).
				WithDetail("path", root))
		return false
	}
	report.add(StepRoot, StatusOK, root, nil)
	return true
}

func (in *Installer) clone(ctx context.Context, report *Report) bool {
	dest := in.RepoPath()

	if _, err := in.FS.Stat(dest); err == nil {
		in.say(MsgRepoExists)
		report.add(StepClone, StatusSkipped, MsgRepoExists, nil)
		return true
	}
	if in.SkipClone {
		in.say(MsgCloneSkipped)
		report.add(StepClone, StatusSkipped, MsgCloneSkipped, nil)
		return true
	}

	in.say(MsgCloning)
	url := in.RepoURL
	if url == "" {
		url = DefaultRepoURL
	}
	err := git.Clone(ctx, in.Runner, url, dest, git.CloneOptions{Depth: in.CloneDepth})
	if err != nil {
		in.say(MsgCloneFailed, err)
		report.add(StepClone, StatusFailed, fmt.Sprintf(MsgCloneFailed, err), err)
		return false
	}
	in.say(MsgCloned)
	report.add(StepClone, StatusOK, MsgCloned, nil)
	return true
}

// locate confirms the checkout exists. A missing checkout is reported; the
// following steps then report their own failures.
func (in *Installer) locate(report *Report) {
	dest := in.RepoPath()
	if _, err := in.FS.Stat(dest); err == nil {
		report.add(StepLocate, StatusOK, dest, nil)
		return
	}
	if in.DryRun {
		msg := fmt.Sprintf(MsgDryRunNoCheckout, dest)
		in.say("%s", msg)
		report.add(StepLocate, StatusSkipped, msg, nil)
		return
	}
	in.say(MsgRepoMissing)
	report.add(StepLocate, StatusFailed, MsgRepoMissing,
		errors.New(errors.ErrFileNotFound, "lerobot directory not found after clone").
			WithDetail("path", dest))
}

func (in *Installer) patch(report *Report) {
	p := &manifest.Patcher{
		FS:     in.FS,
		Rules:  in.rules(),
		Out:    in.out(),
		DryRun: in.DryRun,
	}
	path := in.ManifestPath()
	result, err := p.Apply(path)
	switch {
	case err != nil:
		report.add(StepPatch, StatusFailed, err.Error(), err)
	case result.Missing:
		report.add(StepPatch, StatusSkipped, fmt.Sprintf(manifest.MsgNotFound, path), nil)
	default:
		report.add(StepPatch, StatusOK, fmt.Sprintf("%d line(s) changed", result.ChangedLines), nil)
	}
}

func (in *Installer) rules() manifest.Rules {
	if len(in.Rules) == 0 {
		return manifest.DefaultRules()
	}
	return in.Rules
}

func (in *Installer) install(ctx context.Context, report *Report) {
	if in.SkipInstall {
		in.say(MsgInstallSkipped)
		report.add(StepInstall, StatusSkipped, MsgInstallSkipped, nil)
		return
	}

	in.say(MsgInstalling)
	if err := in.pip(ctx, "-e", "."); err != nil {
		in.say(MsgInstallFailed, err)
		report.add(StepInstall, StatusFailed, fmt.Sprintf(MsgInstallFailed, err), err)
		return
	}
	in.say(MsgInstalled)
	report.add(StepInstall, StatusOK, MsgInstalled, nil)

	extras := in.Extras
	if extras == nil {
		extras = DefaultExtras
	}
	if len(extras) == 0 {
		return
	}
	if err := in.pip(ctx, extras...); err != nil {
		in.say(MsgInstallFailed, err)
		report.add(StepExtras, StatusFailed, fmt.Sprintf(MsgInstallFailed, err), err)
		return
	}
	msg := fmt.Sprintf(MsgExtrasInstalled, strings.Join(extras, ", "))
	in.say("%s", msg)
	report.add(StepExtras, StatusOK, msg, nil)
}

// pip runs "<pip> install <args>" inside the checkout
func (in *Installer) pip(ctx context.Context, args ...string) error {
	fields := strings.Fields(in.Pip)
	if len(fields) == 0 {
		fields = []string{DefaultPip}
	}
	cmdArgs := append(append(fields[1:len(fields):len(fields)], "install"), args...)
	_, err := in.Runner.Run(ctx, runner.Command{
		Name: fields[0],
		Args: cmdArgs,
		Dir:  in.RepoPath(),
		Env:  in.Env.Exports(),
	})
	return err
}

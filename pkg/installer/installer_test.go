package installer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/lrsetup/pkg/environment"
	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/filesystem"
	"github.com/arthur-debert/lrsetup/pkg/installer"
	"github.com/arthur-debert/lrsetup/pkg/runner"
	"github.com/arthur-debert/lrsetup/pkg/testutil"
)

const upstreamManifest = `[project]
name = "lerobot"
dependencies = [
    "torch>=2.2.1,<2.8.0",
    "torchcodec>=0.2.1,<0.6.0; sys_platform != 'win32'",
    "torchvision>=0.21.0,<0.23.0",
    "draccus==0.10.0",
]
`

const patchedUpstreamManifest = `[project]
name = "lerobot"
dependencies = [
    "torch>=2.2.1",
    "torchcodec>=0.2.1",
    "torchvision>=0.21.0",
    "draccus==0.10.0",
]
`

// cloneInto makes the fake git behave like a successful clone
func cloneInto(t *testing.T) func(cmd runner.Command) (runner.Result, error) {
	return func(cmd runner.Command) (runner.Result, error) {
		dest := cmd.Args[len(cmd.Args)-1]
		testutil.CreateFile(t, dest, "pyproject.toml", upstreamManifest)
		testutil.CreateDir(t, dest, ".git")
		return runner.Result{}, nil
	}
}

func newInstaller(root string, fake *testutil.FakeRunner, out *bytes.Buffer) *installer.Installer {
	return &installer.Installer{
		Env:    environment.Environment{Kind: environment.KindLocal, RootDir: root},
		Runner: fake,
		FS:     filesystem.NewOS(),
		Out:    out,
	}
}

func TestInstall_FreshClone(t *testing.T) {
	root := t.TempDir()
	fake := testutil.NewFakeRunner().On("git", cloneInto(t))
	var out bytes.Buffer

	report, err := newInstaller(root, fake, &out).Install(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Failed())

	repo := filepath.Join(root, "lerobot")
	assert.Equal(t, repo, report.RepoDir)
	assert.Equal(t, patchedUpstreamManifest, testutil.ReadFile(t, filepath.Join(repo, "pyproject.toml")))

	assert.Equal(t, []string{
		"git clone https://github.com/huggingface/lerobot.git " + repo,
		"pip install -e .",
		"pip install wandb python-dotenv feetech-servo-sdk",
	}, fake.CommandLines())
	assert.Equal(t, repo, fake.Calls[1].Dir)
	assert.Equal(t, "LOCAL", fake.Calls[1].Env["CONTAINER"])
	assert.Equal(t, root, fake.Calls[1].Env["ROOT_DIR"])

	assert.Equal(t, strings.Join([]string{
		"Cloning lerobot repository...",
		"Successfully cloned lerobot.",
		"Cleanly patched pyproject.toml and removed legacy constraints.",
		"Installing lerobot dependencies...",
		"Successfully installed lerobot dependencies.",
		"Successfully installed wandb, python-dotenv, feetech-servo-sdk.",
	}, "\n")+"\n", out.String())

	var names []string
	for _, s := range report.Steps {
		names = append(names, s.Name+":"+string(s.Status))
	}
	assert.Equal(t, []string{"root:ok", "clone:ok", "locate:ok", "patch:ok", "install:ok", "extras:ok"}, names)
}

func TestInstall_ExistingCheckout(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, filepath.Join(root, "lerobot"), "pyproject.toml", upstreamManifest)
	fake := testutil.NewFakeRunner()
	var out bytes.Buffer

	report, err := newInstaller(root, fake, &out).Install(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.String(), "lerobot repository already exists.\n"))
	step, ok := report.Step(installer.StepClone)
	require.True(t, ok)
	assert.Equal(t, installer.StatusSkipped, step.Status)
	for _, line := range fake.CommandLines() {
		assert.NotContains(t, line, "git")
	}
}

func TestInstall_RootMissing(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nope")
	fake := testutil.NewFakeRunner()
	var out bytes.Buffer

	report, err := newInstaller(root, fake, &out).Install(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
	assert.Equal(t, "Error: ROOT_DIR "+root+" does not exist.\n", out.String())
	assert.Len(t, report.Steps, 1)
	assert.Empty(t, fake.Calls)
}

func TestInstall_CloneFailureStops(t *testing.T) {
	root := t.TempDir()
	fake := testutil.NewFakeRunner().Fail("git", 128)
	var out bytes.Buffer

	report, err := newInstaller(root, fake, &out).Install(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))

	assert.Contains(t, out.String(), "Cloning lerobot repository...\nError cloning lerobot: ")
	assert.Len(t, fake.Calls, 1, "nothing runs after a failed clone")
	last := report.Steps[len(report.Steps)-1]
	assert.Equal(t, installer.StepClone, last.Name)
	assert.Equal(t, installer.StatusFailed, last.Status)
}

func TestInstall_CheckoutMissingAfterClone(t *testing.T) {
	root := t.TempDir()
	fake := testutil.NewFakeRunner()
	var out bytes.Buffer

	report, err := newInstaller(root, fake, &out).Install(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))

	manifestPath := filepath.Join(root, "lerobot", "pyproject.toml")
	assert.Contains(t, out.String(), "Error: lerobot directory not found after clone.\n")
	assert.Contains(t, out.String(), "Error: "+manifestPath+" not found.\n")

	step, _ := report.Step(installer.StepPatch)
	assert.Equal(t, installer.StatusSkipped, step.Status)
}

func TestInstall_PipFailure(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, filepath.Join(root, "lerobot"), "pyproject.toml", upstreamManifest)
	fake := testutil.NewFakeRunner().Fail("pip", 1)
	var out bytes.Buffer

	report, err := newInstaller(root, fake, &out).Install(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))

	assert.Contains(t, out.String(), "Installing lerobot dependencies...\nError installing lerobot dependencies: ")
	assert.Equal(t, []string{"pip install -e ."}, fake.CommandLines(), "extras are not attempted")
	_, ok := report.Step(installer.StepExtras)
	assert.False(t, ok)

	// the patch was still applied
	assert.Equal(t, patchedUpstreamManifest, testutil.ReadFile(t, filepath.Join(root, "lerobot", "pyproject.toml")))
}

func TestInstall_Options(t *testing.T) {
	root := t.TempDir()
	fake := testutil.NewFakeRunner().On("git", cloneInto(t))
	var out bytes.Buffer

	in := newInstaller(root, fake, &out)
	in.RepoURL = "https://example.com/fork/lerobot.git"
	in.RepoDir = "lerobot-fork"
	in.CloneDepth = 1
	in.Pip = "uv pip"
	in.Extras = []string{"wandb"}

	_, err := in.Install(context.Background())
	require.NoError(t, err)

	repo := filepath.Join(root, "lerobot-fork")
	assert.Equal(t, []string{
		"git clone --depth 1 https://example.com/fork/lerobot.git " + repo,
		"uv pip install -e .",
		"uv pip install wandb",
	}, fake.CommandLines())
}

func TestInstall_SkipCloneAndInstall(t *testing.T) {
	root := t.TempDir()
	fake := testutil.NewFakeRunner()
	var out bytes.Buffer

	in := newInstaller(root, fake, &out)
	in.SkipClone = true
	in.SkipInstall = true

	report, _ := in.Install(context.Background())
	assert.Empty(t, fake.Calls)
	assert.Contains(t, out.String(), "Skipping clone of lerobot.\n")
	assert.Contains(t, out.String(), "Skipping installation of lerobot dependencies.\n")

	step, _ := report.Step(installer.StepInstall)
	assert.Equal(t, installer.StatusSkipped, step.Status)
}

func TestInstall_DryRun(t *testing.T) {
	root := t.TempDir()
	repo := filepath.Join(root, "lerobot")
	testutil.CreateFile(t, repo, "pyproject.toml", upstreamManifest)
	fake := testutil.NewFakeRunner()
	var out bytes.Buffer

	in := newInstaller(root, fake, &out)
	in.DryRun = true

	_, err := in.Install(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Dry run: 3 line(s) of "+filepath.Join(repo, "pyproject.toml")+" would be patched.\n")
	data, err := os.ReadFile(filepath.Join(repo, "pyproject.toml"))
	require.NoError(t, err)
	assert.Equal(t, upstreamManifest, string(data))
}

func TestInstall_DryRunWithoutCheckout(t *testing.T) {
	root := t.TempDir()
	fake := testutil.NewFakeRunner()
	var out bytes.Buffer

	in := newInstaller(root, fake, &out)
	in.DryRun = true

	report, err := in.Install(context.Background())
	require.NoError(t, err)

	step, _ := report.Step(installer.StepLocate)
	assert.Equal(t, installer.StatusSkipped, step.Status)
	assert.Contains(t, out.String(), "Dry run: lerobot would be cloned into "+filepath.Join(root, "lerobot")+".\n")
}

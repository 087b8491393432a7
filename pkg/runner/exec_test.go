package runner_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunner(dryRun bool) (*runner.ExecRunner, *bytes.Buffer) {
	var out bytes.Buffer
	return runner.NewExecRunner(runner.Options{DryRun: dryRun, Stdout: &out, Stderr: &out}), &out
}

func TestExecRunner_CapturesAndEchoesOutput(t *testing.T) {
	r, out := newRunner(false)

	res, err := r.Run(context.Background(), runner.Command{
		Name: "sh",
		Args: []string{"-c", "echo $LRSETUP_TEST_VALUE"},
		Env:  map[string]string{"LRSETUP_TEST_VALUE": "hello"},
	})

	require.NoError(t, err)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\n", out.String())
}

func TestExecRunner_QuietDoesNotEcho(t *testing.T) {
	r, out := newRunner(false)

	res, err := r.Run(context.Background(), runner.Command{
		Name:  "sh",
		Args:  []string{"-c", "echo quiet"},
		Quiet: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "quiet\n", res.Stdout)
	assert.Empty(t, out.String())
}

func TestExecRunner_WorkingDir(t *testing.T) {
	r, _ := newRunner(false)
	dir := t.TempDir()

	res, err := r.Run(context.Background(), runner.Command{
		Name:  "pwd",
		Dir:   dir,
		Quiet: true,
	})

	require.NoError(t, err)
	assert.Contains(t, res.Stdout, dir)
}

func TestExecRunner_MissingWorkingDir(t *testing.T) {
	r, _ := newRunner(false)

	_, err := r.Run(context.Background(), runner.Command{Name: "true", Dir: "/definitely/not/here"})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	r, _ := newRunner(false)

	res, err := r.Run(context.Background(), runner.Command{
		Name:  "sh",
		Args:  []string{"-c", "echo partial; exit 3"},
		Quiet: true,
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "partial\n", res.Stdout)
}

func TestExecRunner_CommandNotFound(t *testing.T) {
	r, _ := newRunner(false)

	_, err := r.Run(context.Background(), runner.Command{Name: "lrsetup-no-such-binary"})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandNotFound))

	_, err = r.LookPath("lrsetup-no-such-binary")
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandNotFound))
}

func TestExecRunner_DryRun(t *testing.T) {
	r, out := newRunner(true)
	assert.True(t, r.DryRun())

	res, err := r.Run(context.Background(), runner.Command{Name: "lrsetup-no-such-binary"})

	require.NoError(t, err)
	assert.Equal(t, runner.Result{}, res)
	assert.Empty(t, out.String())
}

func TestExecRunner_EmptyName(t *testing.T) {
	r, _ := newRunner(false)

	_, err := r.Run(context.Background(), runner.Command{})

	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestCommand_String(t *testing.T) {
	assert.Equal(t, "pip install -e .", runner.Command{Name: "pip", Args: []string{"install", "-e", "."}}.String())
	assert.Equal(t, "wandb", runner.Command{Name: "wandb"}.String())
	assert.Equal(t, "python3 [redacted]",
		runner.Command{Name: "python3", Args: []string{"-c", "print('hf_x')"}, Sensitive: true}.String())
}

func TestCommand_Environ(t *testing.T) {
	c := runner.Command{Env: map[string]string{"B": "2", "A": "1"}}
	assert.Equal(t, []string{"A=1", "B=2"}, c.Environ())
}

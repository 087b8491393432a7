package testutil

import (
	"context"
	"testing"

	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeRunner(t *testing.T) {
	ctx := context.Background()
	f := NewFakeRunner().
		Respond("v4l2-ctl", "cam\n").
		Fail("pip", 1).
		NotFound("wandb")

	res, err := f.Run(ctx, runner.Command{Name: "v4l2-ctl", Args: []string{"--list-devices"}})
	require.NoError(t, err)
	assert.Equal(t, "cam\n", res.Stdout)

	res, err = f.Run(ctx, runner.Command{Name: "pip", Args: []string{"install"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.Equal(t, 1, res.ExitCode)

	_, err = f.Run(ctx, runner.Command{Name: "wandb"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandNotFound))

	_, err = f.Run(ctx, runner.Command{Name: "git", Args: []string{"status"}})
	assert.NoError(t, err)

	assert.Equal(t, []string{"v4l2-ctl --list-devices", "pip install", "wandb", "git status"}, f.CommandLines())

	_, err = f.LookPath("wandb")
	assert.Error(t, err)
	path, err := f.LookPath("git")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/git", path)
}

func TestFakeRunner_FailWhen(t *testing.T) {
	ctx := context.Background()
	f := NewFakeRunner().FailWhen("python3", "google.colab", 1)

	_, err := f.Run(ctx, runner.Command{Name: "python3", Args: []string{"-c", "import google.colab"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))

	_, err = f.Run(ctx, runner.Command{Name: "python3", Args: []string{"-c", "print(1)"}})
	assert.NoError(t, err)
}

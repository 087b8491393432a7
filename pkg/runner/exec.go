package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"

	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/logging"
	"github.com/rs/zerolog"
)

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	logger zerolog.Logger
	dryRun bool
	stdout io.Writer
	stderr io.Writer
}

// Options configures an ExecRunner
type Options struct {
	DryRun bool
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates a new command runner
func NewExecRunner(opts Options) *ExecRunner {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	return &ExecRunner{
		logger: logging.GetLogger("runner"),
		dryRun: opts.DryRun,
		stdout: stdout,
		stderr: stderr,
	}
}

// DryRun reports whether commands are only logged
func (r *ExecRunner) DryRun() bool {
	return r.dryRun
}

// LookPath resolves an executable on PATH
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrCommandNotFound, "%s not found in PATH", name).
			WithDetail("command", name)
	}
	return path, nil
}

// Run executes the command
func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	if c.Name == "" {
		return Result{}, errors.New(errors.ErrInvalidInput, "command name is required")
	}

	logging.LogCommand(r.logger, c.Name, c.Dir, c.Args, c.Sensitive)

	if r.dryRun {
		r.logger.Info().Str("command", c.String()).Msg("Dry run mode - command would be executed")
		return Result{}, nil
	}

	if c.Dir != "" {
		if _, err := os.Stat(c.Dir); err != nil {
			return Result{}, errors.Wrapf(err, errors.ErrFileAccess,
				"working directory does not exist: %s", c.Dir)
		}
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), c.Environ()...)

	var stdout, stderr bytes.Buffer
	if c.Quiet {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	} else {
		cmd.Stdout = io.MultiWriter(&stdout, r.stdout)
		cmd.Stderr = io.MultiWriter(&stderr, r.stderr)
	}

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		if stderrors.Is(err, exec.ErrNotFound) {
			return result, errors.Wrapf(err, errors.ErrCommandNotFound, "%s not found", c.Name).
				WithDetail("command", c.Name)
		}

		r.logger.Error().
			Err(err).
			Str("command", c.Name).
			Int("exitCode", result.ExitCode).
			Str("stderr", result.Stderr).
			Msg("Command execution failed")

		return result, errors.Wrapf(err, errors.ErrCommandFailed, "command failed: %s", c.String()).
			WithDetail("command", c.Name).
			WithDetail("exitCode", result.ExitCode)
	}

	doneEvent := r.logger.Debug().Str("command", c.Name)
	if !c.Sensitive {
		doneEvent = doneEvent.Str("stdout", result.Stdout)
	}
	doneEvent.Msg("Command executed successfully")

	return result, nil
}

var _ Runner = (*ExecRunner)(nil)

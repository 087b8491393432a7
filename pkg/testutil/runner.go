package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/runner"
)

// FakeHandler produces the outcome of a faked command
type FakeHandler func(cmd runner.Command) (runner.Result, error)

// FakeRunner is a scripted runner.Runner. Commands without a registered
// handler succeed with an empty result.
type FakeRunner struct {
	Calls    []runner.Command
	handlers map[string]FakeHandler
	missing  map[string]bool
}

// NewFakeRunner creates an empty FakeRunner
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		handlers: make(map[string]FakeHandler),
		missing:  make(map[string]bool),
	}
}

// On registers a handler for every invocation of the named program
func (f *FakeRunner) On(name string, h FakeHandler) *FakeRunner {
	f.handlers[name] = h
	return f
}

// Respond makes the named program succeed and print stdout
func (f *FakeRunner) Respond(name, stdout string) *FakeRunner {
	return f.On(name, func(runner.Command) (runner.Result, error) {
		return runner.Result{Stdout: stdout}, nil
	})
}

// Fail makes the named program exit with the given status
func (f *FakeRunner) Fail(name string, exitCode int) *FakeRunner {
	return f.On(name, func(cmd runner.Command) (runner.Result, error) {
		res := runner.Result{ExitCode: exitCode}
		return res, errors.Wrapf(fmt.Errorf("exit status %d", exitCode), errors.ErrCommandFailed,
			"command failed: %s", cmd.String())
	})
}

// FailWhen makes invocations of the named program whose arguments contain
// substr exit with the given status; other invocations succeed
func (f *FakeRunner) FailWhen(name, substr string, exitCode int) *FakeRunner {
	return f.On(name, func(cmd runner.Command) (runner.Result, error) {
		if !strings.Contains(strings.Join(cmd.Args, " "), substr) {
			return runner.Result{}, nil
		}
		res := runner.Result{ExitCode: exitCode}
		return res, errors.Wrapf(fmt.Errorf("exit status %d", exitCode), errors.ErrCommandFailed,
			"command failed: %s", cmd.String())
	})
}

// NotFound makes the named program behave as if it were not installed
func (f *FakeRunner) NotFound(name string) *FakeRunner {
	f.missing[name] = true
	return f
}

// Run implements runner.Runner
func (f *FakeRunner) Run(ctx context.Context, cmd runner.Command) (runner.Result, error) {
	f.Calls = append(f.Calls, cmd)

	if f.missing[cmd.Name] {
		return runner.Result{}, errors.Newf(errors.ErrCommandNotFound, "%s not found", cmd.Name)
	}
	if h, ok := f.handlers[cmd.Name]; ok {
		return h(cmd)
	}
	return runner.Result{}, nil
}

// LookPath implements runner.Runner
func (f *FakeRunner) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", errors.Newf(errors.ErrCommandNotFound, "%s not found in PATH", name)
	}
	return "/usr/bin/" + name, nil
}

// CommandLines returns every recorded invocation rendered as a string
func (f *FakeRunner) CommandLines() []string {
	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		lines = append(lines, c.String())
	}
	return lines
}

var _ runner.Runner = (*FakeRunner)(nil)

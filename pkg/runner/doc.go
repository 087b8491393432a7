// Package runner executes external programs (git, pip, v4l2-ctl, the
// service CLIs) on behalf of the setup steps.
//
// All process invocation goes through the Runner interface so steps can be
// exercised in tests with a scripted fake (see pkg/testutil). ExecRunner is
// the real implementation: it merges the parent environment with the
// per-command variables, tees output to the console while capturing it, and
// maps failures onto the structured error codes COMMAND_NOT_FOUND and
// COMMAND_FAILED.
package runner

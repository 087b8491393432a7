package auth

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/logging"
	"github.com/arthur-debert/lrsetup/pkg/runner"
	"github.com/arthur-debert/lrsetup/pkg/secrets"
)

// Variables read by the services
const (
	EnvHFToken           = "HF_TOKEN"
	EnvWandbAPIKey       = "WANDB_API_KEY"
	EnvWandbNotebookName = "WANDB_NOTEBOOK_NAME"
)

// Defaults for Options
const (
	DefaultPython       = "python3"
	DefaultWandbCLI     = "wandb"
	DefaultNotebookName = "train_so101_model.ipynb"
)

// hfLoginScript logs in with the token from the environment so it never
// appears in the process list
const hfLoginScript = `import os
from huggingface_hub import login
login(token=os.environ["HF_TOKEN"])
`

// Console messages
const (
	MsgHFLogin          = "login to hf"
	MsgHFLoginFailed    = "login to hf failed"
	MsgWandbLogin       = "login to wandb"
	MsgWandbLoginFailed = "login to wandb failed"
)

// Service names accepted by Login
const (
	ServiceHF    = "hf"
	ServiceWandb = "wandb"
)

// Options configures an Authenticator
type Options struct {
	Secrets secrets.Provider
	Runner  runner.Runner
	Session *Session
	Out     io.Writer

	// Python runs the Hugging Face login helper
	Python       string
	WandbCLI     string
	NotebookName string
}

// Authenticator performs service logins
type Authenticator struct {
	opts Options
}

// New creates an Authenticator, filling unset options with defaults
func New(opts Options) *Authenticator {
	if opts.Session == nil {
		opts.Session = NewSession()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Python == "" {
		opts.Python = DefaultPython
	}
	if opts.WandbCLI == "" {
		opts.WandbCLI = DefaultWandbCLI
	}
	if opts.NotebookName == "" {
		opts.NotebookName = DefaultNotebookName
	}
	return &Authenticator{opts: opts}
}

// Session returns the session variables are recorded in
func (a *Authenticator) Session() *Session {
	return a.opts.Session
}

// HuggingFace logs in to the Hugging Face Hub with HF_TOKEN
func (a *Authenticator) HuggingFace(ctx context.Context) error {
	logger := logging.GetLogger("auth.hf")

	token, err := secrets.Require(ctx, a.opts.Secrets, EnvHFToken)
	if err != nil {
		logger.Warn().Err(err).Msg("No Hugging Face token")
		_, _ = fmt.Fprintln(a.opts.Out, MsgHFLoginFailed)
		return err
	}
	a.opts.Session.Set(EnvHFToken, token)

	_, err = a.opts.Runner.Run(ctx, runner.Command{
		Name:      a.opts.Python,
		Args:      []string{"-c", hfLoginScript},
		Env:       map[string]string{EnvHFToken: token},
		Quiet:     true,
		Sensitive: true,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Hugging Face login failed")
		_, _ = fmt.Fprintln(a.opts.Out, MsgHFLoginFailed)
		return errors.Wrap(err, errors.ErrLoginFailed, "hugging face login failed").
			WithDetail("service", ServiceHF)
	}

	_, _ = fmt.Fprintln(a.opts.Out, MsgHFLogin)
	return nil
}

// WandB logs in to Weights & Biases with WANDB_API_KEY
func (a *Authenticator) WandB(ctx context.Context) error {
	logger := logging.GetLogger("auth.wandb")

	key, err := secrets.Require(ctx, a.opts.Secrets, EnvWandbAPIKey)
	if err != nil {
		logger.Warn().Err(err).Msg("No Weights & Biases API key")
		_, _ = fmt.Fprintln(a.opts.Out, MsgWandbLoginFailed)
		return err
	}
	vars := map[string]string{
		EnvWandbAPIKey:       key,
		EnvWandbNotebookName: a.opts.NotebookName,
	}
	a.opts.Session.Merge(vars)

	// wandb reads the key from the environment
	_, err = a.opts.Runner.Run(ctx, runner.Command{
		Name:  a.opts.WandbCLI,
		Args:  []string{"login"},
		Env:   vars,
		Quiet: true,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Weights & Biases login failed")
		_, _ = fmt.Fprintln(a.opts.Out, MsgWandbLoginFailed)
		return errors.Wrap(err, errors.ErrLoginFailed, "wandb login failed").
			WithDetail("service", ServiceWandb)
	}

	_, _ = fmt.Fprintln(a.opts.Out, MsgWandbLogin)
	return nil
}

// Login runs the login for the named service, or both when service is empty.
// Both logins are attempted; the first error is returned.
func (a *Authenticator) Login(ctx context.Context, service string) error {
	switch service {
	case ServiceHF:
		return a.HuggingFace(ctx)
	case ServiceWandb:
		return a.WandB(ctx)
	case "":
		hfErr := a.HuggingFace(ctx)
		wandbErr := a.WandB(ctx)
		if hfErr != nil {
			return hfErr
		}
		return wandbErr
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown service %q (want %s or %s)", service, ServiceHF, ServiceWandb)
	}
}

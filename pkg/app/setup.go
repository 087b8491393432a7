package app

import (
	"context"

	"github.com/arthur-debert/lrsetup/pkg/auth"
	"github.com/arthur-debert/lrsetup/pkg/display"
	"github.com/arthur-debert/lrsetup/pkg/installer"
	"github.com/arthur-debert/lrsetup/pkg/logging"
)

// SetupOptions selects the parts of the full setup to run
type SetupOptions struct {
	SkipClone   bool
	SkipInstall bool
	SkipLogin   bool
}

// SetupReport collects the outcome of every setup phase
type SetupReport struct {
	Install  *installer.Report
	HFErr    error
	WandbErr error
	// LoginSkipped is set when no login was attempted
	LoginSkipped bool
	// NextCommand is the cd hint printed at the end; empty when the
	// checkout does not exist
	NextCommand string
}

// Err returns the first failure
func (r *SetupReport) Err() error {
	if r.Install != nil {
		if err := r.Install.Err(); err != nil {
			return err
		}
	}
	if r.HFErr != nil {
		return r.HFErr
	}
	return r.WandbErr
}

// Summary lists the install steps followed by the login outcomes
func (r *SetupReport) Summary(dryRun bool) display.Summary {
	s := InstallSummary(r.Install, dryRun)
	s.Command = "setup"
	if r.LoginSkipped {
		return s
	}
	s.Rows = append(s.Rows,
		loginRow(auth.ServiceHF, r.HFErr),
		loginRow(auth.ServiceWandb, r.WandbErr))
	return s
}

// InstallSummary converts an install report for display
func InstallSummary(report *installer.Report, dryRun bool) display.Summary {
	s := display.Summary{Command: "install", DryRun: dryRun}
	if report == nil {
		return s
	}
	for _, step := range report.Steps {
		s.Rows = append(s.Rows, display.SummaryRow{
			Step:    step.Name,
			Status:  string(step.Status),
			Message: step.Message,
		})
	}
	return s
}

func loginRow(service string, err error) display.SummaryRow {
	if err != nil {
		return display.SummaryRow{Step: service, Status: string(installer.StatusFailed), Message: err.Error()}
	}
	return display.SummaryRow{Step: service, Status: string(installer.StatusOK), Message: "logged in"}
}

// Title of the closing command block
const nextStepTitle = "Enter the lerobot checkout"

// Setup runs install, both logins and prints the cd hint. Logins run even
// when the install fails.
func (a *App) Setup(ctx context.Context, opts SetupOptions) (*SetupReport, error) {
	logger := logging.GetLogger("app.setup")
	done := logging.LogOperationStart(logger, "setup")
	defer done()

	report := &SetupReport{}

	in := a.Installer()
	in.SkipClone = opts.SkipClone
	in.SkipInstall = opts.SkipInstall
	report.Install, _ = in.Install(ctx)

	report.LoginSkipped = opts.SkipLogin
	if !opts.SkipLogin {
		authn := a.Authenticator()
		report.HFErr = authn.HuggingFace(ctx)
		report.WandbErr = authn.WandB(ctx)
	}

	repo := a.RepoPath()
	if _, err := a.FS.Stat(repo); err == nil || a.DryRun() {
		report.NextCommand = "cd " + repo
		if err := display.PrintShellMarkdown(a.opts.Out, a.Renderer(), nextStepTitle, "cd", repo); err != nil {
			return report, err
		}
	}

	return report, report.Err()
}

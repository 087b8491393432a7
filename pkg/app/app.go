// Package app assembles lrsetup's components from configuration and the
// detected environment. Commands create one App per invocation.
package app

import (
	"context"
	"io"
	"os"

	"github.com/arthur-debert/lrsetup/pkg/auth"
	"github.com/arthur-debert/lrsetup/pkg/camera"
	"github.com/arthur-debert/lrsetup/pkg/config"
	"github.com/arthur-debert/lrsetup/pkg/display"
	"github.com/arthur-debert/lrsetup/pkg/environment"
	"github.com/arthur-debert/lrsetup/pkg/filesystem"
	"github.com/arthur-debert/lrsetup/pkg/installer"
	"github.com/arthur-debert/lrsetup/pkg/logging"
	"github.com/arthur-debert/lrsetup/pkg/manifest"
	"github.com/arthur-debert/lrsetup/pkg/runner"
	"github.com/arthur-debert/lrsetup/pkg/secrets"
	"github.com/arthur-debert/lrsetup/pkg/serialports"
	"github.com/arthur-debert/lrsetup/pkg/types"
	"github.com/arthur-debert/lrsetup/pkg/ui"
)

// Options configures New. Zero values use the real process environment.
type Options struct {
	RootOverride string
	ConfigFile   string
	DryRun       bool
	Format       ui.Format
	Overrides    map[string]interface{}

	Out io.Writer
	Err io.Writer

	// Runner executes side-effecting commands (clone, pip, logins)
	Runner runner.Runner
	// QueryRunner executes read-only commands (probes, secret and device
	// lookups); it ignores dry-run
	QueryRunner runner.Runner
	FS          types.FS

	Getenv    func(string) string
	LookupEnv func(string) (string, bool)
	Getwd     func() (string, error)
}

// App holds the wired components for one command invocation
type App struct {
	Config  *config.Config
	Env     environment.Environment
	Runner  runner.Runner
	Query   runner.Runner
	FS      types.FS
	Console *ui.Console
	Session *auth.Session
	Secrets secrets.Chain

	opts Options
}

// New loads configuration, detects the environment and builds the app
func New(ctx context.Context, opts Options) (*App, error) {
	logger := logging.GetLogger("app")

	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Getwd == nil {
		opts.Getwd = os.Getwd
	}
	if opts.Runner == nil {
		opts.Runner = runner.NewExecRunner(runner.Options{DryRun: opts.DryRun, Stdout: opts.Out, Stderr: opts.Err})
	}
	if opts.QueryRunner == nil {
		if r, ok := opts.Runner.(*runner.ExecRunner); ok && r.DryRun() {
			opts.QueryRunner = runner.NewExecRunner(runner.Options{Stdout: opts.Out, Stderr: opts.Err})
		} else {
			opts.QueryRunner = opts.Runner
		}
	}

	// the project file lives under the root dir, which detection decides
	base, err := config.Load(config.LoadOptions{ConfigFile: opts.ConfigFile, Overrides: opts.Overrides})
	if err != nil {
		return nil, err
	}

	detect := environment.DetectOptions{
		RootOverride: opts.RootOverride,
		ColabRoot:    base.Environment.ColabRoot,
		VastRoot:     base.Environment.VastRoot,
		Getenv:       opts.Getenv,
		Getwd:        opts.Getwd,
	}
	if base.Environment.ProbeColab {
		detect.Runner = opts.QueryRunner
		detect.Python = base.Environment.Python
	}
	env, err := environment.Detect(ctx, detect)
	if err != nil {
		return nil, err
	}

	cfg := base
	if opts.ConfigFile == "" {
		cfg, err = config.Load(config.LoadOptions{ProjectDir: env.RootDir, Overrides: opts.Overrides})
		if err != nil {
			return nil, err
		}
	}

	workDir, _ := opts.Getwd()
	chain := secrets.NewChain(secrets.ChainOptions{
		Environment: env,
		Runner:      opts.QueryRunner,
		Python:      cfg.Environment.Python,
		FS:          opts.FS,
		DotenvFiles: cfg.Secrets.DotenvFiles,
		WorkDir:     workDir,
		LookupEnv:   opts.LookupEnv,
	})

	session := auth.NewSession()
	session.Merge(env.Exports())

	logger.Debug().
		Str("kind", string(env.Kind)).
		Str("rootDir", env.RootDir).
		Bool("dryRun", opts.DryRun).
		Msg("App initialized")

	return &App{
		Config:  cfg,
		Env:     env,
		Runner:  opts.Runner,
		Query:   opts.QueryRunner,
		FS:      opts.FS,
		Console: ui.NewConsole(opts.Out, opts.Format),
		Session: session,
		Secrets: chain,
		opts:    opts,
	}, nil
}

// Out returns the writer command output goes to
func (a *App) Out() io.Writer { return a.opts.Out }

// DryRun reports whether side effects are disabled
func (a *App) DryRun() bool { return a.opts.DryRun }

// RepoPath returns the lerobot checkout directory
func (a *App) RepoPath() string {
	return a.Env.RepoDir(a.Config.LeRobot.Dir)
}

// Installer returns an installer configured for this environment
func (a *App) Installer() *installer.Installer {
	lr := a.Config.LeRobot
	return &installer.Installer{
		Env:        a.Env,
		Runner:     a.Runner,
		FS:         a.FS,
		Out:        a.opts.Out,
		RepoURL:    lr.RepoURL,
		RepoDir:    lr.Dir,
		CloneDepth: lr.CloneDepth,
		Manifest:   lr.Manifest,
		Rules:      a.Config.Manifest.Rules,
		Pip:        lr.Pip,
		Extras:     lr.ExtraPackages,
		DryRun:     a.opts.DryRun,
	}
}

// Patcher returns the manifest patcher with the configured rules
func (a *App) Patcher() *manifest.Patcher {
	return &manifest.Patcher{
		FS:     a.FS,
		Rules:  a.Config.Manifest.Rules,
		Out:    a.opts.Out,
		DryRun: a.opts.DryRun,
	}
}

// ManifestPath returns the manifest inside the checkout
func (a *App) ManifestPath() string {
	return a.Installer().ManifestPath()
}

// Authenticator returns the service login helper sharing the app session
func (a *App) Authenticator() *auth.Authenticator {
	return auth.New(auth.Options{
		Secrets:      a.Secrets,
		Runner:       a.Runner,
		Session:      a.Session,
		Out:          a.opts.Out,
		Python:       a.Config.Environment.Python,
		WandbCLI:     a.Config.Auth.WandbCLI,
		NotebookName: a.Config.Auth.NotebookName,
	})
}

// CameraScanner returns the V4L2 scanner
func (a *App) CameraScanner() *camera.Scanner {
	return &camera.Scanner{
		Runner: a.Query,
		Out:    a.opts.Out,
		Tool:   a.Config.Camera.V4L2Ctl,
	}
}

// SerialPorts returns the serial port lister
func (a *App) SerialPorts() *serialports.Lister {
	return serialports.NewLister()
}

// Renderer returns the markdown renderer for the console format
func (a *App) Renderer() display.Renderer {
	return display.NewRenderer(a.Console.Format(), a.opts.Out)
}

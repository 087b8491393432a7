// Package environment detects where lrsetup is running (Google Colab, a
// Vast.ai container or a local machine) and derives the root directory the
// lerobot checkout lives under.
//
// Detection produces an Environment value that is passed explicitly to the
// steps that need it. Nothing is written back into the process environment;
// child processes receive CONTAINER and ROOT_DIR through Exports.
package environment

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/lrsetup/pkg/logging"
	"github.com/arthur-debert/lrsetup/pkg/paths"
	"github.com/arthur-debert/lrsetup/pkg/runner"
)

// Kind identifies the hosting environment
type Kind string

const (
	KindColab Kind = "COLAB"
	KindVast  Kind = "VAST"
	KindLocal Kind = "LOCAL"
)

// Default roots per environment
const (
	DefaultColabRoot = "/content/so101ai"
	DefaultVastRoot  = "/workspace/so101ai"
)

// Variables exported to child processes
const (
	EnvContainer = "CONTAINER"
	EnvRootDir   = "ROOT_DIR"
)

var colabMarkers = []string{"COLAB_RELEASE_TAG", "COLAB_GPU", "COLAB_JUPYTER_IP"}

var vastMarkers = []string{"VAST_CONTAINERLABEL", "VAST_API_KEY"}

// Environment is the result of detection
type Environment struct {
	Kind    Kind
	RootDir string
}

// RepoDir returns the directory of a checkout named name under the root
func (e Environment) RepoDir(name string) string {
	return filepath.Join(e.RootDir, name)
}

// Exports returns the variables describing the environment for child processes
func (e Environment) Exports() map[string]string {
	return map[string]string{
		EnvContainer: string(e.Kind),
		EnvRootDir:   e.RootDir,
	}
}

// DetectOptions tunes detection. Zero values fall back to the process
// environment and the default roots.
type DetectOptions struct {
	// RootOverride skips root selection; the kind is still detected
	RootOverride string

	ColabRoot string
	VastRoot  string

	// Runner and Python enable the "import google.colab" probe when no Colab
	// marker variable is present
	Runner runner.Runner
	Python string

	Getenv func(string) string
	Getwd  func() (string, error)
}

// Detect determines the hosting environment
func Detect(ctx context.Context, opts DetectOptions) (Environment, error) {
	logger := logging.GetLogger("environment")

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	getwd := opts.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}

	env := Environment{Kind: KindLocal}
	switch {
	case anySet(getenv, colabMarkers) || probeColab(ctx, opts):
		env.Kind = KindColab
		env.RootDir = firstNonEmpty(opts.ColabRoot, DefaultColabRoot)
	case anySet(getenv, vastMarkers):
		env.Kind = KindVast
		env.RootDir = firstNonEmpty(opts.VastRoot, DefaultVastRoot)
	default:
		cwd, err := getwd()
		if err != nil {
			return Environment{}, err
		}
		env.RootDir = cwd
	}

	if opts.RootOverride != "" {
		root, err := filepath.Abs(paths.ExpandHome(opts.RootOverride))
		if err != nil {
			return Environment{}, err
		}
		env.RootDir = root
	}

	logger.Info().
		Str("kind", string(env.Kind)).
		Str("rootDir", env.RootDir).
		Msg("Environment detected")

	return env, nil
}

func probeColab(ctx context.Context, opts DetectOptions) bool {
	if opts.Runner == nil || opts.Python == "" {
		return false
	}
	_, err := opts.Runner.Run(ctx, runner.Command{
		Name:  opts.Python,
		Args:  []string{"-c", "import google.colab"},
		Quiet: true,
	})
	return err == nil
}

func anySet(getenv func(string) string, names []string) bool {
	for _, n := range names {
		if getenv(n) != "" {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package secrets

import (
	"path/filepath"

	"github.com/arthur-debert/lrsetup/pkg/environment"
	"github.com/arthur-debert/lrsetup/pkg/runner"
	"github.com/arthur-debert/lrsetup/pkg/types"
)

// ChainOptions configures the standard provider chain
type ChainOptions struct {
	Environment environment.Environment
	Runner      runner.Runner
	Python      string
	FS          types.FS

	// DotenvFiles are resolved against the root dir, then WorkDir.
	// Absolute paths are used as is.
	DotenvFiles []string
	WorkDir     string

	LookupEnv func(string) (string, bool)
}

// NewChain builds the standard chain: colab (on Colab only), dotenv, env
func NewChain(opts ChainOptions) Chain {
	var chain Chain
	if opts.Environment.Kind == environment.KindColab && opts.Runner != nil {
		chain = append(chain, NewColabProvider(opts.Runner, opts.Python))
	}
	if opts.FS != nil {
		if files := DotenvPaths(opts.DotenvFiles, opts.Environment.RootDir, opts.WorkDir); len(files) > 0 {
			chain = append(chain, NewDotenvProvider(opts.FS, files...))
		}
	}
	env := NewEnvProvider()
	if opts.LookupEnv != nil {
		env.LookupEnv = opts.LookupEnv
	}
	return append(chain, env)
}

// DotenvPaths resolves dotenv file names against each directory in order,
// dropping duplicates
func DotenvPaths(names []string, dirs ...string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, name := range names {
			if filepath.IsAbs(name) {
				add(name)
				continue
			}
			add(filepath.Join(dir, name))
		}
	}
	return out
}

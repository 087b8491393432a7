package runner

import (
	"context"
	"sort"
	"strings"
)

// Command describes a single process invocation
type Command struct {
	Name string
	Args []string

	// Dir is the working directory; empty means the current one
	Dir string

	// Env holds variables added on top of the parent environment
	Env map[string]string

	// Quiet suppresses echoing output to the console; output is still captured
	Quiet bool

	// Sensitive hides the arguments from logs
	Sensitive bool
}

// String renders the command line for display and logs
func (c Command) String() string {
	if c.Sensitive {
		return c.Name + " [redacted]"
	}
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Environ returns Env as sorted KEY=VALUE pairs
func (c Command) Environ() []string {
	pairs := make([]string, 0, len(c.Env))
	for k, v := range c.Env {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}

// Result represents the outcome of a command execution
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs external commands
type Runner interface {
	// Run executes the command and waits for it to finish. A non-zero exit
	// status is reported as an error carrying the captured Result.
	Run(ctx context.Context, cmd Command) (Result, error)

	// LookPath reports the resolved path of an executable
	LookPath(name string) (string, error)
}

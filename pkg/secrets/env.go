package secrets

import (
	"context"
	"os"
)

// EnvProvider reads secrets from the process environment
type EnvProvider struct {
	// LookupEnv defaults to os.LookupEnv
	LookupEnv func(string) (string, bool)
}

// NewEnvProvider creates a provider backed by os.LookupEnv
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{LookupEnv: os.LookupEnv}
}

func (p *EnvProvider) Name() string { return "env" }

func (p *EnvProvider) Lookup(_ context.Context, key string) (string, bool, error) {
	lookup := p.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	value, ok := lookup(key)
	return value, ok, nil
}

var _ Provider = (*EnvProvider)(nil)

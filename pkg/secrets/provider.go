package secrets

import (
	"context"

	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/logging"
)

// Provider is a source of secrets
type Provider interface {
	Name() string
	// Lookup returns the value of key and whether it was found. An error
	// means the source could not be consulted.
	Lookup(ctx context.Context, key string) (string, bool, error)
}

// Chain queries providers in order
type Chain []Provider

// Name implements Provider
func (c Chain) Name() string { return "chain" }

// Lookup implements Provider. It returns the first non-empty value.
func (c Chain) Lookup(ctx context.Context, key string) (string, bool, error) {
	logger := logging.GetLogger("secrets")
	for _, p := range c {
		value, ok, err := p.Lookup(ctx, key)
		if err != nil {
			logger.Debug().Err(err).
				Str("provider", p.Name()).
				Str("key", key).
				Msg("Secret provider failed, trying next")
			continue
		}
		if ok && value != "" {
			logger.Debug().
				Str("provider", p.Name()).
				Str("key", key).
				Msg("Secret found")
			return value, true, nil
		}
	}
	return "", false, nil
}

// Require looks key up and fails with SECRET_NOT_FOUND when no provider
// has it
func Require(ctx context.Context, p Provider, key string) (string, error) {
	value, ok, err := p.Lookup(ctx, key)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrSecretNotFound, "failed to look up %s", key)
	}
	if !ok || value == "" {
		return "", errors.Newf(errors.ErrSecretNotFound, "secret %s not found", key).
			WithDetail("key", key).
			WithDetail("provider", p.Name())
	}
	return value, nil
}

var _ Provider = Chain(nil)

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/logging"
	"github.com/arthur-debert/lrsetup/pkg/paths"
)

// EnvPrefix prefixes every environment variable read as configuration
const EnvPrefix = "LRSETUP_"

// envNestSeparator separates section and key in environment variable names,
// LRSETUP_LEROBOT__CLONE_DEPTH sets lerobot.clone_depth
const envNestSeparator = "__"

// LoadOptions selects the file layers and explicit overrides
type LoadOptions struct {
	// ProjectDir is searched for lrsetup.toml; empty skips the project layer
	ProjectDir string

	// ConfigFile replaces the project file; it must exist
	ConfigFile string

	// SkipUser ignores the user config file
	SkipUser bool

	// Overrides are applied last, keyed by dotted path
	Overrides map[string]interface{}
}

// Default returns the configuration without any file layer
func Default() (*Config, error) {
	return Load(LoadOptions{SkipUser: true})
}

// Load builds the configuration from every layer
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse embedded defaults")
	}

	if !opts.SkipUser {
		if err := loadOptionalFile(k, paths.UserConfigPath()); err != nil {
			return nil, err
		}
	}

	switch {
	case opts.ConfigFile != "":
		path := paths.ExpandHome(opts.ConfigFile)
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s is not readable", path).
				WithDetail("path", path)
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	case opts.ProjectDir != "":
		if err := loadOptionalFile(k, paths.ProjectConfigPath(opts.ProjectDir)); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid configuration")
	}

	logger.Debug().
		Strs("keys", k.Keys()).
		Msg("Configuration loaded")

	return &cfg, nil
}

// envKey maps LRSETUP_SECTION__KEY to section.key. Variables without the
// nesting separator (LRSETUP_CONFIG_DIR and friends) are not configuration.
func envKey(s string) string {
	name := strings.TrimPrefix(s, EnvPrefix)
	if !strings.Contains(name, envNestSeparator) {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(name, envNestSeparator, "."))
}

func loadOptionalFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot stat config file %s", path)
	}
	return loadFile(k, path)
}

func loadFile(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, fmt.Sprintf("failed to load config from %s", path)).
			WithDetail("path", path)
	}
	logger := logging.GetLogger("config")
	logger.Debug().Str("path", path).Msg("Loaded config file")
	return nil
}

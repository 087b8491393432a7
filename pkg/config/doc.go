// Package config handles configuration management for lrsetup.
//
// Configuration is layered with koanf, later layers overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/lrsetup/config.toml
//  3. lrsetup.toml in the root dir, or the file given with --config
//  4. LRSETUP_<SECTION>__<KEY> environment variables
//  5. explicit overrides from command-line flags
//
// Arrays (such as the manifest rewrite table) replace, they never merge.
package config

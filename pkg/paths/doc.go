// Package paths provides centralized path handling for lrsetup.
//
// It implements the XDG Base Directory specification for the few files
// lrsetup owns itself (user configuration and the log file) and offers
// helpers for expanding user supplied paths.
//
// # Environment Variables
//
//   - LRSETUP_CONFIG_DIR: Override the config directory (default: $XDG_CONFIG_HOME/lrsetup)
//   - LRSETUP_STATE_DIR: Override the state directory (default: $XDG_STATE_HOME/lrsetup)
//
// The working tree that lrsetup prepares (the "root dir" holding the lerobot
// checkout) is not managed here; see pkg/environment.
package paths

// Package installer prepares a LeRobot checkout: it clones the upstream
// repository under the root dir, patches its pyproject.toml and installs it
// with pip.
//
// Each step reports its outcome on the console the way a notebook user
// expects ("Cloning lerobot repository...", "Successfully cloned lerobot.")
// and records it in a Report. A missing root dir or a failed clone stops the
// run; a failed install is reported but earlier work is kept.
package installer

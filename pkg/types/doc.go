// Package types defines the small set of interfaces shared across lrsetup
// packages, most notably the FS abstraction that lets file-editing steps run
// against the real filesystem or an in-memory one in tests.
package types

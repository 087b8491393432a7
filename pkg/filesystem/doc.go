// Package filesystem provides filesystem implementations for lrsetup.
//
// This package contains the OS-backed implementation of the types.FS
// interface. Tests use the in-memory filesystem from pkg/testutil instead.
package filesystem

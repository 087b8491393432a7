// Package testutil provides utilities for testing lrsetup components.
//
// Key components:
//   - File helpers (CreateFile, CreateDir, ReadFile) for real temp directories
//   - NewTestFS: in-memory types.FS backed by synthfs
//   - FakeRunner: scripted runner.Runner that records every invocation
//
// Steps that shell out must be tested through FakeRunner; no test should
// depend on git, pip or v4l2-ctl being installed.
package testutil

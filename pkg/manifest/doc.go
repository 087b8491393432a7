// Package manifest rewrites dependency constraints in a Python project
// manifest (pyproject.toml) so the upstream checkout installs against
// current PyTorch wheels.
//
// The rewrite is line oriented. For each Rule, a line containing a quoted
// token that starts with the rule's package name followed by a
// non-alphabetic character has everything from that opening quote to the
// end of the line replaced with the quoted replacement and a trailing comma:
//
//	"torchvision>=0.1,<1.0; python_version<'4'",
//	"torchvision>=0.21.0",
//
// Lines that match no rule are written back byte for byte and line
// terminators are preserved. Because the replacement itself matches the
// rule again, patching is idempotent.
//
// The match consumes the remainder of the line, so anything after the first
// matching declaration on the same line (further declarations, comments,
// closing brackets of an inline array) is dropped. Validate can be used to
// detect a manifest that stopped being valid TOML as a result.
package manifest

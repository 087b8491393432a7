package manifest

import (
	"fmt"
	"regexp"
)

// Rule rewrites every declaration of Package to Replacement
type Rule struct {
	Package     string `koanf:"package" toml:"package"`
	Replacement string `koanf:"replacement" toml:"replacement"`
}

// Rules is an ordered rewrite table. Rules are applied in order, each one to
// the output of the previous.
type Rules []Rule

// DefaultRules returns the rewrite table for PyTorch-family packages
func DefaultRules() Rules {
	return Rules{
		{Package: "torch", Replacement: "torch>=2.2.1"},
		{Package: "torchcodec", Replacement: "torchcodec>=0.2.1"},
		{Package: "torchvision", Replacement: "torchvision>=0.21.0"},
	}
}

// Pattern returns the expression matching a quoted declaration of the
// rule's package through the end of the line.
func (r Rule) Pattern() *regexp.Regexp {
	return regexp.MustCompile(`"` + regexp.QuoteMeta(r.Package) + `[^a-zA-Z].*`)
}

// Quoted returns the text a matching span is replaced with
func (r Rule) Quoted() string {
	return `"` + r.Replacement + `",`
}

// Validate checks that the table is usable: names are non-empty and unique
// and every replacement declares the package it replaces.
func (rs Rules) Validate() error {
	seen := make(map[string]bool, len(rs))
	for i, r := range rs {
		if r.Package == "" {
			return fmt.Errorf("rule %d: package name is empty", i)
		}
		if r.Replacement == "" {
			return fmt.Errorf("rule %q: replacement is empty", r.Package)
		}
		if seen[r.Package] {
			return fmt.Errorf("rule %q: duplicate package", r.Package)
		}
		seen[r.Package] = true
	}
	return nil
}

// Packages returns the configured package names in order
func (rs Rules) Packages() []string {
	names := make([]string, 0, len(rs))
	for _, r := range rs {
		names = append(names, r.Package)
	}
	return names
}

// Match reports the first rule that would rewrite the given unquoted
// declaration, e.g. "torch>=1.2,<3".
func (rs Rules) Match(declaration string) (Rule, bool) {
	quoted := `"` + declaration + `"`
	for _, r := range rs {
		if r.Pattern().MatchString(quoted) {
			return r, true
		}
	}
	return Rule{}, false
}

// compiled pairs each rule with its expression so a file is patched with a
// single compilation per rule
type compiled struct {
	rule Rule
	re   *regexp.Regexp
}

func (rs Rules) compile() []compiled {
	out := make([]compiled, 0, len(rs))
	for _, r := range rs {
		out = append(out, compiled{rule: r, re: r.Pattern()})
	}
	return out
}

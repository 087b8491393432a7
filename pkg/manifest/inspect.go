package manifest

import (
	"sort"
	"strings"

	"github.com/arthur-debert/lrsetup/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// Declaration is one dependency string listed in the manifest
type Declaration struct {
	// Group is "dependencies" or the name of an optional-dependencies group
	Group string
	Spec  string
}

// Name returns the package name at the start of the declaration
func (d Declaration) Name() string {
	end := strings.IndexFunc(d.Spec, func(r rune) bool {
		return !(r == '-' || r == '_' || r == '.' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	})
	if end < 0 {
		return d.Spec
	}
	return d.Spec[:end]
}

type pyproject struct {
	Project struct {
		Name                 string              `toml:"name"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
}

// Inspect lists the declarations of [project].dependencies followed by every
// optional-dependencies group in name order.
func Inspect(data []byte) ([]Declaration, error) {
	var doc pyproject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "cannot parse manifest")
	}

	var decls []Declaration
	for _, spec := range doc.Project.Dependencies {
		decls = append(decls, Declaration{Group: "dependencies", Spec: spec})
	}

	groups := make([]string, 0, len(doc.Project.OptionalDependencies))
	for g := range doc.Project.OptionalDependencies {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		for _, spec := range doc.Project.OptionalDependencies[g] {
			decls = append(decls, Declaration{Group: g, Spec: spec})
		}
	}

	return decls, nil
}

// Validate reports whether data is well-formed TOML
func Validate(data []byte) error {
	var v map[string]interface{}
	if err := toml.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, errors.ErrManifestParse, "manifest is not valid TOML")
	}
	return nil
}

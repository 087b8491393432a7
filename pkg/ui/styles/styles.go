// Package styles holds the lipgloss styles used for console output.
//
// Styles are defined in the embedded styles.yaml by semantic name (Success,
// Error, Path...) and resolved once at init.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Style names
const (
	Header       = "Header"
	Success      = "Success"
	Error        = "Error"
	Warning      = "Warning"
	Info         = "Info"
	Muted        = "Muted"
	Bold         = "Bold"
	Path         = "Path"
	DryRunBanner = "DryRunBanner"
)

//go:embed styles.yaml
var embeddedStyles []byte

var registry map[string]lipgloss.Style

func init() {
	if err := LoadFromData(embeddedStyles); err != nil {
		registry = map[string]lipgloss.Style{}
	}
}

// LoadFromData replaces the registry with the styles in data
func LoadFromData(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse styles data: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	loaded := make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		style := lipgloss.NewStyle().
			Bold(def.Bold).
			Italic(def.Italic).
			Underline(def.Underline)
		if c, ok := colors[def.Foreground]; ok {
			style = style.Foreground(c)
		} else if def.Foreground != "" {
			return fmt.Errorf("style %s: unknown color %q", name, def.Foreground)
		}
		loaded[name] = style
	}

	registry = loaded
	return nil
}

// Get returns the named style, or an empty style when it is not defined
func Get(name string) lipgloss.Style {
	if style, ok := registry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Has reports whether a style is defined
func Has(name string) bool {
	_, ok := registry[name]
	return ok
}

// Render applies the named style to text
func Render(name, text string) string {
	return Get(name).Render(text)
}

// Embedded returns the built-in styles definition
func Embedded() []byte {
	return embeddedStyles
}

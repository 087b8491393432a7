package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/lrsetup/pkg/logging"
	"github.com/arthur-debert/lrsetup/pkg/ui"
)

// Renderer turns markdown into displayable text
type Renderer interface {
	Render(markdown string) string
}

// PlainRenderer returns markdown unchanged
type PlainRenderer struct{}

// Render implements Renderer
func (PlainRenderer) Render(markdown string) string { return markdown }

// GlamourRenderer uses the glamour library for rich markdown rendering
type GlamourRenderer struct {
	Style string // Style name: "dark", "light", "notty", "auto", or path to custom style
	Width int    // Word wrap width (0 = glamour default)
}

// NewGlamourRenderer creates a markdown renderer using glamour with auto-detection
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render implements Renderer. Errors fall back to the raw markdown.
func (r *GlamourRenderer) Render(markdown string) string {
	var options []glamour.TermRendererOption
	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	case "dark", "light", "notty", "dracula", "pink", "ascii", "tokyo-night":
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	logger := logging.GetLogger("display")
	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		logger.Debug().Err(err).Msg("glamour unavailable, printing raw markdown")
		return markdown
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		logger.Debug().Err(err).Msg("glamour failed, printing raw markdown")
		return markdown
	}
	return rendered
}

// NewRenderer picks the renderer for an output format. Auto resolves
// against w; only the terminal format gets glamour.
func NewRenderer(format ui.Format, w io.Writer) Renderer {
	if format == ui.FormatAuto {
		format = ui.DetectFormat(w)
	}
	if format == ui.FormatTerminal {
		return NewGlamourRenderer()
	}
	return PlainRenderer{}
}

// PrintShellMarkdown renders a command block and writes it to w
func PrintShellMarkdown(w io.Writer, r Renderer, title, command string, args ...string) error {
	_, err := fmt.Fprint(w, r.Render(ShellMarkdown(title, command, args...)))
	return err
}

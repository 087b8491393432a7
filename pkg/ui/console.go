package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/lrsetup/pkg/ui/styles"
)

// Console writes user facing output in one format
type Console struct {
	out    io.Writer
	format Format
}

// NewConsole creates a console writing to w. FormatAuto is resolved
// against w.
func NewConsole(w io.Writer, format Format) *Console {
	if format == FormatAuto {
		format = DetectFormat(w)
	}
	return &Console{out: w, format: format}
}

// Writer returns the underlying writer
func (c *Console) Writer() io.Writer { return c.out }

// Format returns the resolved format
func (c *Console) Format() Format { return c.format }

// Styled reports whether output carries terminal styling
func (c *Console) Styled() bool { return c.format == FormatTerminal }

func (c *Console) styled(style, text string) string {
	if !c.Styled() {
		return text
	}
	return styles.Render(style, text)
}

func (c *Console) line(style, format string, args ...interface{}) {
	_, _ = fmt.Fprintln(c.out, c.styled(style, fmt.Sprintf(format, args...)))
}

// Println writes an unstyled line
func (c *Console) Println(a ...interface{}) {
	_, _ = fmt.Fprintln(c.out, a...)
}

// Header writes a section title
func (c *Console) Header(format string, args ...interface{}) { c.line(styles.Header, format, args...) }

// Success writes a success line
func (c *Console) Success(format string, args ...interface{}) {
	c.line(styles.Success, format, args...)
}

// Warn writes a warning line
func (c *Console) Warn(format string, args ...interface{}) { c.line(styles.Warning, format, args...) }

// Error writes an error line
func (c *Console) Error(format string, args ...interface{}) { c.line(styles.Error, format, args...) }

// Info writes an informational line
func (c *Console) Info(format string, args ...interface{}) { c.line(styles.Info, format, args...) }

// Muted writes a de-emphasized line
func (c *Console) Muted(format string, args ...interface{}) { c.line(styles.Muted, format, args...) }

// Table writes rows under a header row. Text output drops the colors
// pterm adds.
func (c *Console) Table(header []string, rows [][]string) error {
	data := pterm.TableData{header}
	data = append(data, rows...)

	rendered, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(data).
		Srender()
	if err != nil {
		return err
	}
	if !c.Styled() {
		rendered = pterm.RemoveColorFromString(rendered)
	}
	_, err = fmt.Fprintln(c.out, rendered)
	return err
}

// JSON writes v as indented JSON
func (c *Console) JSON(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

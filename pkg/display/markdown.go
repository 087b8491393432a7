// Package display renders the copy-paste command blocks shown to users
// after setup, as markdown styled with glamour on a terminal or as the raw
// markdown text everywhere else.
package display

import (
	"fmt"
	"strings"
)

// ShellMarkdown builds a markdown section with a title and a bash block
// holding the command followed by its space-separated arguments. The
// separator after command is always present.
func ShellMarkdown(title, command string, args ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n", title)
	b.WriteString("### Copy-Paste Command\n")
	b.WriteString("```bash\n")
	fmt.Fprintf(&b, "%s %s\n", command, strings.Join(args, " "))
	b.WriteString("```\n")
	return b.String()
}

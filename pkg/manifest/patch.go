package manifest

import (
	"strings"
)

// PatchLine applies every rule, in order, to a single line and reports
// whether the line changed. A trailing "\n" or "\r\n" is kept as is.
func PatchLine(line string, rules Rules) (string, bool) {
	return patchLine(line, rules.compile())
}

func patchLine(line string, cs []compiled) (string, bool) {
	body, eol := splitTerminator(line)
	patched := body
	for _, c := range cs {
		// The match runs to the end of the line, so there is at most one.
		if loc := c.re.FindStringIndex(patched); loc != nil {
			patched = patched[:loc[0]] + c.rule.Quoted() + patched[loc[1]:]
		}
	}
	return patched + eol, patched != body
}

func splitTerminator(line string) (string, string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	default:
		return line, ""
	}
}

// PatchLines transforms each line independently, preserving order, and
// returns the number of lines that changed.
func PatchLines(lines []string, rules Rules) ([]string, int) {
	cs := rules.compile()
	out := make([]string, len(lines))
	changed := 0
	for i, line := range lines {
		patched, ok := patchLine(line, cs)
		if ok {
			changed++
		}
		out[i] = patched
	}
	return out, changed
}

// PatchContent patches a whole manifest. Lines are split after "\n" so each
// keeps its own terminator and a missing final newline stays missing.
func PatchContent(data []byte, rules Rules) ([]byte, int) {
	lines := strings.SplitAfter(string(data), "\n")
	patched, changed := PatchLines(lines, rules)
	return []byte(strings.Join(patched, "")), changed
}

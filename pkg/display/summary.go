package display

import (
	"fmt"
	"io"
)

// Summary is the closing overview of a command: one row per step
type Summary struct {
	Command string       `json:"command"`
	DryRun  bool         `json:"dry_run"`
	Rows    []SummaryRow `json:"steps"`
}

// SummaryRow is one step outcome
type SummaryRow struct {
	Step    string `json:"step"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// maxMessageLen keeps rows on one line for typical terminals
const maxMessageLen = 60

// SummaryRenderer writes summaries as aligned plain text
type SummaryRenderer struct {
	writer io.Writer
}

// NewSummaryRenderer creates a summary renderer writing to w
func NewSummaryRenderer(w io.Writer) *SummaryRenderer {
	return &SummaryRenderer{writer: w}
}

// Render writes the summary
func (r *SummaryRenderer) Render(s Summary) error {
	header := s.Command
	if s.DryRun {
		header += " (dry run)"
	}
	if _, err := fmt.Fprintln(r.writer, header); err != nil {
		return err
	}

	if len(s.Rows) == 0 {
		_, err := fmt.Fprintln(r.writer, "    (nothing to do)")
		return err
	}

	for _, row := range s.Rows {
		// step : status : message
		if _, err := fmt.Fprintf(r.writer, "    %-8s : %-7s : %s\n",
			row.Step,
			row.Status,
			truncateMiddle(row.Message, maxMessageLen)); err != nil {
			return err
		}
	}
	return nil
}

// truncateMiddle shortens s to maxLen characters keeping both ends, so
// long paths still show their final component
func truncateMiddle(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 10 {
		return s[:maxLen]
	}

	// 3 chars for "..."
	available := maxLen - 3
	start := available / 2
	end := available - start

	return s[:start] + "..." + s[len(s)-end:]
}

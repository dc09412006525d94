package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/schema"
	"github.com/olekukonko/tablewriter"
)

// maxListedMessages bounds the errors and warnings printed under the summary table.
const maxListedMessages = 20

// WriteImportSummary outputs an import run summary.
// CSV carries one record per input row.
func WriteImportSummary(s schema.ImportSummary, cfg *contract.Config) error {
	return formatWriters{
		json:   s,
		header: []string{"line", "date", "outcome", "name", "message"},
		rows: func(w *csv.Writer) error {
			for _, r := range s.Rows {
				if err := w.Write([]string{strconv.Itoa(r.Line), r.Date, string(r.Outcome), r.Name, r.Message}); err != nil {
					return err
				}
			}
			return nil
		},
		table: func(w io.Writer) error {
			return writeImportSummaryText(w, s, cfg)
		},
	}.write(cfg, "import summaries")
}

func writeImportSummaryText(w io.Writer, s schema.ImportSummary, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "%s %s for %s\n", heading(cfg, "📥", "Imported"), s.Kind, s.School); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Processed", "Created", "Skipped", "Failed", "Buckets", "IDs"})
	err := table.Bulk([][]string{{
		strconv.Itoa(s.Processed),
		strconv.Itoa(s.Created),
		strconv.Itoa(s.Skipped),
		strconv.Itoa(s.Failed),
		strconv.Itoa(len(s.DateBuckets)),
		strconv.Itoa(len(s.GeneratedIDs)),
	}})
	if err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	width := GetMaxTableTextWidth(cfg, 0)
	if err := writeMessages(w, heading(cfg, "❌", "Errors"), s.Errors, width); err != nil {
		return err
	}
	if err := writeMessages(w, heading(cfg, "⚠️", "Warnings"), s.Warnings, width); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Import completed in %v (run %s)\n", s.Duration, s.RunID)
	return err
}

// writeMessages lists up to maxListedMessages lines under a title.
func writeMessages(w io.Writer, title string, messages []string, width int) error {
	if len(messages) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s (%d)\n", title, len(messages)); err != nil {
		return err
	}
	for i, m := range messages {
		if i == maxListedMessages {
			_, err := fmt.Fprintf(w, "  ... and %d more\n", len(messages)-maxListedMessages)
			return err
		}
		if _, err := fmt.Fprintf(w, "  - %s\n", contract.TruncateText(m, width)); err != nil {
			return err
		}
	}
	return nil
}

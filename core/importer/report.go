package importer

import (
	"strconv"
	"time"

	"github.com/huangsam/elimu/schema"
)

// Report headers of an import run.
var (
	ErrorReportHeader   = []string{"line", "name", "error", "timestamp", "type"}
	SuccessReportHeader = []string{"line", "name", "reference", "date", "status"}
)

// ErrorReport lists the failed rows of a run.
func ErrorReport(s schema.ImportSummary) [][]string {
	stamp := s.StartedAt.Format(time.RFC3339)
	var out [][]string
	for _, r := range s.Rows {
		if r.Outcome != schema.FailedOutcome {
			continue
		}
		out = append(out, []string{strconv.Itoa(r.Line), r.Name, r.Message, stamp, "error"})
	}
	return out
}

// SuccessReport lists the rows a run created. For students the reference
// is the assigned ELIMUID.
func SuccessReport(s schema.ImportSummary) [][]string {
	var out [][]string
	for _, r := range s.Rows {
		if r.Outcome != schema.CreatedOutcome {
			continue
		}
		out = append(out, []string{strconv.Itoa(r.Line), r.Name, r.Message, r.Date, "Created"})
	}
	return out
}

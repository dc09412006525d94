package roster

import (
	"fmt"
	"io"
	"slices"

	"github.com/huangsam/elimu/schema"
)

// PrintStatus prints roster status information.
func PrintStatus(w io.Writer, status schema.RosterStatus) {
	_, _ = fmt.Fprintf(w, "Roster Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	if status.Version > 0 {
		_, _ = fmt.Fprintf(w, "Schema Version: %d\n", status.Version)
	}
	_, _ = fmt.Fprintf(w, "Total Import Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}

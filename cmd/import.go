package cmd

import (
	"github.com/huangsam/elimu/core"
	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// importCmd groups the spreadsheet imports.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import student, marks or attendance spreadsheets",
	Long: `Import CSV exports of school spreadsheets into the roster.

Headers are matched loosely, so "Full Name", "Student Name" and "name" all work.
Each row is validated on its own: bad rows are reported and skipped while the
rest of the upload is applied.

Subcommands:
  students   - Enroll students and link their parents
  marks      - Record assessment scores
  attendance - Record daily attendance

Examples:
  # Enroll students and keep a report of the rows that failed
  elimu import students students.csv --school NAIROBI --error-report errors.csv

  # Record marks with Prometheus metrics for a textfile collector
  elimu import marks term1.csv --school NAIROBI --metrics-file /var/lib/node_exporter/elimu.prom`,
}

// newImportCmd builds the import subcommand for kind.
func newImportCmd(kind schema.ImportKind, short string) *cobra.Command {
	return &cobra.Command{
		Use:     string(kind) + " <file.csv>",
		Short:   short,
		Args:    cobra.ExactArgs(1),
		PreRunE: rosterSetupWrapper,
		Run: func(_ *cobra.Command, args []string) {
			opts := core.ImportOptions{
				Kind:          kind,
				Path:          args[0],
				ErrorReport:   viper.GetString("error-report"),
				SuccessReport: viper.GetString("success-report"),
			}
			ctx := rootCtx
			if cfg.Output != schema.TextOut {
				ctx = core.WithSuppressHeader(ctx)
			}
			if _, err := core.ExecuteImport(ctx, cfg, store, opts); err != nil {
				contract.LogFatal("Cannot import "+string(kind), err)
			}
		},
	}
}

var (
	importStudentsCmd   = newImportCmd(schema.StudentImport, "Enroll students from a CSV file")
	importMarksCmd      = newImportCmd(schema.MarksImport, "Record assessment scores from a CSV file")
	importAttendanceCmd = newImportCmd(schema.AttendanceImport, "Record daily attendance from a CSV file")
)

package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/internal/roster"
	"github.com/huangsam/elimu/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rosterCmd focused on roster database management.
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage the roster database of students and records",
	Long: `Manage the roster that imports write to and reports read from.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (in-memory)

Subcommands:
  status  - Show table sizes and the latest import run
  export  - Export academic records and import runs to Parquet
  clear   - Remove all roster data
  migrate - Run database schema migrations

Examples:
  # Check roster status
  elimu roster status

  # Export for analysis in pandas/DuckDB
  elimu roster export --output-file elimu-data`,
}

// rosterStatusCmd shows roster status.
var rosterStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display roster statistics and connection details",
	PreRunE: rosterSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := store.Status(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get roster status", err)
		}
		roster.PrintStatus(os.Stdout, status)
	},
}

// rosterExportCmd exports roster data to Parquet files.
var rosterExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export academic records and import runs to Parquet",
	Long: `Export the stored academic records and import runs to Parquet for BI tools.

Requires: --output-file parameter. Two files are written next to it:
<output-file>.academic_records.parquet and <output-file>.import_runs.parquet

Examples:
  elimu roster export --output-file elimu-data
  duckdb -c "SELECT subject, avg(score) FROM read_parquet('elimu-data.academic_records.parquet') GROUP BY 1"`,
	PreRunE: rosterSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := roster.ExportParquet(rootCtx, store, cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export roster data", err)
		}
	},
}

// rosterClearCmd clears the roster.
var rosterClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all students, records and import runs",
	Long: `Delete every row of every roster table. The schema itself is kept.

WARNING: This action cannot be undone. Consider exporting data first.`,
	PreRunE: rosterSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.Clear(rootCtx); err != nil {
			contract.LogFatal("Failed to clear roster", err)
		}
		fmt.Println("Roster cleared successfully.")
	},
}

// rosterMigrateCmd runs database migrations for the roster.
//
// It skips openRoster, which would migrate to the latest version on its own.
var rosterMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the roster.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  elimu roster migrate

  # Rollback to previous version
  elimu roster migrate --target-version 0`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		connStr := cfg.RosterDBConnect
		if cfg.RosterBackend == schema.SQLiteBackend && connStr == "" {
			connStr = roster.GetDBFilePath()
		}
		result, err := roster.Migrate(cfg.RosterBackend, connStr, viper.GetInt("target-version"))
		if err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		if !result.Changed {
			fmt.Printf("Roster schema already at version %d.\n", result.To)
			return
		}
		fmt.Printf("Roster schema migrated from version %d to %d.\n", result.From, result.To)
	},
}

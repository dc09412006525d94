// Package cmd defines the command-line interface for elimu.
package cmd

import (
	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(meanCmd)
	rootCmd.AddCommand(gpaCmd)
	rootCmd.AddCommand(ucasCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the import subcommands to the parent import command
	importCmd.AddCommand(importStudentsCmd)
	importCmd.AddCommand(importMarksCmd)
	importCmd.AddCommand(importAttendanceCmd)

	// Add the roster subcommands to the parent roster command
	rosterCmd.AddCommand(rosterStatusCmd)
	rosterCmd.AddCommand(rosterExportCmd)
	rosterCmd.AddCommand(rosterClearCmd)
	rosterCmd.AddCommand(rosterMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("curriculum", "c", string(schema.System844), "Curriculum: 844 or cbc or british or american")
	rootCmd.PersistentFlags().String("level", "", "Class level, e.g. 'Form 4', 'Grade 6', 'Year 13', 'Grade 11'")
	rootCmd.PersistentFlags().String("subject", "", "Subject name attached to graded scores")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent import workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("as-of", "", "Date treated as today in YYYY-MM-DD (default: now)")
	rootCmd.PersistentFlags().String("roster-backend", string(schema.SQLiteBackend), "Roster backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("roster-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in progress headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of predictCmd to Viper
	predictCmd.Flags().String("student", "", "ELIMUID of a stored student to predict from")
	if err := viper.BindPFlags(predictCmd.Flags()); err != nil {
		contract.LogFatal("Error binding predict flags", err)
	}

	// Bind all persistent flags of importCmd to Viper
	importCmd.PersistentFlags().String("school", contract.DefaultSchoolCode, "School code the upload belongs to")
	importCmd.PersistentFlags().String("recorded-by", "", "Staff member recorded on marks and attendance")
	importCmd.PersistentFlags().String("id-prefix", contract.DefaultIDPrefix, "Prefix of generated ELIMUIDs")
	importCmd.PersistentFlags().Int("id-retries", contract.DefaultIDRetries, "Attempts to find a free ELIMUID before giving up")
	importCmd.PersistentFlags().String("metrics-file", "", "Write import metrics in Prometheus text format to this path")
	importCmd.PersistentFlags().String("error-report", "", "Write failed and warned rows to this CSV path")
	importCmd.PersistentFlags().String("success-report", "", "Write applied rows to this CSV path")
	if err := viper.BindPFlags(importCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding import flags", err)
	}

	// Bind all flags of rosterMigrateCmd to Viper
	rosterMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(rosterMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding roster migrate flags", err)
	}
}

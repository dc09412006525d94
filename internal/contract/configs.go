package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/elimu/schema"
)

// Default values for configuration.
const (
	DefaultPrecision  = 1
	DefaultIDRetries  = 100
	DefaultIDPrefix   = "STU"
	DefaultSchoolCode = "DEFAULT"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateFormat is the layout accepted by date flags such as --as-of.
const DateFormat = schema.DateLayout

// Config holds the runtime configuration for grading and imports.
// This struct remains the "final, validated" config.
type Config struct {
	Curriculum schema.CurriculumCode
	Level      string
	Subject    string

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	Workers    int

	School     string
	RecordedBy string
	IDPrefix   string
	IDRetries  int

	// AsOf is the "today" used for undated rows and report cards. Zero means now.
	AsOf time.Time

	RosterBackend   schema.DatabaseBackend
	RosterDBConnect string // Please use env var as this is plaintext

	MetricsFile string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Curriculum      string `mapstructure:"curriculum"`
	Level           string `mapstructure:"level"`
	Subject         string `mapstructure:"subject"`
	Precision       int    `mapstructure:"precision"`
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Width           int    `mapstructure:"width"`
	Workers         int    `mapstructure:"workers"`
	RosterBackend   string `mapstructure:"roster-backend"`
	RosterDBConnect string `mapstructure:"roster-db-connect"`
	Emoji           string `mapstructure:"emoji"`
	Color           string `mapstructure:"color"`

	// --- Fields from importCmd.PersistentFlags() and the config file ---
	School      string `mapstructure:"school"`
	RecordedBy  string `mapstructure:"recorded-by"`
	IDPrefix    string `mapstructure:"id-prefix"`
	IDRetries   int    `mapstructure:"id-retries"`
	AsOf        string `mapstructure:"as-of"`
	MetricsFile string `mapstructure:"metrics-file"`
}

// Now returns the configured "today", falling back to the wall clock.
func (c *Config) Now() time.Time {
	if c.AsOf.IsZero() {
		return time.Now()
	}
	return c.AsOf
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateImportInputs(cfg, input); err != nil {
		return err
	}
	return validateBackendConfig(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("roster-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("roster-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates grading and output fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Level = strings.TrimSpace(input.Level)
	cfg.Subject = strings.TrimSpace(input.Subject)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.MetricsFile = input.MetricsFile

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Curriculum = schema.CurriculumCode(strings.ToLower(strings.TrimSpace(input.Curriculum)))
	if _, ok := schema.ValidCurricula[cfg.Curriculum]; !ok {
		return fmt.Errorf("invalid curriculum '%s'. must be 844, cbc, british, american", input.Curriculum)
	}

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return nil
}

// validateImportInputs processes the school, identifier and date settings.
func validateImportInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.School = strings.TrimSpace(input.School)
	if cfg.School == "" {
		cfg.School = DefaultSchoolCode
	}
	cfg.RecordedBy = strings.TrimSpace(input.RecordedBy)

	cfg.IDPrefix = strings.ToUpper(strings.TrimSpace(input.IDPrefix))
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = DefaultIDPrefix
	}
	if strings.ContainsAny(cfg.IDPrefix, " -") {
		return fmt.Errorf("id-prefix must not contain spaces or dashes (received %q)", input.IDPrefix)
	}

	if input.IDRetries < 1 {
		return fmt.Errorf("id-retries must be at least 1 (received %d)", input.IDRetries)
	}
	cfg.IDRetries = input.IDRetries

	if input.AsOf != "" {
		t, err := time.Parse(DateFormat, input.AsOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of date '%s'. Expected YYYY-MM-DD: %w", input.AsOf, err)
		}
		cfg.AsOf = t
	}
	return nil
}

// validateBackendConfig validates the roster backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.RosterBackend = schema.DatabaseBackend(strings.ToLower(input.RosterBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.RosterBackend]; !ok {
		return fmt.Errorf("invalid roster backend '%s'. must be sqlite, mysql, postgresql, none", input.RosterBackend)
	}
	cfg.RosterDBConnect = input.RosterDBConnect
	return ValidateDatabaseConnectionString(cfg.RosterBackend, cfg.RosterDBConnect)
}

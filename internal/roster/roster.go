// Package roster stores students, guardians and their records for imports.
package roster

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/schema"
	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Errors returned by roster stores.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Table names of the roster schema.
const (
	studentsTable        = "students"
	parentsTable         = "parents"
	studentParentsTable  = "student_parents"
	academicRecordsTable = "academic_records"
	attendanceTable      = "attendance"
	importRunsTable      = "import_runs"
)

var allTables = []string{
	studentsTable, parentsTable, studentParentsTable,
	academicRecordsTable, attendanceTable, importRunsTable,
}

// Store is a roster with the administrative operations behind the roster commands.
type Store interface {
	contract.Roster

	// Status returns row counts and the latest import run.
	Status(ctx context.Context) (schema.RosterStatus, error)

	// AcademicRecords returns every stored assessment joined with its student.
	AcademicRecords(ctx context.Context) ([]schema.AcademicRecordRow, error)

	// ImportRuns returns every recorded import run in start order.
	ImportRuns(ctx context.Context) ([]schema.ImportRunRecord, error)

	// Clear deletes every row of every roster table.
	Clear(ctx context.Context) error
}

var (
	_ Store = &Memory{} // Compile-time check
	_ Store = &SQL{}    // Compile-time check
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Open returns the store for backend. The none backend keeps the roster in memory.
func Open(backend schema.DatabaseBackend, connStr string) (Store, error) {
	if backend == schema.NoneBackend {
		return NewMemory(), nil
	}
	return NewSQL(backend, connStr)
}

// GetDBFilePath returns the default SQLite roster location.
func GetDBFilePath() string {
	return contract.GetRosterDBFilePath()
}

// timestamp formats instants for the text timestamp columns.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseDay(s string) (time.Time, error) {
	t, err := time.Parse(schema.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return t, nil
}

// ensureDir creates the parent directory of a SQLite file path.
func ensureDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

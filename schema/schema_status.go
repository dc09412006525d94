package schema

import "time"

// RosterStatus represents the status of the roster store.
type RosterStatus struct {
	Backend     string           `json:"backend"`
	Connected   bool             `json:"connected"`
	Version     uint             `json:"version"`
	TotalRuns   int              `json:"total_runs"`
	LastRunTime time.Time        `json:"last_run_time"`
	TableSizes  map[string]int64 `json:"table_sizes"`
}

// ImportRunRecord represents a row from the import_runs table.
type ImportRunRecord struct {
	RunID     string     `db:"run_id"`
	Kind      string     `db:"kind"`
	School    string     `db:"school"`
	StartTime time.Time  `db:"start_time"`
	EndTime   *time.Time `db:"end_time"`
	Processed int        `db:"processed"`
	Created   int        `db:"created"`
	Skipped   int        `db:"skipped"`
	Failed    int        `db:"failed"`
}

// AcademicRecordRow represents a row from the academic_records table joined with its student.
type AcademicRecordRow struct {
	StudentID      string    `db:"student_id"`
	ELIMUID        string    `db:"elimuid"`
	StudentName    string    `db:"student_name"`
	School         string    `db:"school"`
	Subject        string    `db:"subject"`
	AssessmentType string    `db:"assessment_type"`
	Score          float64   `db:"score"`
	Term           string    `db:"term"`
	Year           int       `db:"year"`
	AssessedOn     time.Time `db:"assessed_on"`
}

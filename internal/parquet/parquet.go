// Package parquet provides data structures and functions for exporting elimu
// grades and roster data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/elimu/schema"
	"github.com/parquet-go/parquet-go"
)

// GradeRow is one graded score.
type GradeRow struct {
	System  string  `parquet:"system,snappy"`
	Subject *string `parquet:"subject,optional,snappy"`
	Level   *string `parquet:"level,optional,snappy"`
	Score   float64 `parquet:"score,snappy"`
	Grade   string  `parquet:"grade,snappy"`
	Points  float64 `parquet:"points,snappy"`
	Remark  string  `parquet:"remark,snappy"`
	BandMin float64 `parquet:"band_min,snappy"`
	BandMax float64 `parquet:"band_max,snappy"`

	// UCASPoints is only set for A-Level grades.
	UCASPoints *int32 `parquet:"ucas_points,optional,snappy"`

	// WeightedGPA is only set for American grades.
	WeightedGPA *float64 `parquet:"weighted_gpa,optional,snappy"`
}

// AcademicRecord represents a stored assessment joined with its student.
// This struct maps to the academic_records roster table.
type AcademicRecord struct {
	StudentID      string    `parquet:"student_id,snappy"`
	ELIMUID        string    `parquet:"elimuid,snappy"`
	StudentName    string    `parquet:"student_name,snappy"`
	School         string    `parquet:"school,snappy"`
	Subject        string    `parquet:"subject,snappy"`
	AssessmentType string    `parquet:"assessment_type,snappy"`
	Score          float64   `parquet:"score,snappy"`
	Term           string    `parquet:"term,snappy"`
	Year           int32     `parquet:"year,snappy"`
	AssessedOn     time.Time `parquet:"assessed_on,snappy"`
}

// ImportRun represents a single import run with its counts.
// This struct maps to the import_runs roster table.
type ImportRun struct {
	RunID     string     `parquet:"run_id,snappy"`
	Kind      string     `parquet:"kind,snappy"`
	School    string     `parquet:"school,snappy"`
	StartTime time.Time  `parquet:"start_time,snappy"`
	EndTime   *time.Time `parquet:"end_time,optional,snappy"` // nil while running
	Processed int32      `parquet:"processed,snappy"`
	Created   int32      `parquet:"created,snappy"`
	Skipped   int32      `parquet:"skipped,snappy"`
	Failed    int32      `parquet:"failed,snappy"`
}

// writeFile writes rows to a new Parquet file with a schema inferred from T.
func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteGradesParquet writes graded scores to a Parquet file.
func WriteGradesParquet(data []GradeRow, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteAcademicRecordsParquet writes roster assessments to a Parquet file.
func WriteAcademicRecordsParquet(data []AcademicRecord, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteImportRunsParquet writes import runs to a Parquet file.
func WriteImportRunsParquet(data []ImportRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// ConvertGradeResults converts schema.GradeResult to GradeRow for Parquet export.
func ConvertGradeResults(results []schema.GradeResult) []GradeRow {
	rows := make([]GradeRow, len(results))
	for i, r := range results {
		row := GradeRow{
			System:  string(r.System),
			Subject: optionalString(r.Subject),
			Level:   optionalString(r.Level),
			Score:   r.Score,
			Grade:   r.Grade,
			Points:  r.Points,
			Remark:  r.Remark,
			BandMin: r.BandMin,
			BandMax: r.BandMax,
		}
		if r.Qualification != "" {
			ucas := int32(r.UCASPoints)
			row.UCASPoints = &ucas
		}
		if r.System == schema.AmericanSystem {
			weighted := r.WeightedGPA
			row.WeightedGPA = &weighted
		}
		rows[i] = row
	}
	return rows
}

// ConvertAcademicRecordRows converts schema.AcademicRecordRow to AcademicRecord for Parquet export.
func ConvertAcademicRecordRows(records []schema.AcademicRecordRow) []AcademicRecord {
	result := make([]AcademicRecord, len(records))
	for i, r := range records {
		result[i] = AcademicRecord{
			StudentID:      r.StudentID,
			ELIMUID:        r.ELIMUID,
			StudentName:    r.StudentName,
			School:         r.School,
			Subject:        r.Subject,
			AssessmentType: r.AssessmentType,
			Score:          r.Score,
			Term:           r.Term,
			Year:           int32(r.Year),
			AssessedOn:     r.AssessedOn,
		}
	}
	return result
}

// ConvertImportRunRecords converts schema.ImportRunRecord to ImportRun for Parquet export.
func ConvertImportRunRecords(records []schema.ImportRunRecord) []ImportRun {
	result := make([]ImportRun, len(records))
	for i, r := range records {
		result[i] = ImportRun{
			RunID:     r.RunID,
			Kind:      r.Kind,
			School:    r.School,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Processed: int32(r.Processed),
			Created:   int32(r.Created),
			Skipped:   int32(r.Skipped),
			Failed:    int32(r.Failed),
		}
	}
	return result
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

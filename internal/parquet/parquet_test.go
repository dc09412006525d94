package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/elimu/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readAll reads every row of a Parquet file written for T.
func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"grade row", new(GradeRow), []string{"system", "subject", "score", "grade", "points", "ucas_points", "weighted_gpa"}},
		{"academic record", new(AcademicRecord), []string{"student_id", "elimuid", "subject", "score", "assessed_on"}},
		{"import run", new(ImportRun), []string{"run_id", "kind", "start_time", "end_time", "processed", "failed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			for _, col := range tt.columns {
				_, ok := s.Lookup(col)
				assert.True(t, ok, "column %s should exist", col)
			}
		})
	}
}

func TestWriteGradesParquet(t *testing.T) {
	results := []schema.GradeResult{
		{System: schema.System844, Subject: "Mathematics", Score: 82, Grade: "A", Points: 12, Remark: "Excellent", BandMin: 80, BandMax: 100},
		{System: schema.BritishSystem, Level: "Year 13", Score: 71, Grade: "A", Points: 7, Qualification: "A-Level", UCASPoints: 48},
		{System: schema.AmericanSystem, Score: 88, Grade: "B+", Points: 3.3, WeightedGPA: 4.3, IsAP: true},
	}
	path := filepath.Join(t.TempDir(), "grades.parquet")
	require.NoError(t, WriteGradesParquet(ConvertGradeResults(results), path))

	rows := readAll[GradeRow](t, path)
	require.Len(t, rows, 3)

	require.NotNil(t, rows[0].Subject)
	assert.Equal(t, "Mathematics", *rows[0].Subject)
	assert.Nil(t, rows[0].Level)
	assert.Nil(t, rows[0].UCASPoints)
	assert.Nil(t, rows[0].WeightedGPA)

	require.NotNil(t, rows[1].UCASPoints)
	assert.Equal(t, int32(48), *rows[1].UCASPoints)

	require.NotNil(t, rows[2].WeightedGPA)
	assert.InDelta(t, 4.3, *rows[2].WeightedGPA, 0.001)
}

func TestWriteAcademicRecordsParquet(t *testing.T) {
	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	records := []schema.AcademicRecordRow{
		{StudentID: "s1", ELIMUID: "STU-2024-1234", StudentName: "Amani Otieno", School: "DEFAULT", Subject: "Biology", AssessmentType: "exam", Score: 64, Term: "Term 1", Year: 2024, AssessedOn: day},
	}
	path := filepath.Join(t.TempDir(), "records.parquet")
	require.NoError(t, WriteAcademicRecordsParquet(ConvertAcademicRecordRows(records), path))

	rows := readAll[AcademicRecord](t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, "STU-2024-1234", rows[0].ELIMUID)
	assert.Equal(t, int32(2024), rows[0].Year)
	assert.True(t, day.Equal(rows[0].AssessedOn))
}

func TestWriteImportRunsParquet_Nullable(t *testing.T) {
	start := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Second)
	records := []schema.ImportRunRecord{
		{RunID: "r1", Kind: "marks", School: "DEFAULT", StartTime: start, EndTime: &end, Processed: 3, Created: 2, Skipped: 1},
		{RunID: "r2", Kind: "students", School: "DEFAULT", StartTime: start},
	}
	path := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, WriteImportRunsParquet(ConvertImportRunRecords(records), path))

	rows := readAll[ImportRun](t, path)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].EndTime)
	assert.WithinDuration(t, end, *rows[0].EndTime, time.Nanosecond)
	assert.Equal(t, int32(3), rows[0].Processed)
	assert.Nil(t, rows[1].EndTime)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteImportRunsParquet([]ImportRun{}, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "file should contain schema even if empty")
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteGradesParquet(nil, "/nonexistent/directory/output.parquet")
	require.Error(t, err)
}

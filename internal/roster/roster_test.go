package roster

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/elimu/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

func enrollment(elimuid, name string) schema.StudentEnrollmentRecord {
	return schema.StudentEnrollmentRecord{
		ELIMUID:        elimuid,
		Name:           name,
		Email:          "student@example.com",
		School:         "DEFAULT",
		ClassName:      "Form 2",
		Gender:         schema.Female,
		DateOfBirth:    time.Date(2008, time.June, 1, 0, 0, 0, 0, time.UTC),
		EnrollmentDate: testDay,
	}
}

func newSQLiteStore(t *testing.T) *SQL {
	t.Helper()
	store, err := NewSQL(schema.SQLiteBackend, filepath.Join(t.TempDir(), "roster.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// stores runs a test against every store that needs no server.
func stores(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemory()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, newSQLiteStore(t)) })
}

func TestStore_Students(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		created, err := s.CreateStudent(ctx, enrollment("STU-2024-1001", "Amani  Otieno"))
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "STU-2024-1001", created.ELIMUID)

		found, ok, err := s.FindStudentByELIMUID(ctx, "STU-2024-1001")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, created, found)

		_, ok, err = s.FindStudentByELIMUID(ctx, "STU-2024-9999")
		require.NoError(t, err)
		assert.False(t, ok)

		matches, err := s.FindStudentsByName(ctx, "DEFAULT", "amani otieno")
		require.NoError(t, err)
		assert.Len(t, matches, 1)

		matches, err = s.FindStudentsByName(ctx, "OTHER", "Amani Otieno")
		require.NoError(t, err)
		assert.Empty(t, matches)

		taken, err := s.ELIMUIDTaken(ctx, "STU-2024-1001")
		require.NoError(t, err)
		assert.True(t, taken)

		_, err = s.CreateStudent(ctx, enrollment("STU-2024-1001", "Someone Else"))
		assert.Error(t, err)
	})
}

func TestStore_Parents(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		student, err := s.CreateStudent(ctx, enrollment("STU-2024-1002", "Baraka Mwangi"))
		require.NoError(t, err)

		contact := schema.ParentContact{Name: "Grace Mwangi", Email: "grace@example.com", Relationship: "mother"}
		parent, err := s.CreateParent(ctx, "DEFAULT", "PAR-2024-2001", contact)
		require.NoError(t, err)

		found, ok, err := s.FindParentByEmail(ctx, "grace@example.com")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, parent, found)

		taken, err := s.ParentIDTaken(ctx, "PAR-2024-2001")
		require.NoError(t, err)
		assert.True(t, taken)

		require.NoError(t, s.LinkParent(ctx, student.ID, parent.ID, "mother"))
		require.NoError(t, s.LinkParent(ctx, student.ID, parent.ID, "mother"), "linking twice is a no-op")

		status, err := s.Status(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), status.TableSizes[studentParentsTable])
	})
}

func TestStore_RecordsAndHistory(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		student, err := s.CreateStudent(ctx, enrollment("STU-2024-1003", "Chebet Kiprono"))
		require.NoError(t, err)

		later := schema.AssessmentRecord{
			StudentID: student.ID, Subject: "Physics", Score: 71, AssessmentType: schema.ExamAssessment,
			AssessmentName: "Physics Assessment", Date: testDay.AddDate(0, 0, 7), Term: "Term 1", Year: 2024,
		}
		earlier := later
		earlier.Score = 64
		earlier.Date = testDay

		require.NoError(t, s.CreateAssessment(ctx, later))
		require.NoError(t, s.CreateAssessment(ctx, earlier))

		exists, err := s.AssessmentExists(ctx, earlier)
		require.NoError(t, err)
		assert.True(t, exists)

		other := earlier
		other.AssessmentType = schema.QuizAssessment
		exists, err = s.AssessmentExists(ctx, other)
		require.NoError(t, err)
		assert.False(t, exists)

		history, err := s.StudentHistory(ctx, student.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, 64.0, history[0].Score)
		assert.Equal(t, 71.0, history[1].Score)
		assert.True(t, testDay.Equal(history[0].Date))

		mark := schema.AttendanceRecord{StudentID: student.ID, Date: testDay, Status: schema.Late, TimeIn: "08:30", TimeOut: "15:30", Term: "Term 1"}
		require.NoError(t, s.CreateAttendance(ctx, mark))
		exists, err = s.AttendanceExists(ctx, student.ID, testDay)
		require.NoError(t, err)
		assert.True(t, exists)

		marks, err := s.StudentAttendance(ctx, student.ID)
		require.NoError(t, err)
		require.Len(t, marks, 1)
		assert.Equal(t, schema.Late, marks[0].Status)

		records, err := s.AcademicRecords(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Chebet Kiprono", records[0].StudentName)
	})
}

func TestStore_ClassMeans(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		amani, err := s.CreateStudent(ctx, enrollment("STU-2024-1101", "Amani Otieno"))
		require.NoError(t, err)
		baraka, err := s.CreateStudent(ctx, enrollment("STU-2024-1102", "Baraka Mwangi"))
		require.NoError(t, err)
		other := enrollment("STU-2024-1103", "Chebet Kiprono")
		other.ClassName = "Form 3"
		chebet, err := s.CreateStudent(ctx, other)
		require.NoError(t, err)
		_, err = s.CreateStudent(ctx, enrollment("STU-2024-1104", "Dalia Noor"))
		require.NoError(t, err)

		add := func(studentID, subject string, score float64) {
			require.NoError(t, s.CreateAssessment(ctx, schema.AssessmentRecord{
				StudentID: studentID, Subject: subject, Score: score,
				AssessmentType: schema.ExamAssessment, Date: testDay, Year: 2024,
			}))
		}
		add(amani.ID, "Mathematics", 80)
		add(amani.ID, "English", 60)
		add(baraka.ID, "Mathematics", 55)
		add(chebet.ID, "Mathematics", 90)

		means, err := s.ClassMeans(ctx, "DEFAULT", "Form 2")
		require.NoError(t, err)
		assert.ElementsMatch(t, []schema.StudentMean{
			{StudentID: amani.ID, Mean: 70},
			{StudentID: baraka.ID, Mean: 55},
		}, means, "students without assessments and other classes are left out")
	})
}

func TestStore_ImportRuns(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		start := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)

		runID, err := s.BeginImport(ctx, schema.MarksImport, "DEFAULT", start)
		require.NoError(t, err)
		require.NotEmpty(t, runID)

		summary := schema.ImportSummary{Processed: 3, Created: 1, Skipped: 1, Failed: 1}
		require.NoError(t, s.EndImport(ctx, runID, start.Add(time.Second), summary))

		err = s.EndImport(ctx, "missing", start, summary)
		assert.ErrorIs(t, err, ErrNotFound)

		runs, err := s.ImportRuns(ctx)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, 3, runs[0].Processed)
		require.NotNil(t, runs[0].EndTime)
		assert.True(t, start.Add(time.Second).Equal(*runs[0].EndTime))

		status, err := s.Status(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, status.TotalRuns)
		assert.True(t, start.Equal(status.LastRunTime))

		require.NoError(t, s.Clear(ctx))
		status, err = s.Status(ctx)
		require.NoError(t, err)
		assert.Zero(t, status.TotalRuns)
	})
}

func TestExportParquet(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	var out bytes.Buffer
	err := ExportParquet(ctx, s, filepath.Join(t.TempDir(), "roster"), &out)
	assert.ErrorContains(t, err, "no roster data")

	student, err := s.CreateStudent(ctx, enrollment("STU-2024-1004", "Daudi Njoroge"))
	require.NoError(t, err)
	require.NoError(t, s.CreateAssessment(ctx, schema.AssessmentRecord{StudentID: student.ID, Subject: "History", Score: 55, Date: testDay}))

	base := filepath.Join(t.TempDir(), "roster")
	require.NoError(t, ExportParquet(ctx, s, base, &out))
	assert.Contains(t, out.String(), "Exported 1 academic records")

	for _, suffix := range []string{".academic_records.parquet", ".import_runs.parquet"} {
		_, err := os.Stat(base + suffix)
		assert.NoError(t, err, suffix)
	}

	assert.Error(t, ExportParquet(ctx, s, "", &out))
}

func TestPrintStatus(t *testing.T) {
	var out bytes.Buffer
	PrintStatus(&out, schema.RosterStatus{
		Backend:    "sqlite",
		Connected:  true,
		Version:    7,
		TotalRuns:  2,
		TableSizes: map[string]int64{"students": 4, "attendance": 10},
	})
	text := out.String()
	assert.Contains(t, text, "Roster Backend: sqlite")
	assert.Contains(t, text, "Schema Version: 7")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("attendance")), bytes.Index(out.Bytes(), []byte("students")))
}

func TestOpen_NoneBackend(t *testing.T) {
	store, err := Open(schema.NoneBackend, "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, store)
	assert.NoError(t, store.Close())
}

func TestMigrate(t *testing.T) {
	_, err := Migrate(schema.NoneBackend, "", -1)
	assert.Error(t, err)

	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	result, err := Migrate(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, uint(7), result.To)

	result, err = Migrate(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)
	assert.False(t, result.Changed, "second run is a no-op")

	result, err = Migrate(schema.SQLiteBackend, dbPath, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), result.To)

	_, err = Migrate(schema.SQLiteBackend, dbPath, 0)
	require.NoError(t, err)

	_, err = Migrate(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)
}

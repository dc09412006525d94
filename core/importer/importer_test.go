package importer

import (
	"context"
	"errors"
	"iter"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/internal/roster"
	"github.com/huangsam/elimu/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSchool = "DEFAULT"

func newTestImporter(r contract.Roster, opts ...Option) *Importer {
	base := []Option{WithClock(fixedClock), WithWorkers(2)}
	return New(r, testSchool, append(base, opts...)...)
}

func rowsOf(rows ...schema.RawRow) iter.Seq[schema.RawRow] {
	return slices.Values(rows)
}

// rosters runs fn against the in-memory roster and a SQLite roster.
func rosters(t *testing.T, fn func(t *testing.T, store roster.Store)) {
	t.Run("memory", func(t *testing.T) { fn(t, roster.NewMemory()) })
	t.Run("sqlite", func(t *testing.T) {
		store, err := roster.NewSQL(schema.SQLiteBackend, filepath.Join(t.TempDir(), "roster.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		fn(t, store)
	})
}

func seedStudent(t *testing.T, store roster.Store, elimuid, name string) schema.Student {
	t.Helper()
	st, err := store.CreateStudent(context.Background(), schema.StudentEnrollmentRecord{
		ELIMUID: elimuid,
		Name:    name,
		Email:   DefaultEmail(name),
		School:  testSchool,
		Gender:  schema.OtherGender,
	})
	require.NoError(t, err)
	return st
}

func joined(lines []string) string {
	return strings.Join(lines, "\n")
}

func studentRows() iter.Seq[schema.RawRow] {
	return rowsOf(
		schema.RawRow{"Name": "Amani Otieno", "Class": "Form 2", "Gender": "F", "Parent Email": "grace@example.com", "Parent Name": "Grace Otieno", "Relationship": "Mother"},
		schema.RawRow{"First Name": "Baraka", "Last Name": "Mwangi", "Admission": "STU-2023-5555"},
		schema.RawRow{"Name": "", "Class": "Form 1"},
		schema.RawRow{"Name": "amani  otieno"},
		schema.RawRow{"Name": "Daudi Njoroge", "ID": "STU-2023-5555"},
		schema.RawRow{"Name": "Esther Wanjiru", "Parent Email": "not-an-email"},
	)
}

func TestRun_Students(t *testing.T) {
	rosters(t, func(t *testing.T, store roster.Store) {
		ctx := context.Background()
		im := newTestImporter(store)

		summary, err := im.Run(ctx, schema.StudentImport, studentRows())
		require.NoError(t, err)

		assert.NotEmpty(t, summary.RunID)
		assert.Equal(t, 6, summary.Processed)
		assert.Equal(t, 3, summary.Created)
		assert.Equal(t, 2, summary.Skipped)
		assert.Equal(t, 1, summary.Failed)
		assert.Equal(t, []string{"2024-03-10"}, summary.DateBuckets)
		assert.Equal(t, []string{"Row 3: missing student name"}, summary.Errors)
		require.Len(t, summary.GeneratedIDs, 2)
		for _, id := range summary.GeneratedIDs {
			assert.True(t, strings.HasPrefix(id, "STU-2024-"), id)
		}

		warnings := joined(summary.Warnings)
		assert.Contains(t, warnings, "Student amani  otieno already exists, skipping")
		assert.Contains(t, warnings, "ELIMUID STU-2023-5555 already assigned, skipping Daudi Njoroge")
		assert.Contains(t, warnings, "Failed to assign parent for Esther Wanjiru")

		lines := make([]int, len(summary.Rows))
		for i, r := range summary.Rows {
			lines[i] = r.Line
		}
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, lines, "students keep input order")

		baraka, found, err := store.FindStudentByELIMUID(ctx, "STU-2023-5555")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Baraka Mwangi", baraka.Name)

		amani, err := store.FindStudentsByName(ctx, testSchool, "Amani Otieno")
		require.NoError(t, err)
		require.Len(t, amani, 1)
		assert.Equal(t, "Form 2", amani[0].ClassName)

		parent, found, err := store.FindParentByEmail(ctx, "grace@example.com")
		require.NoError(t, err)
		require.True(t, found)
		assert.True(t, strings.HasPrefix(parent.ParentID, "PAR-2024-"))
		if mem, ok := store.(*roster.Memory); ok {
			assert.Equal(t, []schema.Parent{parent}, mem.ParentsOf(amani[0].ID))
		}

		again, err := newTestImporter(store).Run(ctx, schema.StudentImport, studentRows())
		require.NoError(t, err)
		assert.Zero(t, again.Created, "a second run creates nothing")
		assert.Equal(t, 5, again.Skipped)
		assert.Empty(t, again.GeneratedIDs)

		runs, err := store.ImportRuns(ctx)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		created := []int{runs[0].Created, runs[1].Created}
		assert.ElementsMatch(t, []int{3, 0}, created)
		for _, run := range runs {
			assert.NotNil(t, run.EndTime)
			assert.Equal(t, 6, run.Processed)
		}
	})
}

func TestRun_StudentsWithoutEmail(t *testing.T) {
	rosters(t, func(t *testing.T, store roster.Store) {
		ctx := context.Background()
		rows := rowsOf(
			schema.RawRow{"Name": "Otieno, Brian"},
			schema.RawRow{"Name": "Achieng Odhiambo", "Phone": "0712"},
			schema.RawRow{"Name": "Wanjiru (Mary) Kamau"},
		)

		summary, err := newTestImporter(store).Run(ctx, schema.StudentImport, rows)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.Created)
		assert.Zero(t, summary.Failed)
		assert.Empty(t, summary.Errors)

		brian, err := store.FindStudentsByName(ctx, testSchool, "Otieno, Brian")
		require.NoError(t, err)
		assert.Len(t, brian, 1)
	})
}

func TestRun_MarksAPFlag(t *testing.T) {
	rosters(t, func(t *testing.T, store roster.Store) {
		ctx := context.Background()
		st := seedStudent(t, store, "STU-2024-1001", "Amani Otieno")
		rows := rowsOf(
			schema.RawRow{"ID": "STU-2024-1001", "Subject": "Biology", "Score": "91", "Date": "2024-03-05", "AP": "yes"},
			schema.RawRow{"ID": "STU-2024-1001", "Subject": "History", "Score": "80", "Date": "2024-03-06", "Is AP": "no"},
			schema.RawRow{"ID": "STU-2024-1001", "Subject": "English", "Score": "70", "Date": "2024-03-07", "AP": "maybe"},
		)

		summary, err := newTestImporter(store).Run(ctx, schema.MarksImport, rows)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.Created)
		assert.Contains(t, joined(summary.Warnings), `unreadable AP flag "maybe"`)

		history, err := store.StudentHistory(ctx, st.ID)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.True(t, history[0].IsAP)
		assert.False(t, history[1].IsAP)
		assert.False(t, history[2].IsAP)
	})
}

func markRows() iter.Seq[schema.RawRow] {
	return rowsOf(
		schema.RawRow{"Name": "Amani Otieno", "Subject": "Math", "Marks": "45/50", "Date": "12/03/2024", "Type": "End term exam"},
		schema.RawRow{"ID": "STU-2024-1002", "Subject": "Eng", "Marks": "B", "Exam Date": "2024-03-05"},
		schema.RawRow{"Name": "Juma Ali", "Subject": "Bio", "Marks": "70", "Date": "2024-03-05"},
		schema.RawRow{"Name": "Zawadi", "Subject": "Bio", "Marks": "70", "Date": "2024-03-05"},
		schema.RawRow{"Name": "Amani Otieno", "Subject": "Math", "Marks": "abc"},
		schema.RawRow{"Name": "Amani Otieno", "Subject": "Mathematics", "Marks": "40/50", "Date": "2024-03-12", "Type": "exam"},
	)
}

func TestRun_Marks(t *testing.T) {
	rosters(t, func(t *testing.T, store roster.Store) {
		ctx := context.Background()
		amani := seedStudent(t, store, "STU-2024-1001", "Amani Otieno")
		baraka := seedStudent(t, store, "STU-2024-1002", "Baraka Mwangi")
		seedStudent(t, store, "STU-2024-1003", "Juma Ali")
		seedStudent(t, store, "STU-2024-1004", "Juma  Ali")

		summary, err := newTestImporter(store).Run(ctx, schema.MarksImport, markRows())
		require.NoError(t, err)

		assert.Equal(t, 6, summary.Processed)
		assert.Equal(t, 3, summary.Created)
		assert.Equal(t, 1, summary.Skipped)
		assert.Equal(t, 2, summary.Failed)
		assert.Equal(t, summary.Processed, summary.Created+summary.Skipped+summary.Failed)
		assert.Equal(t, []string{"2024-03-05", "2024-03-10", "2024-03-12"}, summary.DateBuckets)

		lines := make([]int, len(summary.Rows))
		for i, r := range summary.Rows {
			lines[i] = r.Line
		}
		assert.Equal(t, []int{2, 3, 4, 5, 1, 6}, lines, "buckets apply in date order")

		errs := joined(summary.Errors)
		assert.Contains(t, errs, "Row 3: ambiguous student name Juma Ali matches 2 students")
		assert.Contains(t, errs, "Row 4: student not found: Zawadi")

		warnings := joined(summary.Warnings)
		assert.Contains(t, warnings, "No valid date for Amani Otieno, using current date")
		assert.Contains(t, warnings, `unrecognized score "abc"`)
		assert.Contains(t, warnings, "Assessment already exists for Amani Otieno: Mathematics exam on 2024-03-12")

		history, err := store.StudentHistory(ctx, amani.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, 50.0, history[0].Score)
		assert.Equal(t, schema.TestAssessment, history[0].AssessmentType)
		assert.Equal(t, 90.0, history[1].Score)
		assert.Equal(t, "Mathematics", history[1].Subject)
		assert.Equal(t, schema.ExamAssessment, history[1].AssessmentType)
		assert.Equal(t, "import", history[1].RecordedBy)

		english, err := store.StudentHistory(ctx, baraka.ID)
		require.NoError(t, err)
		require.Len(t, english, 1)
		assert.Equal(t, 80.0, english[0].Score)
		assert.Equal(t, "English Assessment", english[0].AssessmentName)

		again, err := newTestImporter(store).Run(ctx, schema.MarksImport, markRows())
		require.NoError(t, err)
		assert.Zero(t, again.Created)
		assert.Equal(t, 4, again.Skipped)
		assert.Equal(t, 2, again.Failed)
	})
}

func TestRun_Attendance(t *testing.T) {
	rosters(t, func(t *testing.T, store roster.Store) {
		ctx := context.Background()
		amani := seedStudent(t, store, "STU-2024-1001", "Amani Otieno")
		seedStudent(t, store, "STU-2024-1002", "Baraka Mwangi")

		summary, err := newTestImporter(store).Run(ctx, schema.AttendanceImport, rowsOf(
			schema.RawRow{"Name": "Amani Otieno", "Date": "2024-03-05", "Status": "✅"},
			schema.RawRow{"Name": "Amani Otieno", "Date": "05/03/2024", "Status": "L"},
			schema.RawRow{"Name": "Baraka Mwangi", "Status": "A"},
		))
		require.NoError(t, err)

		assert.Equal(t, 3, summary.Processed)
		assert.Equal(t, 1, summary.Created)
		assert.Equal(t, 1, summary.Skipped)
		assert.Equal(t, 1, summary.Failed)
		assert.Equal(t, []string{"Row 3: invalid date for student Baraka Mwangi"}, summary.Errors)

		marks, err := store.StudentAttendance(ctx, amani.ID)
		require.NoError(t, err)
		require.Len(t, marks, 1)
		assert.Equal(t, schema.Present, marks[0].Status)
		assert.Equal(t, "08:00", marks[0].TimeIn)
		assert.Equal(t, "15:30", marks[0].TimeOut)
		assert.Equal(t, schema.TermForDate(marks[0].Date), marks[0].Term)
	})
}

func TestRun_UnknownKind(t *testing.T) {
	m := &roster.MockRoster{}
	_, err := newTestImporter(m).Run(context.Background(), "grades", rowsOf())
	assert.Error(t, err)
	m.AssertExpectations(t)
}

func TestRun_BeginImportFails(t *testing.T) {
	m := &roster.MockRoster{}
	m.On("BeginImport", mock.Anything, schema.MarksImport, testSchool, fixedClock()).Return("", errors.New("db down"))

	_, err := newTestImporter(m).Run(context.Background(), schema.MarksImport, rowsOf(schema.RawRow{"Name": "A"}))
	assert.ErrorContains(t, err, "db down")
	m.AssertExpectations(t)
	m.AssertNotCalled(t, "EndImport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_EndImportFails(t *testing.T) {
	m := &roster.MockRoster{}
	m.On("BeginImport", mock.Anything, schema.AttendanceImport, testSchool, fixedClock()).Return("run-1", nil)
	m.On("EndImport", mock.Anything, "run-1", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	summary, err := newTestImporter(m).Run(context.Background(), schema.AttendanceImport, rowsOf())
	assert.ErrorContains(t, err, "end import: disk full")
	assert.Equal(t, "run-1", summary.RunID)
	assert.Zero(t, summary.Processed)
	m.AssertExpectations(t)
}

func TestRun_Canceled(t *testing.T) {
	store := roster.NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := newTestImporter(store).Run(ctx, schema.StudentImport, studentRows())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, summary.Processed)

	runs, err := store.ImportRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.NotNil(t, runs[0].EndTime, "the run is closed even after cancellation")
}

func TestRun_IDSpaceExhausted(t *testing.T) {
	store := roster.NewMemory()
	seedStudent(t, store, "STU-2024-1000", "Someone Else")
	ids := NewIDGenerator(DefaultIDPrefix, 3, constRand(0), fixedClock)

	summary, err := newTestImporter(store, WithIDGenerator(ids)).Run(context.Background(), schema.StudentImport, rowsOf(
		schema.RawRow{"Name": "Amani Otieno"},
	))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, joined(summary.Errors), ErrIDSpaceExhausted.Error())
}

// countingObserver tallies import events.
type countingObserver struct {
	rows     map[schema.RowOutcome]int
	ids      int
	finished int
	elapsed  time.Duration
}

func (o *countingObserver) RowApplied(_ schema.ImportKind, outcome schema.RowOutcome) {
	o.rows[outcome]++
}

func (o *countingObserver) IDGenerated() { o.ids++ }

func (o *countingObserver) RunFinished(_ schema.ImportKind, elapsed time.Duration) {
	o.finished++
	o.elapsed = elapsed
}

func TestRun_Observer(t *testing.T) {
	obs := &countingObserver{rows: make(map[schema.RowOutcome]int)}
	summary, err := newTestImporter(roster.NewMemory(), WithObserver(obs)).Run(context.Background(), schema.StudentImport, studentRows())
	require.NoError(t, err)

	assert.Equal(t, summary.Created, obs.rows[schema.CreatedOutcome])
	assert.Equal(t, summary.Skipped, obs.rows[schema.SkippedOutcome])
	assert.Equal(t, summary.Failed, obs.rows[schema.FailedOutcome])
	assert.Equal(t, len(summary.GeneratedIDs), obs.ids)
	assert.Equal(t, 1, obs.finished)
	assert.Equal(t, summary.Duration, obs.elapsed)
}

func TestRun_CSV(t *testing.T) {
	store := roster.NewMemory()
	seedStudent(t, store, "STU-2024-1001", "Amani Otieno")

	src, err := NewCSVSource(strings.NewReader("Student Name,Subject,Score,Date\nAmani Otieno,Chem,85%,2024-03-05\n"))
	require.NoError(t, err)
	require.NoError(t, ValidateHeaders(schema.MarksImport, src.Headers()))

	summary, err := newTestImporter(store, WithRecordedBy("teacher@example.com")).Run(context.Background(), schema.MarksImport, src.Rows())
	require.NoError(t, err)
	require.NoError(t, src.Err())
	assert.Equal(t, 1, summary.Created)

	records, err := store.AcademicRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Chemistry", records[0].Subject)
	assert.Equal(t, 85.0, records[0].Score)
}

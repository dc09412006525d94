package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/elimu/schema"
	"github.com/jmoiron/sqlx"
)

// SQL is a roster backed by SQLite, MySQL or PostgreSQL. Dates are kept as
// YYYY-MM-DD text and instants as RFC 3339 text so every backend scans alike.
type SQL struct {
	db      *sqlx.DB
	backend schema.DatabaseBackend
	now     func() time.Time
}

// NewSQL migrates the roster schema to the latest version and connects.
// For SQLite, connStr is a file path and defaults to GetDBFilePath.
func NewSQL(backend schema.DatabaseBackend, connStr string) (*SQL, error) {
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = GetDBFilePath()
	}
	if _, err := Migrate(backend, connStr, -1); err != nil {
		return nil, fmt.Errorf("failed to migrate roster schema: %w", err)
	}
	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}
	return &SQL{
		db:      sqlx.NewDb(db, driverName(backend)),
		backend: backend,
		now:     time.Now,
	}, nil
}

func driverName(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "mysql"
	case schema.PostgreSQLBackend:
		return "pgx"
	default:
		return "sqlite"
	}
}

// openDB opens and pings a connection pool for backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		if connStr == "" {
			connStr = GetDBFilePath()
		}
		if err := ensureDir(connStr); err != nil {
			return nil, fmt.Errorf("failed to create directory for SQLite roster at %q: %w", connStr, err)
		}
	case schema.MySQLBackend, schema.PostgreSQLBackend:
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	db, err := sql.Open(driverName(backend), connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	return db, nil
}

const studentColumns = "id, elimuid, name, school, class_name"

// FindStudentByELIMUID implements contract.Roster.
func (s *SQL) FindStudentByELIMUID(ctx context.Context, elimuid string) (schema.Student, bool, error) {
	var st schema.Student
	query := s.db.Rebind("SELECT " + studentColumns + " FROM students WHERE elimuid = ?")
	err := s.db.GetContext(ctx, &st, query, elimuid)
	if errors.Is(err, sql.ErrNoRows) {
		return schema.Student{}, false, nil
	}
	if err != nil {
		return schema.Student{}, false, fmt.Errorf("failed to find student %s: %w", elimuid, err)
	}
	return st, true, nil
}

// FindStudentsByName implements contract.Roster.
func (s *SQL) FindStudentsByName(ctx context.Context, school, name string) ([]schema.Student, error) {
	var out []schema.Student
	query := s.db.Rebind("SELECT " + studentColumns + " FROM students WHERE school = ? AND name_key = ? ORDER BY created_at, id")
	if err := s.db.SelectContext(ctx, &out, query, school, schema.NameKey(name)); err != nil {
		return nil, fmt.Errorf("failed to find students named %s: %w", name, err)
	}
	return out, nil
}

// ELIMUIDTaken implements contract.Roster.
func (s *SQL) ELIMUIDTaken(ctx context.Context, elimuid string) (bool, error) {
	return s.exists(ctx, "SELECT COUNT(*) FROM students WHERE elimuid = ?", elimuid)
}

// studentInsert is the column set of a new students row.
type studentInsert struct {
	ID              string `db:"id"`
	ELIMUID         string `db:"elimuid"`
	Name            string `db:"name"`
	NameKey         string `db:"name_key"`
	Email           string `db:"email"`
	Phone           string `db:"phone"`
	School          string `db:"school"`
	ClassName       string `db:"class_name"`
	Stream          string `db:"stream"`
	AdmissionNumber string `db:"admission_number"`
	DateOfBirth     string `db:"date_of_birth"`
	Gender          string `db:"gender"`
	EnrollmentDate  string `db:"enrollment_date"`
	Address         string `db:"address"`
	City            string `db:"city"`
	CreatedAt       string `db:"created_at"`
}

// CreateStudent implements contract.Roster.
func (s *SQL) CreateStudent(ctx context.Context, rec schema.StudentEnrollmentRecord) (schema.Student, error) {
	row := studentInsert{
		ID:              uuid.NewString(),
		ELIMUID:         rec.ELIMUID,
		Name:            rec.Name,
		NameKey:         schema.NameKey(rec.Name),
		Email:           rec.Email,
		Phone:           rec.Phone,
		School:          rec.School,
		ClassName:       rec.ClassName,
		Stream:          rec.Stream,
		AdmissionNumber: rec.AdmissionNumber,
		DateOfBirth:     schema.DateKey(rec.DateOfBirth),
		Gender:          string(rec.Gender),
		EnrollmentDate:  schema.DateKey(rec.EnrollmentDate),
		Address:         rec.Address,
		City:            rec.City,
		CreatedAt:       timestamp(s.now()),
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO students (id, elimuid, name, name_key, email, phone, school, class_name, stream,
		                      admission_number, date_of_birth, gender, enrollment_date, address, city, created_at)
		VALUES (:id, :elimuid, :name, :name_key, :email, :phone, :school, :class_name, :stream,
		        :admission_number, :date_of_birth, :gender, :enrollment_date, :address, :city, :created_at)`, row)
	if err != nil {
		return schema.Student{}, fmt.Errorf("failed to insert student %s: %w", rec.Name, err)
	}
	return schema.Student{
		ID:        row.ID,
		ELIMUID:   row.ELIMUID,
		Name:      row.Name,
		School:    row.School,
		ClassName: row.ClassName,
	}, nil
}

// FindParentByEmail implements contract.Roster.
func (s *SQL) FindParentByEmail(ctx context.Context, email string) (schema.Parent, bool, error) {
	var p schema.Parent
	query := s.db.Rebind("SELECT id, parent_id, name, email, phone FROM parents WHERE email = ?")
	err := s.db.GetContext(ctx, &p, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return schema.Parent{}, false, nil
	}
	if err != nil {
		return schema.Parent{}, false, fmt.Errorf("failed to find parent %s: %w", email, err)
	}
	return p, true, nil
}

// ParentIDTaken implements contract.Roster.
func (s *SQL) ParentIDTaken(ctx context.Context, parentID string) (bool, error) {
	return s.exists(ctx, "SELECT COUNT(*) FROM parents WHERE parent_id = ?", parentID)
}

// CreateParent implements contract.Roster.
func (s *SQL) CreateParent(ctx context.Context, school, parentID string, contact schema.ParentContact) (schema.Parent, error) {
	p := schema.Parent{
		ID:       uuid.NewString(),
		ParentID: parentID,
		Name:     contact.Name,
		Email:    contact.Email,
		Phone:    contact.Phone,
	}
	query := s.db.Rebind("INSERT INTO parents (id, parent_id, name, email, phone, school, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if _, err := s.db.ExecContext(ctx, query, p.ID, p.ParentID, p.Name, p.Email, p.Phone, school, timestamp(s.now())); err != nil {
		return schema.Parent{}, fmt.Errorf("failed to insert parent %s: %w", contact.Email, err)
	}
	return p, nil
}

// LinkParent implements contract.Roster.
func (s *SQL) LinkParent(ctx context.Context, studentID, parentID, relationship string) error {
	linked, err := s.exists(ctx, "SELECT COUNT(*) FROM student_parents WHERE student_id = ? AND parent_id = ?", studentID, parentID)
	if err != nil || linked {
		return err
	}
	query := s.db.Rebind("INSERT INTO student_parents (student_id, parent_id, relationship) VALUES (?, ?, ?)")
	if _, err := s.db.ExecContext(ctx, query, studentID, parentID, relationship); err != nil {
		return fmt.Errorf("failed to link parent %s: %w", parentID, err)
	}
	return nil
}

// AssessmentExists implements contract.Roster.
func (s *SQL) AssessmentExists(ctx context.Context, rec schema.AssessmentRecord) (bool, error) {
	return s.exists(ctx,
		"SELECT COUNT(*) FROM academic_records WHERE student_id = ? AND subject = ? AND assessment_type = ? AND assessed_on = ?",
		rec.StudentID, rec.Subject, string(rec.AssessmentType), schema.DateKey(rec.Date))
}

// assessmentRow mirrors an academic_records row.
type assessmentRow struct {
	ID             string  `db:"id"`
	StudentID      string  `db:"student_id"`
	Subject        string  `db:"subject"`
	Score          float64 `db:"score"`
	AssessmentType string  `db:"assessment_type"`
	AssessmentName string  `db:"assessment_name"`
	Level          string  `db:"level"`
	Term           string  `db:"term"`
	Year           int     `db:"year"`
	AssessedOn     string  `db:"assessed_on"`
	IsAP           bool    `db:"is_ap"`
	RecordedBy     string  `db:"recorded_by"`
	CreatedAt      string  `db:"created_at"`
}

func (r assessmentRow) record() (schema.AssessmentRecord, error) {
	date, err := parseDay(r.AssessedOn)
	if err != nil {
		return schema.AssessmentRecord{}, err
	}
	return schema.AssessmentRecord{
		StudentID:      r.StudentID,
		Subject:        r.Subject,
		Score:          r.Score,
		AssessmentType: schema.AssessmentType(r.AssessmentType),
		AssessmentName: r.AssessmentName,
		Level:          r.Level,
		Date:           date,
		Term:           r.Term,
		Year:           r.Year,
		IsAP:           r.IsAP,
		RecordedBy:     r.RecordedBy,
	}, nil
}

// CreateAssessment implements contract.Roster.
func (s *SQL) CreateAssessment(ctx context.Context, rec schema.AssessmentRecord) error {
	row := assessmentRow{
		ID:             uuid.NewString(),
		StudentID:      rec.StudentID,
		Subject:        rec.Subject,
		Score:          rec.Score,
		AssessmentType: string(rec.AssessmentType),
		AssessmentName: rec.AssessmentName,
		Level:          rec.Level,
		Term:           rec.Term,
		Year:           rec.Year,
		AssessedOn:     schema.DateKey(rec.Date),
		IsAP:           rec.IsAP,
		RecordedBy:     rec.RecordedBy,
		CreatedAt:      timestamp(s.now()),
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO academic_records (id, student_id, subject, score, assessment_type, assessment_name,
		                              level, term, year, assessed_on, is_ap, recorded_by, created_at)
		VALUES (:id, :student_id, :subject, :score, :assessment_type, :assessment_name,
		        :level, :term, :year, :assessed_on, :is_ap, :recorded_by, :created_at)`, row)
	if err != nil {
		return fmt.Errorf("failed to insert assessment: %w", err)
	}
	return nil
}

// AttendanceExists implements contract.Roster.
func (s *SQL) AttendanceExists(ctx context.Context, studentID string, date time.Time) (bool, error) {
	return s.exists(ctx, "SELECT COUNT(*) FROM attendance WHERE student_id = ? AND attended_on = ?", studentID, schema.DateKey(date))
}

// attendanceRow mirrors an attendance row.
type attendanceRow struct {
	ID         string `db:"id"`
	StudentID  string `db:"student_id"`
	AttendedOn string `db:"attended_on"`
	Status     string `db:"status"`
	Reason     string `db:"reason"`
	TimeIn     string `db:"time_in"`
	TimeOut    string `db:"time_out"`
	Term       string `db:"term"`
	CreatedAt  string `db:"created_at"`
}

// CreateAttendance implements contract.Roster.
func (s *SQL) CreateAttendance(ctx context.Context, rec schema.AttendanceRecord) error {
	row := attendanceRow{
		ID:         uuid.NewString(),
		StudentID:  rec.StudentID,
		AttendedOn: schema.DateKey(rec.Date),
		Status:     string(rec.Status),
		Reason:     rec.Reason,
		TimeIn:     rec.TimeIn,
		TimeOut:    rec.TimeOut,
		Term:       rec.Term,
		CreatedAt:  timestamp(s.now()),
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO attendance (id, student_id, attended_on, status, reason, time_in, time_out, term, created_at)
		VALUES (:id, :student_id, :attended_on, :status, :reason, :time_in, :time_out, :term, :created_at)`, row)
	if err != nil {
		return fmt.Errorf("failed to insert attendance: %w", err)
	}
	return nil
}

// StudentHistory implements contract.Roster.
func (s *SQL) StudentHistory(ctx context.Context, studentID string) ([]schema.AssessmentRecord, error) {
	var rows []assessmentRow
	query := s.db.Rebind("SELECT * FROM academic_records WHERE student_id = ? ORDER BY assessed_on, created_at")
	if err := s.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("failed to query history of %s: %w", studentID, err)
	}
	out := make([]schema.AssessmentRecord, 0, len(rows))
	for _, r := range rows {
		rec, err := r.record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// ClassMeans implements contract.Roster.
func (s *SQL) ClassMeans(ctx context.Context, school, className string) ([]schema.StudentMean, error) {
	out := []schema.StudentMean{}
	query := s.db.Rebind(`SELECT r.student_id AS student_id, AVG(r.score) AS mean
		FROM academic_records r JOIN students st ON st.id = r.student_id
		WHERE st.school = ? AND st.class_name = ?
		GROUP BY r.student_id ORDER BY r.student_id`)
	if err := s.db.SelectContext(ctx, &out, query, school, className); err != nil {
		return nil, fmt.Errorf("failed to query class means of %s %s: %w", school, className, err)
	}
	return out, nil
}

// StudentAttendance implements contract.Roster.
func (s *SQL) StudentAttendance(ctx context.Context, studentID string) ([]schema.AttendanceRecord, error) {
	var rows []attendanceRow
	query := s.db.Rebind("SELECT * FROM attendance WHERE student_id = ? ORDER BY attended_on")
	if err := s.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("failed to query attendance of %s: %w", studentID, err)
	}
	out := make([]schema.AttendanceRecord, 0, len(rows))
	for _, r := range rows {
		date, err := parseDay(r.AttendedOn)
		if err != nil {
			return nil, err
		}
		out = append(out, schema.AttendanceRecord{
			StudentID: r.StudentID,
			Date:      date,
			Status:    schema.AttendanceStatus(r.Status),
			Reason:    r.Reason,
			TimeIn:    r.TimeIn,
			TimeOut:   r.TimeOut,
			Term:      r.Term,
		})
	}
	return out, nil
}

// BeginImport implements contract.Roster.
func (s *SQL) BeginImport(ctx context.Context, kind schema.ImportKind, school string, start time.Time) (string, error) {
	id := uuid.NewString()
	query := s.db.Rebind(`INSERT INTO import_runs (run_id, kind, school, start_time, processed, created, skipped, failed)
		VALUES (?, ?, ?, ?, 0, 0, 0, 0)`)
	if _, err := s.db.ExecContext(ctx, query, id, string(kind), school, timestamp(start)); err != nil {
		return "", fmt.Errorf("failed to insert import run: %w", err)
	}
	return id, nil
}

// EndImport implements contract.Roster.
func (s *SQL) EndImport(ctx context.Context, runID string, end time.Time, summary schema.ImportSummary) error {
	query := s.db.Rebind("UPDATE import_runs SET end_time = ?, processed = ?, created = ?, skipped = ?, failed = ? WHERE run_id = ?")
	res, err := s.db.ExecContext(ctx, query, timestamp(end), summary.Processed, summary.Created, summary.Skipped, summary.Failed, runID)
	if err != nil {
		return fmt.Errorf("failed to update import run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("import run %s: %w", runID, ErrNotFound)
	}
	return nil
}

// Status implements Store.
func (s *SQL) Status(ctx context.Context) (schema.RosterStatus, error) {
	status := schema.RosterStatus{
		Backend:    string(s.backend),
		Connected:  true,
		TableSizes: make(map[string]int64, len(allTables)),
	}
	for _, table := range allTables {
		var count int64
		if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+table); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalRuns = int(status.TableSizes[importRunsTable])

	if status.TotalRuns > 0 {
		var last string
		if err := s.db.GetContext(ctx, &last, "SELECT MAX(start_time) FROM import_runs"); err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		t, err := parseTimestamp(last)
		if err != nil {
			return status, err
		}
		status.LastRunTime = t
	}

	var version uint
	if err := s.db.GetContext(ctx, &version, "SELECT version FROM schema_migrations"); err == nil {
		status.Version = version
	}
	return status, nil
}

// AcademicRecords implements Store.
func (s *SQL) AcademicRecords(ctx context.Context) ([]schema.AcademicRecordRow, error) {
	var rows []struct {
		StudentID      string  `db:"student_id"`
		ELIMUID        string  `db:"elimuid"`
		StudentName    string  `db:"student_name"`
		School         string  `db:"school"`
		Subject        string  `db:"subject"`
		AssessmentType string  `db:"assessment_type"`
		Score          float64 `db:"score"`
		Term           string  `db:"term"`
		Year           int     `db:"year"`
		AssessedOn     string  `db:"assessed_on"`
	}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT r.student_id, s.elimuid, s.name AS student_name, s.school, r.subject,
		       r.assessment_type, r.score, r.term, r.year, r.assessed_on
		FROM academic_records r
		JOIN students s ON s.id = r.student_id
		ORDER BY r.assessed_on, s.elimuid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query academic records: %w", err)
	}
	out := make([]schema.AcademicRecordRow, 0, len(rows))
	for _, r := range rows {
		date, err := parseDay(r.AssessedOn)
		if err != nil {
			return nil, err
		}
		out = append(out, schema.AcademicRecordRow{
			StudentID:      r.StudentID,
			ELIMUID:        r.ELIMUID,
			StudentName:    r.StudentName,
			School:         r.School,
			Subject:        r.Subject,
			AssessmentType: r.AssessmentType,
			Score:          r.Score,
			Term:           r.Term,
			Year:           r.Year,
			AssessedOn:     date,
		})
	}
	return out, nil
}

// ImportRuns implements Store.
func (s *SQL) ImportRuns(ctx context.Context) ([]schema.ImportRunRecord, error) {
	var rows []struct {
		RunID     string         `db:"run_id"`
		Kind      string         `db:"kind"`
		School    string         `db:"school"`
		StartTime string         `db:"start_time"`
		EndTime   sql.NullString `db:"end_time"`
		Processed int            `db:"processed"`
		Created   int            `db:"created"`
		Skipped   int            `db:"skipped"`
		Failed    int            `db:"failed"`
	}
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM import_runs ORDER BY start_time, run_id"); err != nil {
		return nil, fmt.Errorf("failed to query import runs: %w", err)
	}
	out := make([]schema.ImportRunRecord, 0, len(rows))
	for _, r := range rows {
		start, err := parseTimestamp(r.StartTime)
		if err != nil {
			return nil, err
		}
		rec := schema.ImportRunRecord{
			RunID:     r.RunID,
			Kind:      r.Kind,
			School:    r.School,
			StartTime: start,
			Processed: r.Processed,
			Created:   r.Created,
			Skipped:   r.Skipped,
			Failed:    r.Failed,
		}
		if r.EndTime.Valid {
			end, err := parseTimestamp(r.EndTime.String)
			if err != nil {
				return nil, err
			}
			rec.EndTime = &end
		}
		out = append(out, rec)
	}
	return out, nil
}

// Clear implements Store.
func (s *SQL) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, table := range allTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Close implements contract.Roster.
func (s *SQL) Close() error {
	return s.db.Close()
}

// exists runs a COUNT(*) query and reports whether it is positive.
func (s *SQL) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, s.db.Rebind(query), args...); err != nil {
		return false, fmt.Errorf("failed to run existence check: %w", err)
	}
	return n > 0, nil
}

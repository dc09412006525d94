package roster

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/elimu/schema"
)

type memoryParentLink struct {
	studentID    string
	parentID     string
	relationship string
}

// Memory is a roster held in process memory. It backs the none backend and tests.
type Memory struct {
	mu sync.RWMutex

	students   []schema.Student
	parents    []schema.Parent
	links      []memoryParentLink
	records    []schema.AssessmentRecord
	attendance []schema.AttendanceRecord
	runs       []schema.ImportRunRecord
}

// NewMemory creates an empty in-memory roster.
func NewMemory() *Memory {
	return &Memory{}
}

// FindStudentByELIMUID implements contract.Roster.
func (m *Memory) FindStudentByELIMUID(_ context.Context, elimuid string) (schema.Student, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.students {
		if s.ELIMUID == elimuid {
			return s, true, nil
		}
	}
	return schema.Student{}, false, nil
}

// FindStudentsByName implements contract.Roster.
func (m *Memory) FindStudentsByName(_ context.Context, school, name string) ([]schema.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	key := schema.NameKey(name)
	var out []schema.Student
	for _, s := range m.students {
		if s.School == school && schema.NameKey(s.Name) == key {
			out = append(out, s)
		}
	}
	return out, nil
}

// ELIMUIDTaken implements contract.Roster.
func (m *Memory) ELIMUIDTaken(ctx context.Context, elimuid string) (bool, error) {
	_, found, err := m.FindStudentByELIMUID(ctx, elimuid)
	return found, err
}

// CreateStudent implements contract.Roster.
func (m *Memory) CreateStudent(_ context.Context, rec schema.StudentEnrollmentRecord) (schema.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.students {
		if s.ELIMUID == rec.ELIMUID {
			return schema.Student{}, fmt.Errorf("student %s: %w", rec.ELIMUID, ErrDuplicate)
		}
	}
	s := schema.Student{
		ID:        uuid.NewString(),
		ELIMUID:   rec.ELIMUID,
		Name:      rec.Name,
		School:    rec.School,
		ClassName: rec.ClassName,
	}
	m.students = append(m.students, s)
	return s, nil
}

// FindParentByEmail implements contract.Roster.
func (m *Memory) FindParentByEmail(_ context.Context, email string) (schema.Parent, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.parents {
		if p.Email == email {
			return p, true, nil
		}
	}
	return schema.Parent{}, false, nil
}

// ParentIDTaken implements contract.Roster.
func (m *Memory) ParentIDTaken(_ context.Context, parentID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.ContainsFunc(m.parents, func(p schema.Parent) bool { return p.ParentID == parentID }), nil
}

// CreateParent implements contract.Roster.
func (m *Memory) CreateParent(_ context.Context, _, parentID string, contact schema.ParentContact) (schema.Parent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.parents {
		if p.Email == contact.Email || p.ParentID == parentID {
			return schema.Parent{}, fmt.Errorf("parent %s: %w", contact.Email, ErrDuplicate)
		}
	}
	p := schema.Parent{
		ID:       uuid.NewString(),
		ParentID: parentID,
		Name:     contact.Name,
		Email:    contact.Email,
		Phone:    contact.Phone,
	}
	m.parents = append(m.parents, p)
	return p, nil
}

// LinkParent implements contract.Roster.
func (m *Memory) LinkParent(_ context.Context, studentID, parentID, relationship string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.links {
		if l.studentID == studentID && l.parentID == parentID {
			return nil
		}
	}
	m.links = append(m.links, memoryParentLink{studentID, parentID, relationship})
	return nil
}

// ParentsOf returns the guardians linked to a student.
func (m *Memory) ParentsOf(studentID string) []schema.Parent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schema.Parent
	for _, l := range m.links {
		if l.studentID != studentID {
			continue
		}
		for _, p := range m.parents {
			if p.ID == l.parentID {
				out = append(out, p)
			}
		}
	}
	return out
}

// AssessmentExists implements contract.Roster.
func (m *Memory) AssessmentExists(_ context.Context, rec schema.AssessmentRecord) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.ContainsFunc(m.records, func(r schema.AssessmentRecord) bool {
		return sameAssessment(r, rec)
	}), nil
}

func sameAssessment(a, b schema.AssessmentRecord) bool {
	return a.StudentID == b.StudentID &&
		a.Subject == b.Subject &&
		a.AssessmentType == b.AssessmentType &&
		schema.DateKey(a.Date) == schema.DateKey(b.Date)
}

// CreateAssessment implements contract.Roster.
func (m *Memory) CreateAssessment(_ context.Context, rec schema.AssessmentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.ContainsFunc(m.records, func(r schema.AssessmentRecord) bool { return sameAssessment(r, rec) }) {
		return fmt.Errorf("assessment for %s: %w", rec.StudentID, ErrDuplicate)
	}
	m.records = append(m.records, rec)
	return nil
}

// AttendanceExists implements contract.Roster.
func (m *Memory) AttendanceExists(_ context.Context, studentID string, date time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	day := schema.DateKey(date)
	return slices.ContainsFunc(m.attendance, func(a schema.AttendanceRecord) bool {
		return a.StudentID == studentID && schema.DateKey(a.Date) == day
	}), nil
}

// CreateAttendance implements contract.Roster.
func (m *Memory) CreateAttendance(ctx context.Context, rec schema.AttendanceRecord) error {
	exists, _ := m.AttendanceExists(ctx, rec.StudentID, rec.Date)
	if exists {
		return fmt.Errorf("attendance for %s: %w", rec.StudentID, ErrDuplicate)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attendance = append(m.attendance, rec)
	return nil
}

// StudentHistory implements contract.Roster.
func (m *Memory) StudentHistory(_ context.Context, studentID string) ([]schema.AssessmentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []schema.AssessmentRecord{}
	for _, r := range m.records {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b schema.AssessmentRecord) int { return a.Date.Compare(b.Date) })
	return out, nil
}

// ClassMeans implements contract.Roster.
func (m *Memory) ClassMeans(_ context.Context, school, className string) ([]schema.StudentMean, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []schema.StudentMean{}
	for _, s := range m.students {
		if s.School != school || s.ClassName != className {
			continue
		}
		var sum float64
		var n int
		for _, r := range m.records {
			if r.StudentID == s.ID {
				sum += r.Score
				n++
			}
		}
		if n > 0 {
			out = append(out, schema.StudentMean{StudentID: s.ID, Mean: sum / float64(n)})
		}
	}
	return out, nil
}

// StudentAttendance implements contract.Roster.
func (m *Memory) StudentAttendance(_ context.Context, studentID string) ([]schema.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []schema.AttendanceRecord{}
	for _, a := range m.attendance {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b schema.AttendanceRecord) int { return a.Date.Compare(b.Date) })
	return out, nil
}

// BeginImport implements contract.Roster.
func (m *Memory) BeginImport(_ context.Context, kind schema.ImportKind, school string, start time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	m.runs = append(m.runs, schema.ImportRunRecord{
		RunID:     id,
		Kind:      string(kind),
		School:    school,
		StartTime: start,
	})
	return id, nil
}

// EndImport implements contract.Roster.
func (m *Memory) EndImport(_ context.Context, runID string, end time.Time, summary schema.ImportSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.runs, func(r schema.ImportRunRecord) bool { return r.RunID == runID })
	if i < 0 {
		return fmt.Errorf("import run %s: %w", runID, ErrNotFound)
	}
	run := &m.runs[i]
	run.EndTime = &end
	run.Processed = summary.Processed
	run.Created = summary.Created
	run.Skipped = summary.Skipped
	run.Failed = summary.Failed
	return nil
}

// Status implements Store.
func (m *Memory) Status(context.Context) (schema.RosterStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	status := schema.RosterStatus{
		Backend:   string(schema.NoneBackend),
		Connected: true,
		TotalRuns: len(m.runs),
		TableSizes: map[string]int64{
			studentsTable:        int64(len(m.students)),
			parentsTable:         int64(len(m.parents)),
			studentParentsTable:  int64(len(m.links)),
			academicRecordsTable: int64(len(m.records)),
			attendanceTable:      int64(len(m.attendance)),
			importRunsTable:      int64(len(m.runs)),
		},
	}
	if n := len(m.runs); n > 0 {
		status.LastRunTime = m.runs[n-1].StartTime
	}
	return status, nil
}

// AcademicRecords implements Store.
func (m *Memory) AcademicRecords(context.Context) ([]schema.AcademicRecordRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byID := make(map[string]schema.Student, len(m.students))
	for _, s := range m.students {
		byID[s.ID] = s
	}
	out := make([]schema.AcademicRecordRow, 0, len(m.records))
	for _, r := range m.records {
		s := byID[r.StudentID]
		out = append(out, schema.AcademicRecordRow{
			StudentID:      r.StudentID,
			ELIMUID:        s.ELIMUID,
			StudentName:    s.Name,
			School:         s.School,
			Subject:        r.Subject,
			AssessmentType: string(r.AssessmentType),
			Score:          r.Score,
			Term:           r.Term,
			Year:           r.Year,
			AssessedOn:     r.Date,
		})
	}
	slices.SortStableFunc(out, func(a, b schema.AcademicRecordRow) int {
		return cmp.Or(a.AssessedOn.Compare(b.AssessedOn), cmp.Compare(a.ELIMUID, b.ELIMUID))
	})
	return out, nil
}

// ImportRuns implements Store.
func (m *Memory) ImportRuns(context.Context) ([]schema.ImportRunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.runs), nil
}

// Clear implements Store.
func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.students = nil
	m.parents = nil
	m.links = nil
	m.records = nil
	m.attendance = nil
	m.runs = nil
	return nil
}

// Close implements contract.Roster.
func (m *Memory) Close() error {
	return nil
}

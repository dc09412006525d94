package roster

import (
	"context"
	"time"

	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/schema"
	"github.com/stretchr/testify/mock"
)

// MockRoster is a mock implementation of contract.Roster for testing.
type MockRoster struct {
	mock.Mock
}

var _ contract.Roster = &MockRoster{} // Compile-time check

// FindStudentByELIMUID implements the Roster interface.
func (m *MockRoster) FindStudentByELIMUID(ctx context.Context, elimuid string) (schema.Student, bool, error) {
	args := m.Called(ctx, elimuid)
	return args.Get(0).(schema.Student), args.Bool(1), args.Error(2)
}

// FindStudentsByName implements the Roster interface.
func (m *MockRoster) FindStudentsByName(ctx context.Context, school, name string) ([]schema.Student, error) {
	args := m.Called(ctx, school, name)
	students, _ := args.Get(0).([]schema.Student)
	return students, args.Error(1)
}

// ELIMUIDTaken implements the Roster interface.
func (m *MockRoster) ELIMUIDTaken(ctx context.Context, elimuid string) (bool, error) {
	args := m.Called(ctx, elimuid)
	return args.Bool(0), args.Error(1)
}

// CreateStudent implements the Roster interface.
func (m *MockRoster) CreateStudent(ctx context.Context, rec schema.StudentEnrollmentRecord) (schema.Student, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(schema.Student), args.Error(1)
}

// FindParentByEmail implements the Roster interface.
func (m *MockRoster) FindParentByEmail(ctx context.Context, email string) (schema.Parent, bool, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(schema.Parent), args.Bool(1), args.Error(2)
}

// ParentIDTaken implements the Roster interface.
func (m *MockRoster) ParentIDTaken(ctx context.Context, parentID string) (bool, error) {
	args := m.Called(ctx, parentID)
	return args.Bool(0), args.Error(1)
}

// CreateParent implements the Roster interface.
func (m *MockRoster) CreateParent(ctx context.Context, school, parentID string, contact schema.ParentContact) (schema.Parent, error) {
	args := m.Called(ctx, school, parentID, contact)
	return args.Get(0).(schema.Parent), args.Error(1)
}

// LinkParent implements the Roster interface.
func (m *MockRoster) LinkParent(ctx context.Context, studentID, parentID, relationship string) error {
	args := m.Called(ctx, studentID, parentID, relationship)
	return args.Error(0)
}

// AssessmentExists implements the Roster interface.
func (m *MockRoster) AssessmentExists(ctx context.Context, rec schema.AssessmentRecord) (bool, error) {
	args := m.Called(ctx, rec)
	return args.Bool(0), args.Error(1)
}

// CreateAssessment implements the Roster interface.
func (m *MockRoster) CreateAssessment(ctx context.Context, rec schema.AssessmentRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// AttendanceExists implements the Roster interface.
func (m *MockRoster) AttendanceExists(ctx context.Context, studentID string, date time.Time) (bool, error) {
	args := m.Called(ctx, studentID, date)
	return args.Bool(0), args.Error(1)
}

// CreateAttendance implements the Roster interface.
func (m *MockRoster) CreateAttendance(ctx context.Context, rec schema.AttendanceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// StudentHistory implements the Roster interface.
func (m *MockRoster) StudentHistory(ctx context.Context, studentID string) ([]schema.AssessmentRecord, error) {
	args := m.Called(ctx, studentID)
	records, _ := args.Get(0).([]schema.AssessmentRecord)
	return records, args.Error(1)
}

// StudentAttendance implements the Roster interface.
func (m *MockRoster) StudentAttendance(ctx context.Context, studentID string) ([]schema.AttendanceRecord, error) {
	args := m.Called(ctx, studentID)
	records, _ := args.Get(0).([]schema.AttendanceRecord)
	return records, args.Error(1)
}

// ClassMeans implements the Roster interface.
func (m *MockRoster) ClassMeans(ctx context.Context, school, className string) ([]schema.StudentMean, error) {
	args := m.Called(ctx, school, className)
	means, _ := args.Get(0).([]schema.StudentMean)
	return means, args.Error(1)
}

// BeginImport implements the Roster interface.
func (m *MockRoster) BeginImport(ctx context.Context, kind schema.ImportKind, school string, start time.Time) (string, error) {
	args := m.Called(ctx, kind, school, start)
	return args.String(0), args.Error(1)
}

// EndImport implements the Roster interface.
func (m *MockRoster) EndImport(ctx context.Context, runID string, end time.Time, summary schema.ImportSummary) error {
	args := m.Called(ctx, runID, end, summary)
	return args.Error(0)
}

// Close implements the Roster interface.
func (m *MockRoster) Close() error {
	args := m.Called()
	return args.Error(0)
}

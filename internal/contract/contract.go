// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/elimu/schema"
)

// Roster is the persistence collaborator of an import. It resolves student
// identity, answers duplicate checks and stores new entities.
// This allows the import logic to be tested without a database.
type Roster interface {
	// --- Students ---

	// FindStudentByELIMUID returns the student holding the external identifier.
	FindStudentByELIMUID(ctx context.Context, elimuid string) (schema.Student, bool, error)

	// FindStudentsByName returns every student of a school whose display name
	// matches name, ignoring case and repeated whitespace.
	FindStudentsByName(ctx context.Context, school, name string) ([]schema.Student, error)

	// ELIMUIDTaken reports whether an external identifier is already assigned.
	ELIMUIDTaken(ctx context.Context, elimuid string) (bool, error)

	// CreateStudent stores a new student and returns it with its internal ID.
	CreateStudent(ctx context.Context, rec schema.StudentEnrollmentRecord) (schema.Student, error)

	// --- Parents ---

	// FindParentByEmail returns the guardian registered under email.
	FindParentByEmail(ctx context.Context, email string) (schema.Parent, bool, error)

	// ParentIDTaken reports whether a guardian identifier is already assigned.
	ParentIDTaken(ctx context.Context, parentID string) (bool, error)

	// CreateParent stores a new guardian under the given external identifier.
	CreateParent(ctx context.Context, school, parentID string, contact schema.ParentContact) (schema.Parent, error)

	// LinkParent attaches a guardian to a student. Linking twice is a no-op.
	LinkParent(ctx context.Context, studentID, parentID, relationship string) error

	// --- Records ---

	// AssessmentExists reports whether the same student already has a record
	// for the same subject, assessment type and day.
	AssessmentExists(ctx context.Context, rec schema.AssessmentRecord) (bool, error)

	// CreateAssessment stores an assessment record.
	CreateAssessment(ctx context.Context, rec schema.AssessmentRecord) error

	// AttendanceExists reports whether the student already has a mark for the day.
	AttendanceExists(ctx context.Context, studentID string, date time.Time) (bool, error)

	// CreateAttendance stores an attendance mark.
	CreateAttendance(ctx context.Context, rec schema.AttendanceRecord) error

	// StudentHistory returns a student's assessments in ascending date order.
	StudentHistory(ctx context.Context, studentID string) ([]schema.AssessmentRecord, error)

	// StudentAttendance returns a student's attendance in ascending date order.
	StudentAttendance(ctx context.Context, studentID string) ([]schema.AttendanceRecord, error)

	// ClassMeans returns the mean assessment score of every student in a
	// school class who has at least one assessment.
	ClassMeans(ctx context.Context, school, className string) ([]schema.StudentMean, error)

	// --- Import runs ---

	// BeginImport records the start of an import run and returns its ID.
	BeginImport(ctx context.Context, kind schema.ImportKind, school string, start time.Time) (string, error)

	// EndImport records the completion counts of an import run.
	EndImport(ctx context.Context, runID string, end time.Time, summary schema.ImportSummary) error

	// Close releases the underlying connection.
	Close() error
}

// ImportObserver receives import progress for metrics collection.
type ImportObserver interface {
	RowApplied(kind schema.ImportKind, outcome schema.RowOutcome)
	IDGenerated()
	RunFinished(kind schema.ImportKind, elapsed time.Duration)
}

// NopObserver is an ImportObserver that ignores every event.
type NopObserver struct{}

// RowApplied does nothing.
func (NopObserver) RowApplied(schema.ImportKind, schema.RowOutcome) {}

// IDGenerated does nothing.
func (NopObserver) IDGenerated() {}

// RunFinished does nothing.
func (NopObserver) RunFinished(schema.ImportKind, time.Duration) {}

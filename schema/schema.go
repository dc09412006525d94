// Package schema has models and shared constants for all parts of elimu.
package schema

import "time"

// AssessmentRecord is a single scored assessment for one student.
// It is the input unit of the grading engine and the output unit of a marks import.
type AssessmentRecord struct {
	StudentID      string         `json:"student_id"`
	Subject        string         `json:"subject"`
	Score          float64        `json:"score"` // 0-100
	AssessmentType AssessmentType `json:"assessment_type"`
	AssessmentName string         `json:"assessment_name,omitempty"`
	Level          string         `json:"level,omitempty"`
	Date           time.Time      `json:"date"`
	Term           string         `json:"term,omitempty"`
	Year           int            `json:"year,omitempty"`
	IsAP           bool           `json:"is_ap,omitempty"`
	RecordedBy     string         `json:"recorded_by,omitempty"`
}

// AttendanceRecord is a single day's attendance mark for one student.
type AttendanceRecord struct {
	StudentID string           `json:"student_id"`
	Date      time.Time        `json:"date"`
	Status    AttendanceStatus `json:"status"`
	Reason    string           `json:"reason,omitempty"`
	TimeIn    string           `json:"time_in"`
	TimeOut   string           `json:"time_out"`
	Term      string           `json:"term,omitempty"`
}

// ParentContact holds the guardian details carried on a student row.
type ParentContact struct {
	Name         string `json:"name"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Relationship string `json:"relationship"`
}

// StudentEnrollmentRecord is a normalized student row.
type StudentEnrollmentRecord struct {
	ELIMUID         string         `json:"elimuid,omitempty"`
	Name            string         `json:"name" validate:"required"`
	Email           string         `json:"email" validate:"required,email"`
	Phone           string         `json:"phone,omitempty"`
	School          string         `json:"school"`
	ClassName       string         `json:"class_name"`
	Stream          string         `json:"stream,omitempty"`
	AdmissionNumber string         `json:"admission_number,omitempty"`
	DateOfBirth     time.Time      `json:"date_of_birth"`
	Gender          Gender         `json:"gender" validate:"oneof=male female other"`
	EnrollmentDate  time.Time      `json:"enrollment_date"`
	Address         string         `json:"address,omitempty"`
	City            string         `json:"city,omitempty"`
	Parent          *ParentContact `json:"parent,omitempty"`
}

// Student is a roster entry as resolved by identity resolution.
type Student struct {
	ID        string `json:"id" db:"id"`
	ELIMUID   string `json:"elimuid" db:"elimuid"`
	Name      string `json:"name" db:"name"`
	School    string `json:"school" db:"school"`
	ClassName string `json:"class_name" db:"class_name"`
}

// Parent is a roster guardian entry.
type Parent struct {
	ID       string `json:"id" db:"id"`
	ParentID string `json:"parent_id" db:"parent_id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Phone    string `json:"phone" db:"phone"`
}

package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/schema"
)

// Fallback date of birth when a student row has none.
var defaultDateOfBirth = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

var errMissingName = errors.New("missing student name")

// studentKey identifies the student a marks or attendance row refers to.
type studentKey struct {
	elimuid string
	name    string
}

func (k studentKey) String() string {
	if k.elimuid != "" {
		return k.elimuid
	}
	return k.name
}

// prepared is the result of normalizing one row. It is computed without the
// roster so that rows of one bucket can be prepared concurrently.
type prepared struct {
	line     int
	date     string
	key      studentKey
	warnings []string
	err      error

	student    *schema.StudentEnrollmentRecord
	assessment *schema.AssessmentRecord
	attendance *schema.AttendanceRecord
}

func (p *prepared) warn(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func rowKey(row schema.RawRow) studentKey {
	return studentKey{elimuid: row.Text("elimuid"), name: row.Text("name")}
}

// prepareStudent normalizes an enrollment row.
func (im *Importer) prepareStudent(p *prepared, row schema.RawRow) {
	name := row.Text("name")
	if name == "" {
		p.err = errMissingName
		return
	}
	p.key = studentKey{elimuid: row.Text("elimuid"), name: name}

	rec := &schema.StudentEnrollmentRecord{
		ELIMUID:         row.Text("elimuid"),
		Name:            name,
		Email:           row.Text("email"),
		Phone:           row.Text("phone"),
		School:          im.school,
		ClassName:       ParseClassName(row.Text("grade")),
		Stream:          row.Text("stream"),
		AdmissionNumber: row.Text("admissionnumber"),
		Gender:          NormalizeGender(row.Text("gender")),
		Address:         row.Text("address"),
		City:            row.Text("city"),
	}
	if rec.Email == "" {
		rec.Email = DefaultEmail(name)
	}
	if dob, ok := ParseDate(row.FirstText("dob", "birthdate", "dateofbirth")); ok {
		rec.DateOfBirth = dob
	} else {
		rec.DateOfBirth = defaultDateOfBirth
	}
	if enrolled, ok := ParseDate(row.Text("enrollmentdate")); ok {
		rec.EnrollmentDate = enrolled
	} else {
		rec.EnrollmentDate = schema.Day(im.now())
	}
	if err := im.validate.Struct(rec); err != nil {
		p.err = fmt.Errorf("invalid student %s: %w", name, err)
		return
	}

	if email := row.Text("parentemail"); email != "" {
		parent := &schema.ParentContact{
			Name:         row.Text("parentname"),
			Email:        email,
			Phone:        row.Text("parentphone"),
			Relationship: strings.ToLower(row.Text("relationship")),
		}
		if parent.Name == "" {
			parent.Name = "Parent of " + name
		}
		if parent.Relationship == "" {
			parent.Relationship = defaultRelationship
		}
		if err := im.validate.Struct(parent); err != nil {
			p.warn("Failed to assign parent for %s: %v", name, err)
		} else {
			rec.Parent = parent
		}
	}
	p.student = rec
}

// prepareAssessment normalizes a marks row dated by its bucket.
func (im *Importer) prepareAssessment(p *prepared, row schema.RawRow, date time.Time, dated bool) {
	p.key = rowKey(row)
	if p.key.elimuid == "" && p.key.name == "" {
		p.err = errMissingName
		return
	}
	if !dated {
		p.warn("No valid date for %s, using current date", p.key)
	}

	score, warning := ParseScore(row.Text("score"))
	if warning != "" {
		p.warn("%s: %s", p.key, warning)
	}

	subject := NormalizeSubject(row.Text("subject"))
	term := row.Text("term")
	if term == "" {
		term = schema.TermForDate(date)
	}
	name := row.Text("assessmentname")
	if name == "" {
		name = subject + " Assessment"
	}
	level := ""
	if raw := row.Text("grade"); raw != "" {
		level = ParseClassName(raw)
	}
	isAP := false
	if raw := row.Text("isap"); raw != "" {
		v, err := contract.ParseBoolString(raw)
		if err != nil {
			p.warn("%s: unreadable AP flag %q, assuming no", p.key, raw)
		}
		isAP = v
	}

	p.assessment = &schema.AssessmentRecord{
		Subject:        subject,
		Score:          score,
		AssessmentType: NormalizeAssessmentType(row.FirstText("type", "assessmenttype")),
		AssessmentName: name,
		Level:          level,
		Date:           date,
		Term:           term,
		Year:           date.Year(),
		IsAP:           isAP,
		RecordedBy:     im.recordedBy,
	}
}

// prepareAttendance normalizes an attendance row. Unlike marks, an attendance
// row without a readable date is an error.
func (im *Importer) prepareAttendance(p *prepared, row schema.RawRow, date time.Time, dated bool) {
	p.key = rowKey(row)
	if p.key.elimuid == "" && p.key.name == "" {
		p.err = errMissingName
		return
	}
	if !dated {
		p.err = fmt.Errorf("invalid date for student %s", p.key)
		return
	}

	status := NormalizeAttendanceStatus(row.FirstText("status", "attendance"))
	rec := &schema.AttendanceRecord{
		Date:    date,
		Status:  status,
		Reason:  row.Text("reason"),
		TimeIn:  row.Text("timein"),
		TimeOut: row.Text("timeout"),
		Term:    row.Text("term"),
	}
	if rec.TimeIn == "" {
		rec.TimeIn = DefaultTimeIn(status)
	}
	if rec.TimeOut == "" {
		rec.TimeOut = DefaultTimeOut(status)
	}
	if rec.Term == "" {
		rec.Term = schema.TermForDate(date)
	}
	p.attendance = rec
}

package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/huangsam/elimu/schema"
)

// Fallbacks for missing cells.
const (
	defaultSubject      = "General"
	defaultClassName    = "Not Assigned"
	defaultRelationship = "guardian"
	studentEmailDomain  = "student.school.edu"
)

var subjectAbbreviations = map[string]string{
	"math":  "Mathematics",
	"maths": "Mathematics",
	"eng":   "English",
	"sci":   "Science",
	"bio":   "Biology",
	"chem":  "Chemistry",
	"phy":   "Physics",
	"hist":  "History",
	"geo":   "Geography",
	"kisw":  "Kiswahili",
	"cre":   "CRE",
	"ire":   "IRE",
}

var attendanceMarks = map[string]schema.AttendanceStatus{
	"p": schema.Present, "present": schema.Present, "✅": schema.Present,
	"a": schema.Absent, "absent": schema.Absent, "❌": schema.Absent,
	"l": schema.Late, "late": schema.Late, "⏰": schema.Late,
	"s": schema.Sick, "sick": schema.Sick, "🤒": schema.Sick,
	"h": schema.Holiday, "holiday": schema.Holiday, "🏖": schema.Holiday,
}

var (
	digitsRegex     = regexp.MustCompile(`\d+`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	mailboxRegex    = regexp.MustCompile(`[^a-z0-9.-]+`)
	dotsRegex       = regexp.MustCompile(`\.{2,}`)
)

// NormalizeGender maps m/male and f/female; everything else is other.
func NormalizeGender(v string) schema.Gender {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "m", "male":
		return schema.Male
	case "f", "female":
		return schema.Female
	default:
		return schema.OtherGender
	}
}

// NormalizeSubject expands common abbreviations and keeps other names as given.
func NormalizeSubject(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return defaultSubject
	}
	if full, ok := subjectAbbreviations[strings.ToLower(v)]; ok {
		return full
	}
	return v
}

// NormalizeAssessmentType classifies free text by keyword, defaulting to test.
func NormalizeAssessmentType(v string) schema.AssessmentType {
	lower := strings.ToLower(strings.TrimSpace(v))
	switch {
	case strings.Contains(lower, "exam"):
		return schema.ExamAssessment
	case strings.Contains(lower, "test"):
		return schema.TestAssessment
	case strings.Contains(lower, "assignment"), strings.Contains(lower, "homework"):
		return schema.AssignmentAssessment
	case strings.Contains(lower, "project"):
		return schema.ProjectAssessment
	case strings.Contains(lower, "quiz"):
		return schema.QuizAssessment
	case strings.Contains(lower, "cat"):
		return schema.CATAssessment
	default:
		return schema.TestAssessment
	}
}

// NormalizeAttendanceStatus reads letters, words and emoji marks. Unknown or
// empty marks count as present.
func NormalizeAttendanceStatus(v string) schema.AttendanceStatus {
	key := strings.ToLower(strings.TrimSpace(v))
	key = strings.TrimSuffix(key, "\ufe0f")
	if s, ok := attendanceMarks[key]; ok {
		return s
	}
	return schema.Present
}

// DefaultTimeIn is the arrival time recorded when a row has none.
func DefaultTimeIn(s schema.AttendanceStatus) string {
	switch s {
	case schema.Late:
		return "08:30"
	case schema.Present:
		return "08:00"
	default:
		return "-"
	}
}

// DefaultTimeOut is the departure time recorded when a row has none.
func DefaultTimeOut(s schema.AttendanceStatus) string {
	if s == schema.Present || s == schema.Late {
		return "15:30"
	}
	return "-"
}

// ParseClassName turns "form 2" into "Form 2", "year 13" into "Year 13" and
// "Std 7" or "7" into "Grade 7". Values without digits are kept.
func ParseClassName(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return defaultClassName
	}
	num := digitsRegex.FindString(v)
	if num == "" {
		return v
	}
	num = strings.TrimLeft(num, "0")
	if num == "" {
		num = "0"
	}
	lower := strings.ToLower(v)
	switch {
	case strings.Contains(lower, "form"):
		return "Form " + num
	case strings.Contains(lower, "year"):
		return "Year " + num
	}
	return "Grade " + num
}

// DefaultEmail derives a student mailbox from the display name. The local
// part keeps only [a-z0-9.-] so the address always validates.
func DefaultEmail(name string) string {
	local := whitespaceRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), ".")
	local = mailboxRegex.ReplaceAllString(local, "")
	local = strings.Trim(dotsRegex.ReplaceAllString(local, "."), ".-")
	if local == "" {
		local = "student"
	}
	return fmt.Sprintf("%s@%s", local, studentEmailDomain)
}

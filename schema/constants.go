package schema

// Custom string types for type safety.
type (
	// CurriculumCode identifies a grading regime.
	CurriculumCode string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the roster.
	DatabaseBackend string

	// ImportKind represents the kind of spreadsheet being imported.
	ImportKind string

	// Confidence represents how much a prediction can be trusted.
	Confidence string

	// TrendDirection represents the direction of a score series.
	TrendDirection string

	// Severity represents the severity of a risk factor.
	Severity string

	// Priority represents the priority of a recommendation.
	Priority string

	// AttendanceStatus represents a normalized attendance mark.
	AttendanceStatus string

	// AssessmentType represents a normalized assessment kind.
	AssessmentType string

	// Gender represents a normalized gender value.
	Gender string
)

// All curriculum systems supported.
const (
	System844      CurriculumCode = "844" // default
	CBCSystem      CurriculumCode = "cbc"
	BritishSystem  CurriculumCode = "british"
	AmericanSystem CurriculumCode = "american"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All roster backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All import kinds supported.
const (
	StudentImport    ImportKind = "students"
	MarksImport      ImportKind = "marks"
	AttendanceImport ImportKind = "attendance"
)

// Prediction confidence levels.
const (
	LowConfidence    Confidence = "low"
	MediumConfidence Confidence = "medium"
	HighConfidence   Confidence = "high"
)

// Trend directions.
const (
	Improving TrendDirection = "improving"
	Declining TrendDirection = "declining"
	Stable    TrendDirection = "stable"
)

// Risk severities.
const (
	MediumSeverity Severity = "medium"
	HighSeverity   Severity = "high"
)

// Recommendation priorities.
const (
	UrgentPriority Priority = "urgent"
	HighPriority   Priority = "high"
	MediumPriority Priority = "medium"
	LowPriority    Priority = "low"
)

// Attendance statuses.
const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Late    AttendanceStatus = "late"
	Sick    AttendanceStatus = "sick"
	Holiday AttendanceStatus = "holiday"
)

// Assessment types.
const (
	ExamAssessment       AssessmentType = "exam"
	TestAssessment       AssessmentType = "test" // default
	AssignmentAssessment AssessmentType = "assignment"
	ProjectAssessment    AssessmentType = "project"
	QuizAssessment       AssessmentType = "quiz"
	CATAssessment        AssessmentType = "cat"
)

// Genders.
const (
	Male        Gender = "male"
	Female      Gender = "female"
	OtherGender Gender = "other"
)

// AllCurricula returns a list of all supported curriculum systems.
var AllCurricula = []CurriculumCode{System844, CBCSystem, BritishSystem, AmericanSystem}

// ValidCurricula lists all valid curriculum codes.
var ValidCurricula = map[CurriculumCode]struct{}{
	System844:      {},
	CBCSystem:      {},
	BritishSystem:  {},
	AmericanSystem: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid roster backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidImportKinds lists all valid import kinds.
var ValidImportKinds = map[ImportKind]struct{}{
	StudentImport:    {},
	MarksImport:      {},
	AttendanceImport: {},
}

// RequiredColumns returns the normalized column names an import kind cannot do without.
func RequiredColumns(kind ImportKind) []string {
	switch kind {
	case MarksImport:
		return []string{"name", "subject", "score"}
	case AttendanceImport:
		return []string{"name", "date", "status"}
	default: // StudentImport
		return []string{"name"}
	}
}

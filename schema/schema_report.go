package schema

import "time"

// StudentRef identifies the subject of a report card.
type StudentRef struct {
	ID      string `json:"id"`
	ELIMUID string `json:"elimuid,omitempty"`
	Name    string `json:"name"`
	Level   string `json:"level"`
	School  string `json:"school,omitempty"`
}

// SubjectReport is a report-card line. 8-4-4 lines are per record; the other
// systems report per-subject averages.
type SubjectReport struct {
	Subject        string         `json:"subject"`
	AssessmentType AssessmentType `json:"assessment_type,omitempty"`
	Date           time.Time      `json:"date,omitzero"`
	Average        float64        `json:"average"`
	Assessments    int            `json:"assessments"`
	Result         GradeResult    `json:"result"`
	Comment        string         `json:"comment,omitempty"`
	Target         string         `json:"target,omitempty"`
}

// RatedItem is a named qualitative rating, such as a CBC competency or core value.
type RatedItem struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score,omitempty"`
	Rating string  `json:"rating"`
}

// Honor is an advanced-placement entry on an American report card.
type Honor struct {
	Subject string  `json:"subject"`
	Grade   string  `json:"grade"`
	Exam    string  `json:"exam"`
	APScore string  `json:"ap_score"`
	Score   float64 `json:"score"`
}

// ReportComments holds narrative comments derived from grades.
type ReportComments struct {
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Overall      string   `json:"overall"`
}

// ReportCard is a curriculum-specific report. Sections not used by the
// producing system are left empty.
type ReportCard struct {
	System      CurriculumCode  `json:"system"`
	SystemName  string          `json:"system_name"`
	Student     StudentRef      `json:"student"`
	Term        string          `json:"term"`
	Year        int             `json:"year"`
	GeneratedAt time.Time       `json:"generated_at"`
	Subjects    []SubjectReport `json:"subjects"`
	Comments    *ReportComments `json:"comments,omitempty"`

	// 8-4-4
	MeanGrade *MeanGrade `json:"mean_grade,omitempty"`

	// CBC
	Competencies    []RatedItem `json:"competencies,omitempty"`
	Values          []RatedItem `json:"values,omitempty"`
	OverallScore    float64     `json:"overall_score,omitempty"`
	NextLevel       string      `json:"next_level,omitempty"`
	PromotionStatus string      `json:"promotion_status,omitempty"`

	// British
	KeyStage string       `json:"key_stage,omitempty"`
	UCAS     *UCASSummary `json:"ucas,omitempty"`

	// American
	GPA                *GPASummary `json:"gpa,omitempty"`
	Honors             []Honor     `json:"honors,omitempty"`
	RecommendedCourses []string    `json:"recommended_courses,omitempty"`
	CollegePrep        string      `json:"college_prep,omitempty"`
}

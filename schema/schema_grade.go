package schema

// Band is a closed score interval mapped to a grade label, a point value and a remark.
type Band struct {
	Label    string  `json:"label"`
	Code     string  `json:"code,omitempty"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Points   float64 `json:"points"`
	Weighted float64 `json:"weighted,omitempty"`
	UCAS     int     `json:"ucas,omitempty"`
	Remark   string  `json:"remark,omitempty"`
	Color    string  `json:"color,omitempty"`
}

// CompetencyScore is one entry of the CBC competency vector.
type CompetencyScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// GradeResult is the curriculum-specific grade of a single score.
// Only the fields relevant to the producing system are populated.
type GradeResult struct {
	System  CurriculumCode `json:"system"`
	Subject string         `json:"subject,omitempty"`
	Level   string         `json:"level,omitempty"`
	Score   float64        `json:"score"`
	Grade   string         `json:"grade"`
	Points  float64        `json:"points"`
	Remark  string         `json:"remark,omitempty"`
	BandMin float64        `json:"band_min"`
	BandMax float64        `json:"band_max"`

	// CBC
	Code          string            `json:"code,omitempty"`
	Color         string            `json:"color,omitempty"`
	LevelCategory string            `json:"level_category,omitempty"`
	Competencies  []CompetencyScore `json:"competencies,omitempty"`

	// British
	KeyStage      string `json:"key_stage,omitempty"`
	Qualification string `json:"qualification,omitempty"`
	UCASPoints    int    `json:"ucas_points,omitempty"`

	// American
	GPA           float64 `json:"gpa,omitempty"`
	UnweightedGPA float64 `json:"unweighted_gpa,omitempty"`
	WeightedGPA   float64 `json:"weighted_gpa,omitempty"`
	IsAP          bool    `json:"is_ap,omitempty"`
	CreditHours   float64 `json:"credit_hours,omitempty"`
	QualityPoints float64 `json:"quality_points,omitempty"`
}

// MeanGrade summarizes a set of 12-point grades.
type MeanGrade struct {
	MeanPoints     float64 `json:"mean_points"`
	MeanGrade      string  `json:"mean_grade"`
	TotalPoints    float64 `json:"total_points"`
	SubjectCount   int     `json:"subject_count"`
	Classification string  `json:"classification"`
}

// GPASummary is a credit-weighted GPA over matched grades.
type GPASummary struct {
	UnweightedGPA float64 `json:"unweighted_gpa"`
	WeightedGPA   float64 `json:"weighted_gpa"`
	TotalCredits  float64 `json:"total_credits"`
	Counted       int     `json:"counted"`
	Skipped       int     `json:"skipped"`
}

// UCASQualification is one A-Level contributing to a UCAS total.
type UCASQualification struct {
	Subject string `json:"subject"`
	Grade   string `json:"grade"`
	Points  int    `json:"points"`
}

// UCASSummary sums UCAS tariff over A-Level entries.
type UCASSummary struct {
	TotalPoints    int                 `json:"total_points"`
	Qualifications []UCASQualification `json:"qualifications"`
	Eligibility    string              `json:"eligibility"`
}

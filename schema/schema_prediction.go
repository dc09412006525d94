package schema

// Risk factor types.
const (
	DecliningTrendRisk = "declining_trend"
	InconsistencyRisk  = "inconsistency"
	BelowAverageRisk   = "below_average"
)

// Recommendation types.
const (
	InterventionRecommendation        = "intervention"
	SupportRecommendation             = "support"
	EnhancementRecommendation         = "enhancement"
	EnrichmentRecommendation          = "enrichment"
	SubjectInterventionRecommendation = "subject_intervention"
)

// ShortTermPrediction projects the next assessment from the last three scores.
type ShortTermPrediction struct {
	PredictedScore      float64        `json:"predicted_score"`
	Trend               TrendDirection `json:"trend,omitempty"`
	Confidence          Confidence     `json:"confidence"`
	NextAssessmentGrade string         `json:"next_assessment_grade,omitempty"`
	Message             string         `json:"message,omitempty"`
}

// LongTermPrediction summarizes the full history into a final-grade outlook.
type LongTermPrediction struct {
	Average             float64    `json:"average"`
	StdDev              float64    `json:"std_dev"`
	Consistency         string     `json:"consistency,omitempty"`
	PredictedFinalGrade string     `json:"predicted_final_grade,omitempty"`
	ImprovementNeeded   float64    `json:"improvement_needed"`
	Confidence          Confidence `json:"confidence"`
	Message             string     `json:"message,omitempty"`
}

// RiskFactor is one detected academic risk.
type RiskFactor struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// Recommendation is one suggested action.
type Recommendation struct {
	Type     string   `json:"type"`
	Priority Priority `json:"priority"`
	Subject  string   `json:"subject,omitempty"`
	Action   string   `json:"action"`
	Reason   string   `json:"reason"`
}

// Predictions bundles every forward-looking result for one history.
type Predictions struct {
	ShortTerm       ShortTermPrediction `json:"short_term"`
	LongTerm        LongTermPrediction  `json:"long_term"`
	RiskFactors     []RiskFactor        `json:"risk_factors"`
	Recommendations []Recommendation    `json:"recommendations"`
}

// Insight is a data-derived observation about a student.
type Insight struct {
	Type           string  `json:"type"` // strength, improvement, risk, warning
	Subject        string  `json:"subject,omitempty"`
	Message        string  `json:"message"`
	Recommendation string  `json:"recommendation"`
	Value          float64 `json:"value"`
}

// InsightReport groups insights with summary counts.
type InsightReport struct {
	StudentID      string    `json:"student_id"`
	Insights       []Insight `json:"insights"`
	Strengths      int       `json:"strengths"`
	Improvements   int       `json:"improvements"`
	Risks          int       `json:"risks"`
	AttendanceRate float64   `json:"attendance_rate"`
	OverallHealth  string    `json:"overall_health"`

	Comparison *ComparativeAnalysis `json:"comparison,omitempty"`
}

// ComparativeAnalysis places a student's mean among class peers.
type ComparativeAnalysis struct {
	StudentID  string  `json:"student_id"`
	Mean       float64 `json:"mean"`
	ClassMean  float64 `json:"class_mean"`
	Rank       int     `json:"rank"`
	ClassSize  int     `json:"class_size"`
	Percentile float64 `json:"percentile"`
}

// StudentMean is a student's mean score, used for ranking.
type StudentMean struct {
	StudentID string  `json:"student_id" db:"student_id"`
	Mean      float64 `json:"mean" db:"mean"`
}

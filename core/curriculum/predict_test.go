package curriculum

import (
	"testing"
	"time"

	"github.com/huangsam/elimu/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// history builds a chronological series of Mathematics records, one per week.
func history(scores ...float64) []schema.AssessmentRecord {
	start := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)
	out := make([]schema.AssessmentRecord, len(scores))
	for i, s := range scores {
		out[i] = schema.AssessmentRecord{
			StudentID: "STU-2024-1001",
			Subject:   "Mathematics",
			Score:     s,
			Date:      start.AddDate(0, 0, 7*i),
		}
	}
	return out
}

func riskTypes(risks []schema.RiskFactor) map[string]schema.Severity {
	out := make(map[string]schema.Severity, len(risks))
	for _, r := range risks {
		out[r.Type] = r.Severity
	}
	return out
}

func TestPredictShortTerm(t *testing.T) {
	e := NewEngine(schema.System844)

	t.Run("insufficient", func(t *testing.T) {
		p := e.PredictShortTerm(history(60, 65))
		assert.Equal(t, schema.LowConfidence, p.Confidence)
		assert.Equal(t, "Insufficient data for prediction", p.Message)
		assert.Equal(t, 0.0, p.PredictedScore)
	})

	t.Run("improving", func(t *testing.T) {
		p := e.PredictShortTerm(history(60, 65, 70))
		assert.Equal(t, schema.Improving, p.Trend)
		assert.Equal(t, 75.0, p.PredictedScore)
		assert.LessOrEqual(t, p.PredictedScore, 100.0)
		assert.Equal(t, schema.MediumConfidence, p.Confidence)
		assert.Equal(t, "A-", p.NextAssessmentGrade)
	})

	t.Run("clamped", func(t *testing.T) {
		p := e.PredictShortTerm(history(50, 80, 98))
		assert.Equal(t, 100.0, p.PredictedScore)
	})

	t.Run("declining uses last window", func(t *testing.T) {
		p := e.PredictShortTerm(history(10, 20, 90, 80, 70))
		assert.Equal(t, schema.Declining, p.Trend)
		assert.Equal(t, 60.0, p.PredictedScore)
		assert.Equal(t, schema.HighConfidence, p.Confidence)
	})

	t.Run("stable", func(t *testing.T) {
		p := e.PredictShortTerm(history(70, 40, 70))
		assert.Equal(t, schema.Stable, p.Trend)
		assert.Equal(t, 70.0, p.PredictedScore)
	})
}

func TestPredictLongTerm(t *testing.T) {
	e := NewEngine(schema.System844)

	p := e.PredictLongTerm(history(70, 72, 68, 71, 69))
	assert.Equal(t, schema.LowConfidence, p.Confidence)
	assert.Equal(t, "Insufficient data for long-term prediction", p.Message)

	p = e.PredictLongTerm(history(70, 72, 68, 71, 69, 70))
	assert.Equal(t, "high", p.Consistency)
	assert.Equal(t, schema.MediumConfidence, p.Confidence)
	assert.Equal(t, 70.0, p.Average)
	assert.Equal(t, "B+", p.PredictedFinalGrade)
	assert.Equal(t, 0.0, p.ImprovementNeeded)

	p = e.PredictLongTerm(history(20, 60, 30, 70, 25, 65, 30, 60, 35, 55))
	assert.Equal(t, "medium", p.Consistency)
	assert.Equal(t, schema.HighConfidence, p.Confidence)
	assert.InDelta(t, 45.0, p.Average, 1e-9)
	assert.InDelta(t, 5.0, p.ImprovementNeeded, 1e-9)

	p = e.PredictLongTerm(history(0, 100, 0, 100, 0, 100))
	assert.Equal(t, "low", p.Consistency)
}

func TestIdentifyRiskFactors(t *testing.T) {
	e := NewEngine(schema.System844)
	tests := []struct {
		name     string
		scores   []float64
		expected map[string]schema.Severity
	}{
		{"declining", []float64{90, 88, 70}, map[string]schema.Severity{schema.DecliningTrendRisk: schema.HighSeverity}},
		{"below average", []float64{30, 35, 32}, map[string]schema.Severity{schema.BelowAverageRisk: schema.HighSeverity}},
		{"inconsistent", []float64{20, 90, 20, 90}, map[string]schema.Severity{schema.InconsistencyRisk: schema.MediumSeverity}},
		{"all three", []float64{10, 95, 60, 5, 45}, map[string]schema.Severity{
			schema.DecliningTrendRisk: schema.HighSeverity,
			schema.InconsistencyRisk:  schema.MediumSeverity,
			schema.BelowAverageRisk:   schema.HighSeverity,
		}},
		{"healthy", []float64{70, 72, 75}, map[string]schema.Severity{}},
		{"empty", nil, map[string]schema.Severity{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			risks := e.IdentifyRiskFactors(history(tt.scores...))
			assert.Equal(t, tt.expected, riskTypes(risks))
		})
	}
}

func TestGenerateRecommendations(t *testing.T) {
	e := NewEngine(schema.System844)

	assert.Empty(t, e.GenerateRecommendations(nil))

	records := append(history(30, 35), schema.AssessmentRecord{Subject: "English", Score: 80}, schema.AssessmentRecord{Subject: "English", Score: 85})
	recs := e.GenerateRecommendations(records)
	require.Len(t, recs, 2)
	assert.Equal(t, schema.SupportRecommendation, recs[0].Type)
	assert.Equal(t, schema.HighPriority, recs[0].Priority)
	assert.Equal(t, schema.SubjectInterventionRecommendation, recs[1].Type)
	assert.Equal(t, "Mathematics", recs[1].Subject)
	assert.Equal(t, "Focus on improving Mathematics fundamentals", recs[1].Action)
	assert.Equal(t, "Average score of 32.5% below passing", recs[1].Reason)

	tiers := []struct {
		score    float64
		kind     string
		priority schema.Priority
	}{
		{20, schema.InterventionRecommendation, schema.UrgentPriority},
		{70, schema.EnhancementRecommendation, schema.MediumPriority},
		{90, schema.EnrichmentRecommendation, schema.LowPriority},
	}
	for _, tier := range tiers {
		recs := e.GenerateRecommendations(history(tier.score))
		require.NotEmpty(t, recs)
		assert.Equal(t, tier.kind, recs[0].Type)
		assert.Equal(t, tier.priority, recs[0].Priority)
	}
}

func TestGeneratePredictions(t *testing.T) {
	e := NewEngine(schema.System844)
	p := e.GeneratePredictions(history(90, 88, 70))
	assert.Equal(t, schema.Declining, p.ShortTerm.Trend)
	assert.Equal(t, schema.LowConfidence, p.LongTerm.Confidence)
	assert.Contains(t, riskTypes(p.RiskFactors), schema.DecliningTrendRisk)
	assert.NotEmpty(t, p.Recommendations)

	empty := e.GeneratePredictions(nil)
	assert.Empty(t, empty.RiskFactors)
	assert.Empty(t, empty.Recommendations)
}

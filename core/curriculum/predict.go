package curriculum

import (
	"fmt"
	"math"

	"github.com/huangsam/elimu/core/algo"
	"github.com/huangsam/elimu/schema"
)

// Minimum history lengths per prediction horizon.
const (
	shortTermWindow     = 3
	longTermMinRecords  = 6
	shortTermHighRecord = 5
	longTermHighRecord  = 10
	inconsistencyMin    = 4
)

// Score thresholds used by the forward-looking heuristics.
const (
	passingScore        = 50.0
	declineThreshold    = 10.0
	inconsistencyStdDev = 20.0
)

func scoresOf(history []schema.AssessmentRecord) []float64 {
	out := make([]float64, len(history))
	for i, r := range history {
		out[i] = r.Score
	}
	return out
}

// PredictShortTerm projects the next score from the last three records of a
// chronological history: s2 plus half of (s2 - s0), clamped to [0, 100].
func (e *Engine) PredictShortTerm(history []schema.AssessmentRecord) schema.ShortTermPrediction {
	if len(history) < shortTermWindow {
		return schema.ShortTermPrediction{
			Confidence: schema.LowConfidence,
			Message:    "Insufficient data for prediction",
		}
	}
	scores := scoresOf(history)
	trend, _ := algo.WindowTrend(scores, shortTermWindow)
	last := scores[len(scores)-1]
	predicted := schema.Round(schema.Clamp(last+trend/2, 0, 100), 1)

	direction := schema.Stable
	switch {
	case trend > 0:
		direction = schema.Improving
	case trend < 0:
		direction = schema.Declining
	}
	confidence := schema.MediumConfidence
	if len(history) >= shortTermHighRecord {
		confidence = schema.HighConfidence
	}
	return schema.ShortTermPrediction{
		PredictedScore:      predicted,
		Trend:               direction,
		Confidence:          confidence,
		NextAssessmentGrade: e.CalculateGrade(predicted, "", "").Grade,
	}
}

// PredictLongTerm summarizes at least six records into a consistency bucket
// and a predicted final grade.
func (e *Engine) PredictLongTerm(history []schema.AssessmentRecord) schema.LongTermPrediction {
	if len(history) < longTermMinRecords {
		return schema.LongTermPrediction{
			Confidence: schema.LowConfidence,
			Message:    "Insufficient data for long-term prediction",
		}
	}
	scores := scoresOf(history)
	avg := algo.Mean(scores)
	sd := algo.StdDev(scores)

	consistency := "low"
	switch {
	case sd < 10:
		consistency = "high"
	case sd < 20:
		consistency = "medium"
	}
	confidence := schema.MediumConfidence
	if len(history) >= longTermHighRecord {
		confidence = schema.HighConfidence
	}
	return schema.LongTermPrediction{
		Average:             schema.Round(avg, 1),
		StdDev:              schema.Round(sd, 2),
		Consistency:         consistency,
		PredictedFinalGrade: e.CalculateGrade(avg, "", "").Grade,
		ImprovementNeeded:   schema.Round(math.Max(0, passingScore-avg), 1),
		Confidence:          confidence,
	}
}

// IdentifyRiskFactors runs every risk check and returns all that apply.
func (e *Engine) IdentifyRiskFactors(history []schema.AssessmentRecord) []schema.RiskFactor {
	risks := []schema.RiskFactor{}
	if len(history) == 0 {
		return risks
	}
	scores := scoresOf(history)

	if trend, ok := algo.WindowTrend(scores, shortTermWindow); ok && trend < -declineThreshold {
		risks = append(risks, schema.RiskFactor{
			Type:        schema.DecliningTrendRisk,
			Severity:    schema.HighSeverity,
			Description: "Significant decline in recent assessments",
		})
	}
	if len(scores) >= inconsistencyMin && algo.StdDev(scores) > inconsistencyStdDev {
		risks = append(risks, schema.RiskFactor{
			Type:        schema.InconsistencyRisk,
			Severity:    schema.MediumSeverity,
			Description: "Performance is highly inconsistent",
		})
	}
	if algo.Mean(scores) < passingScore {
		risks = append(risks, schema.RiskFactor{
			Type:        schema.BelowAverageRisk,
			Severity:    schema.HighSeverity,
			Description: "Overall performance below passing threshold",
		})
	}
	return risks
}

// GenerateRecommendations picks one overall action from the average score and
// adds a subject intervention for every subject averaging below passing.
func (e *Engine) GenerateRecommendations(history []schema.AssessmentRecord) []schema.Recommendation {
	recs := []schema.Recommendation{}
	if len(history) == 0 {
		return recs
	}

	avg := algo.Mean(scoresOf(history))
	switch {
	case avg < 40:
		recs = append(recs, schema.Recommendation{
			Type:     schema.InterventionRecommendation,
			Priority: schema.UrgentPriority,
			Action:   "Schedule one-on-one tutoring sessions",
			Reason:   "Performance critically low",
		})
	case avg < 60:
		recs = append(recs, schema.Recommendation{
			Type:     schema.SupportRecommendation,
			Priority: schema.HighPriority,
			Action:   "Provide additional practice materials and study groups",
			Reason:   "Performance below target",
		})
	case avg < 75:
		recs = append(recs, schema.Recommendation{
			Type:     schema.EnhancementRecommendation,
			Priority: schema.MediumPriority,
			Action:   "Encourage participation in advanced exercises",
			Reason:   "Good foundation, room for improvement",
		})
	default:
		recs = append(recs, schema.Recommendation{
			Type:     schema.EnrichmentRecommendation,
			Priority: schema.LowPriority,
			Action:   "Provide challenging extension activities",
			Reason:   "Excellent performance, maintain momentum",
		})
	}

	for _, sub := range groupBySubject(history) {
		subAvg := algo.Mean(sub.scores)
		if subAvg >= passingScore {
			continue
		}
		recs = append(recs, schema.Recommendation{
			Type:     schema.SubjectInterventionRecommendation,
			Priority: schema.HighPriority,
			Subject:  sub.name,
			Action:   fmt.Sprintf("Focus on improving %s fundamentals", sub.name),
			Reason:   fmt.Sprintf("Average score of %.1f%% below passing", subAvg),
		})
	}
	return recs
}

// GeneratePredictions bundles both horizons with risks and recommendations.
func (e *Engine) GeneratePredictions(history []schema.AssessmentRecord) schema.Predictions {
	return schema.Predictions{
		ShortTerm:       e.PredictShortTerm(history),
		LongTerm:        e.PredictLongTerm(history),
		RiskFactors:     e.IdentifyRiskFactors(history),
		Recommendations: e.GenerateRecommendations(history),
	}
}

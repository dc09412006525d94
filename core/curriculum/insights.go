package curriculum

import (
	"fmt"

	"github.com/huangsam/elimu/core/algo"
	"github.com/huangsam/elimu/schema"
)

// Insight types.
const (
	strengthInsight    = "strength"
	improvementInsight = "improvement"
	riskInsight        = "risk"
	warningInsight     = "warning"
)

const (
	strengthAverage   = 80.0
	trendMinScores    = 3
	trendPercent      = 5.0
	riskAverage       = 60.0
	attendanceMinRate = 80.0
	maxHealthyRisks   = 2
)

// GenerateInsights derives per-subject observations from a chronological
// history and an optional attendance log.
func (e *Engine) GenerateInsights(studentID string, history []schema.AssessmentRecord, attendance []schema.AttendanceRecord) schema.InsightReport {
	report := schema.InsightReport{StudentID: studentID, Insights: []schema.Insight{}}

	for _, sub := range groupBySubject(history) {
		avg := algo.Mean(sub.scores)
		if avg >= strengthAverage {
			report.Insights = append(report.Insights, schema.Insight{
				Type:           strengthInsight,
				Subject:        sub.name,
				Message:        fmt.Sprintf("Exceptional performance in %s", sub.name),
				Recommendation: "Consider advanced placement or competitions",
				Value:          schema.Round(avg, 1),
			})
		}
		if len(sub.scores) < trendMinScores {
			continue
		}
		trend := algo.PercentChange(sub.scores)
		switch {
		case trend > trendPercent:
			report.Insights = append(report.Insights, schema.Insight{
				Type:           improvementInsight,
				Subject:        sub.name,
				Message:        fmt.Sprintf("Rapid improvement in %s", sub.name),
				Recommendation: "Current learning strategies are working well",
				Value:          schema.Round(trend, 1),
			})
		case trend < -trendPercent && avg < riskAverage:
			report.Insights = append(report.Insights, schema.Insight{
				Type:           riskInsight,
				Subject:        sub.name,
				Message:        fmt.Sprintf("Declining performance in %s", sub.name),
				Recommendation: "Immediate intervention recommended",
				Value:          schema.Round(trend, 1),
			})
		}
	}

	if len(attendance) > 0 {
		var present int
		for _, a := range attendance {
			if a.Status == schema.Present || a.Status == schema.Late {
				present++
			}
		}
		report.AttendanceRate = schema.Round(float64(present)/float64(len(attendance))*100, 1)
		if report.AttendanceRate < attendanceMinRate {
			report.Insights = append(report.Insights, schema.Insight{
				Type:           warningInsight,
				Message:        "Low attendance affecting academic performance",
				Recommendation: "Address attendance issues immediately",
				Value:          report.AttendanceRate,
			})
		}
	}

	for _, in := range report.Insights {
		switch in.Type {
		case strengthInsight:
			report.Strengths++
		case improvementInsight:
			report.Improvements++
		case riskInsight, warningInsight:
			report.Risks++
		}
	}
	report.OverallHealth = "Good"
	if report.Risks > maxHealthyRisks {
		report.OverallHealth = "Needs Attention"
	}
	return report
}

// CompareWithClass ranks the student's mean among peers, which should include
// the student. A student missing from peers gets rank 0.
func (e *Engine) CompareWithClass(studentID string, peers []schema.StudentMean) schema.ComparativeAnalysis {
	ranked := algo.RankStudents(append([]schema.StudentMean(nil), peers...), 0)
	out := schema.ComparativeAnalysis{StudentID: studentID, ClassSize: len(ranked)}

	means := make([]float64, len(ranked))
	for i, p := range ranked {
		means[i] = p.Mean
		if p.StudentID == studentID && out.Rank == 0 {
			out.Rank = i + 1
			out.Mean = schema.Round(p.Mean, 1)
		}
	}
	out.ClassMean = schema.Round(algo.Mean(means), 1)
	out.Percentile = algo.Percentile(out.Rank, out.ClassSize)
	return out
}

package curriculum

import (
	"math"

	"github.com/huangsam/elimu/schema"
)

// noDataClassification is reported for an empty mean-grade input.
const noDataClassification = "No Data"

// UCAS eligibility thresholds.
const (
	ucasGoodThreshold    = 112
	ucasAverageThreshold = 80
)

// CalculateMeanGrade averages 12-point grade points and maps the rounded mean
// back through the 8-4-4 table. An empty input yields a zero-count result.
func CalculateMeanGrade(grades []schema.GradeResult) schema.MeanGrade {
	if len(grades) == 0 {
		return schema.MeanGrade{MeanGrade: "-", Classification: noDataClassification}
	}

	var total float64
	for _, g := range grades {
		total += g.Points
	}
	mean := total / float64(len(grades))

	meanGrade := bands844[len(bands844)-1].Label
	rounded := math.Round(mean)
	for _, b := range bands844 {
		if b.Points == rounded {
			meanGrade = b.Label
			break
		}
	}

	return schema.MeanGrade{
		MeanPoints:     schema.Round(mean, 2),
		MeanGrade:      meanGrade,
		TotalPoints:    total,
		SubjectCount:   len(grades),
		Classification: classify(mean),
	}
}

func classify(meanPoints float64) string {
	switch {
	case meanPoints >= 12:
		return "Distinction"
	case meanPoints >= 10:
		return "Credit"
	case meanPoints >= 7:
		return "Pass"
	case meanPoints >= 4:
		return "Referral"
	default:
		return "Fail"
	}
}

// CalculateGPA computes credit-weighted unweighted and weighted GPA. Grades
// with no matching GPA band are skipped in both numerator and denominator.
func CalculateGPA(grades []schema.GradeResult) schema.GPASummary {
	var unweighted, weighted, credits float64
	var summary schema.GPASummary
	for _, g := range grades {
		b, ok := findBand(bandsGPA, g.Grade)
		if !ok {
			summary.Skipped++
			continue
		}
		c := CreditHours(g.Level)
		unweighted += b.Points * c
		if g.IsAP {
			weighted += b.Weighted * c
		} else {
			weighted += b.Points * c
		}
		credits += c
		summary.Counted++
	}
	summary.TotalCredits = credits
	if credits > 0 {
		summary.UnweightedGPA = schema.Round(unweighted/credits, 2)
		summary.WeightedGPA = schema.Round(weighted/credits, 2)
	}
	return summary
}

// CalculateUCASPoints sums the UCAS tariff over A-Level grades only.
func CalculateUCASPoints(grades []schema.GradeResult) schema.UCASSummary {
	summary := schema.UCASSummary{Qualifications: []schema.UCASQualification{}}
	for _, g := range grades {
		if g.Qualification != aLevelQualification {
			continue
		}
		b, _ := findBand(bandsALevel, g.Grade)
		summary.TotalPoints += b.UCAS
		summary.Qualifications = append(summary.Qualifications, schema.UCASQualification{
			Subject: g.Subject,
			Grade:   g.Grade,
			Points:  b.UCAS,
		})
	}
	switch {
	case summary.TotalPoints >= ucasGoodThreshold:
		summary.Eligibility = "Good"
	case summary.TotalPoints >= ucasAverageThreshold:
		summary.Eligibility = "Average"
	default:
		summary.Eligibility = "Needs Improvement"
	}
	return summary
}

// CalculateMeanGrade is the engine form of the package-level function.
func (e *Engine) CalculateMeanGrade(grades []schema.GradeResult) schema.MeanGrade {
	return CalculateMeanGrade(grades)
}

// CalculateGPA is the engine form of the package-level function.
func (e *Engine) CalculateGPA(grades []schema.GradeResult) schema.GPASummary {
	return CalculateGPA(grades)
}

// CalculateUCASPoints is the engine form of the package-level function.
func (e *Engine) CalculateUCASPoints(grades []schema.GradeResult) schema.UCASSummary {
	return CalculateUCASPoints(grades)
}

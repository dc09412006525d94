package curriculum

import (
	"fmt"

	"github.com/huangsam/elimu/schema"
)

type system844 struct {
	profile *Profile
}

func newSystem844() *system844 {
	return &system844{profile: &Profile{
		Code:   schema.System844,
		Name:   "8-4-4 System",
		Levels: levels844,
		SubjectsByLevelCategory: map[string][]string{
			"secondary": {"Mathematics", "English", "Kiswahili", "Science", "Social Studies", "CRE/IRE", "Business Studies", "Agriculture", "Home Science", "Computer Studies"},
		},
		GradingBands: bands844,
	}}
}

func (s *system844) Profile() *Profile { return s.profile }

func (s *system844) Grade(score float64, subject, level string, _ Rand) schema.GradeResult {
	return bandResult(schema.System844, lookupBand(s.profile.GradingBands, score), score, subject, level)
}

// Report lists every record with its grade and summarizes with the mean grade.
func (s *system844) Report(e *Engine, card *schema.ReportCard, records []schema.AssessmentRecord) {
	grades := make([]schema.GradeResult, 0, len(records))
	comments := &schema.ReportComments{}
	for _, r := range records {
		g := s.Grade(r.Score, r.Subject, card.Student.Level, e.rand)
		grades = append(grades, g)
		card.Subjects = append(card.Subjects, schema.SubjectReport{
			Subject:        r.Subject,
			AssessmentType: r.AssessmentType,
			Date:           r.Date,
			Average:        r.Score,
			Assessments:    1,
			Result:         g,
		})
		switch {
		case g.Points >= 10:
			comments.Strengths = append(comments.Strengths, fmt.Sprintf("Good in %s (%s)", r.Subject, g.Grade))
		case g.Points <= 5:
			comments.Improvements = append(comments.Improvements, fmt.Sprintf("%s needs attention (%s)", r.Subject, g.Grade))
		}
	}

	mean := CalculateMeanGrade(grades)
	card.MeanGrade = &mean
	switch mean.Classification {
	case "Distinction", "Credit":
		comments.Overall = "Excellent results, keep up the consistency"
	case "Pass":
		comments.Overall = "Shows good potential but needs consistency"
	case noDataClassification:
		comments.Overall = "No assessments recorded for this period"
	default:
		comments.Overall = "Needs close follow-up and additional support"
	}
	card.Comments = comments
}

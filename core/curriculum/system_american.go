package curriculum

import (
	"strings"

	"github.com/huangsam/elimu/core/algo"
	"github.com/huangsam/elimu/schema"
)

// Secondary table names.
const (
	apExamMetric = "AP"
	satMetric    = "SAT"
	actMetric    = "ACT"
)

type systemAmerican struct {
	profile *Profile
}

func newSystemAmerican() *systemAmerican {
	return &systemAmerican{profile: &Profile{
		Code:   schema.AmericanSystem,
		Name:   "American Curriculum",
		Levels: levelsAmerican,
		SubjectsByLevelCategory: map[string][]string{
			"elementary": {"Language Arts", "Mathematics", "Science", "Social Studies", "Art", "Music", "Physical Education"},
			"middle":     {"English", "Math", "Science", "Social Studies", "Foreign Language", "Technology", "Health"},
			"high":       {"English", "Mathematics", "Science", "Social Studies", "Foreign Language", "Arts", "Physical Education", "Electives"},
		},
		GradingBands: bandsGPA,
		SpecialMetrics: map[string][]schema.Band{
			apExamMetric: bandsAPExam,
			satMetric:    bandsSAT,
			actMetric:    bandsACT,
		},
		Lists: map[string][]string{
			"honors_types": honorsTypes,
		},
	}}
}

func (s *systemAmerican) Profile() *Profile { return s.profile }

// IsAPSubject reports whether a subject name denotes an advanced-placement course,
// e.g. "AP Calculus" or "Biology (AP)".
func IsAPSubject(subject string) bool {
	for _, f := range strings.FieldsFunc(subject, func(r rune) bool {
		return r == ' ' || r == '(' || r == ')' || r == '-' || r == '/' || r == ','
	}) {
		if f == "AP" {
			return true
		}
	}
	return strings.Contains(strings.ToLower(subject), "advanced placement")
}

// CreditHours derives course credit from the grade level.
func CreditHours(level string) float64 {
	switch level {
	case "Grade 11", "Grade 12":
		return 1.0
	case "Grade 9", "Grade 10":
		return 0.5
	default:
		return 0.25
	}
}

// Grade returns the GPA band. AP subjects report the weighted point value as GPA.
func (s *systemAmerican) Grade(score float64, subject, level string, _ Rand) schema.GradeResult {
	b := lookupBand(s.profile.GradingBands, score)
	g := bandResult(schema.AmericanSystem, b, score, subject, level)
	g.UnweightedGPA = b.Points
	g.WeightedGPA = b.Weighted
	g.GPA = b.Points
	g.CreditHours = CreditHours(level)
	if IsAPSubject(subject) {
		return applyAP(g)
	}
	g.QualityPoints = schema.Round(g.GPA*g.CreditHours, 3)
	return g
}

// applyAP switches an American grade to its weighted point value.
func applyAP(g schema.GradeResult) schema.GradeResult {
	g.IsAP = true
	g.GPA = g.WeightedGPA
	g.Points = g.WeightedGPA
	g.QualityPoints = schema.Round(g.GPA*g.CreditHours, 3)
	return g
}

func teacherComment(score float64) string {
	switch {
	case score >= 90:
		return "Excellent work"
	case score >= 80:
		return "Good progress"
	case score >= 70:
		return "Satisfactory"
	default:
		return "Needs improvement"
	}
}

// Report averages each subject, computes GPA and lists AP honors.
func (s *systemAmerican) Report(e *Engine, card *schema.ReportCard, records []schema.AssessmentRecord) {
	grades := make([]schema.GradeResult, 0, len(records))
	comments := &schema.ReportComments{}
	for _, sub := range groupBySubject(records) {
		avg := algo.Mean(sub.scores)
		g := s.Grade(avg, sub.name, card.Student.Level, e.rand)
		if sub.ap && !g.IsAP {
			g = applyAP(g)
		}
		grades = append(grades, g)
		card.Subjects = append(card.Subjects, schema.SubjectReport{
			Subject:     sub.name,
			Average:     schema.Round(avg, 1),
			Assessments: len(sub.scores),
			Result:      g,
			Comment:     teacherComment(avg),
		})

		if g.IsAP {
			ap := lookupBand(bandsAPExam, avg)
			card.Honors = append(card.Honors, schema.Honor{
				Subject: sub.name,
				Grade:   g.Grade,
				Exam:    "AP",
				APScore: ap.Label,
				Score:   schema.Round(avg, 1),
			})
		} else if avg >= 90 {
			card.RecommendedCourses = append(card.RecommendedCourses, "AP "+sub.name)
		}

		switch {
		case avg >= 90:
			comments.Strengths = append(comments.Strengths, sub.name)
		case avg < 70:
			comments.Improvements = append(comments.Improvements, sub.name)
		}
	}

	gpa := CalculateGPA(grades)
	card.GPA = &gpa
	if gpa.WeightedGPA >= 3.5 {
		card.CollegePrep = "On track for competitive colleges"
	} else {
		card.CollegePrep = "Focus on improving GPA"
	}
	comments.Overall = card.CollegePrep
	card.Comments = comments
}
